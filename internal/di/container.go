package di

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/voicescribe/voicescribe-bot/internal/modules/ai"
	pipelineService "github.com/voicescribe/voicescribe-bot/internal/modules/pipeline/service"
	statsRepo "github.com/voicescribe/voicescribe-bot/internal/modules/stats/repository"
	statsService "github.com/voicescribe/voicescribe-bot/internal/modules/stats/service"
	"github.com/voicescribe/voicescribe-bot/internal/shared/config"
	"github.com/voicescribe/voicescribe-bot/internal/shared/ratelimit"
	httpServer "github.com/voicescribe/voicescribe-bot/internal/transport/http"
	telegramClient "github.com/voicescribe/voicescribe-bot/internal/transport/telegram"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Database
	do.Provide(injector, func(i do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)

		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, oops.With("db_path", cfg.DBPath).Wrap(err)
			}
		}

		db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
		if err != nil {
			return nil, oops.With("db_path", cfg.DBPath).Wrap(err)
		}
		return db, nil
	})

	// Register Stats Repository
	do.Provide(injector, func(i do.Injector) (statsRepo.Repository, error) {
		db := do.MustInvoke[*gorm.DB](i)
		return statsRepo.NewGormStorage(db)
	})

	// Register Stats Service
	do.Provide(injector, func(i do.Injector) (*statsService.Service, error) {
		repo := do.MustInvoke[statsRepo.Repository](i)
		return statsService.New(repo), nil
	})

	// Register AI Client
	do.Provide(injector, func(i do.Injector) (ai.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return ai.NewWorkersAI(
			cfg.CloudflareAccountID,
			cfg.CloudflareAPIToken,
			cfg.TranscriptionModel,
			cfg.TextModel,
		), nil
	})

	// Register Rate Limiter
	do.Provide(injector, func(i do.Injector) (*ratelimit.Limiter, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return ratelimit.New(cfg.RateLimitPerMinute), nil
	})

	// Register Bot
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)

		b, err := bot.New(cfg.TelegramBotToken)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}
		return b, nil
	})

	// Register Telegram Client
	do.Provide(injector, func(i do.Injector) (*telegramClient.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		b := do.MustInvoke[*bot.Bot](i)
		return telegramClient.New(b, cfg.TelegramBotToken), nil
	})

	// Register Pipeline Service
	do.Provide(injector, func(i do.Injector) (*pipelineService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		messenger := do.MustInvoke[*telegramClient.Client](i)
		aiClient := do.MustInvoke[ai.Client](i)
		stats := do.MustInvoke[*statsService.Service](i)
		limiter := do.MustInvoke[*ratelimit.Limiter](i)
		return pipelineService.New(cfg, messenger, aiClient, stats, limiter), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		pipeline := do.MustInvoke[*pipelineService.Service](i)
		server := httpServer.New(cfg, pipeline)
		// Set logger from default slog
		server.SetLogger(slog.Default())
		return server, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx := context.Background()

	// Shutdown bot if it exists
	if b, err := do.Invoke[*bot.Bot](injector); err == nil && b != nil {
		b.Close(ctx)
	}

	// Close database if it exists
	if db, err := do.Invoke[*gorm.DB](injector); err == nil && db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}
