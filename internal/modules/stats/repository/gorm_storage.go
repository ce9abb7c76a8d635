package repository

import (
	"context"
	"errors"

	"github.com/samber/oops"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/voicescribe/voicescribe-bot/internal/modules/stats/domain"
)

// GormStorage persists daily counters in a sqlite table via GORM.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage migrates the counter table and returns the repository.
func NewGormStorage(db *gorm.DB) (*GormStorage, error) {
	if err := db.AutoMigrate(&domain.DailyStat{}); err != nil {
		return nil, oops.With("context", "migrating transcription_stats").Wrap(err)
	}
	return &GormStorage{db: db}, nil
}

// Increment upserts the row for date: insert count=1 or add 1 to the existing
// row in a single conflict-resolving statement, so there is no
// read-modify-write window.
func (s *GormStorage) Increment(ctx context.Context, date string) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("count + 1"),
		}),
	}).Create(&domain.DailyStat{Date: date, Count: 1}).Error
	if err != nil {
		return oops.With("date", date).Wrap(err)
	}
	return nil
}

func (s *GormStorage) TotalCount(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&domain.DailyStat{}).
		Select("COALESCE(SUM(count), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, oops.With("context", "summing transcription stats").Wrap(err)
	}
	return total, nil
}

func (s *GormStorage) CountByDate(ctx context.Context, date string) (int64, error) {
	var stat domain.DailyStat
	err := s.db.WithContext(ctx).First(&stat, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, oops.With("date", date).Wrap(err)
	}
	return stat.Count, nil
}
