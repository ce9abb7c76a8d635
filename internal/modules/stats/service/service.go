// Package service exposes the daily transcription counters to the pipeline.
package service

import (
	"context"
	"time"

	"github.com/voicescribe/voicescribe-bot/internal/modules/stats/domain"
	"github.com/voicescribe/voicescribe-bot/internal/modules/stats/repository"
)

// Service handles usage counter business logic
type Service struct {
	repo repository.Repository
}

// New creates a new stats service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Record counts one successful transcription for today.
func (s *Service) Record(ctx context.Context) error {
	return s.repo.Increment(ctx, Today())
}

// Totals returns the all-time and today counters.
func (s *Service) Totals(ctx context.Context) (domain.Totals, error) {
	total, err := s.repo.TotalCount(ctx)
	if err != nil {
		return domain.Totals{}, err
	}

	today, err := s.repo.CountByDate(ctx, Today())
	if err != nil {
		return domain.Totals{}, err
	}

	return domain.Totals{Total: total, Today: today}, nil
}

// Today returns the current UTC calendar date as YYYY-MM-DD, the primary key
// of the counter table.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}
