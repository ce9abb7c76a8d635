package repository

import "context"

// Repository defines the interface for the daily transcription counter.
type Repository interface {
	// Increment adds one to the counter row for date (YYYY-MM-DD), creating
	// the row when absent. The write is atomic; concurrent increments must
	// not lose updates.
	Increment(ctx context.Context, date string) error

	// TotalCount returns the sum over all dates, 0 when there are no rows.
	TotalCount(ctx context.Context) (int64, error)

	// CountByDate returns the counter for a single date, 0 when absent.
	CountByDate(ctx context.Context, date string) (int64, error)
}
