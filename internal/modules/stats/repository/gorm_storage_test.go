package repository

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStorage(t *testing.T) *GormStorage {
	t.Helper()

	// A named in-memory database keeps all pooled connections on the same
	// store while isolating tests from each other.
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	storage, err := NewGormStorage(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	return storage
}

func TestIncrementAndTotals(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	const date = "2025-06-01"
	for i := 0; i < 3; i++ {
		require.NoError(t, storage.Increment(ctx, date))
	}

	total, err := storage.TotalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	today, err := storage.CountByDate(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, int64(3), today)
}

func TestCountByDateMissingRow(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	count, err := storage.CountByDate(ctx, "1999-12-31")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	total, err := storage.TotalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestIncrementHasNoLostUpdates(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	const date = "2025-06-02"
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = storage.Increment(ctx, date)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	count, err := storage.CountByDate(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "concurrent increments must not lose updates")
}

func TestTotalSumsAcrossDates(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	require.NoError(t, storage.Increment(ctx, "2025-06-03"))
	require.NoError(t, storage.Increment(ctx, "2025-06-04"))
	require.NoError(t, storage.Increment(ctx, "2025-06-04"))

	total, err := storage.TotalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	byDate, err := storage.CountByDate(ctx, "2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, int64(2), byDate)
}
