package domain

// DailyStat is the per-day transcription counter. One row per calendar date;
// the count only increases.
type DailyStat struct {
	Date  string `gorm:"column:date;primaryKey;size:10"` // YYYY-MM-DD
	Count int64  `gorm:"column:count;not null;default:0"`
}

// TableName keeps the table name from the original schema.
func (DailyStat) TableName() string {
	return "transcription_stats"
}

// Totals aggregates the all-time and today counters for /stats.
type Totals struct {
	Total int64
	Today int64
}
