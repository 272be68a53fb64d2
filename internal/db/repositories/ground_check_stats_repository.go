package repositories

import (
	"context"
	"fmt"

	"airnav/groundcheck/internal/constants"

	"github.com/jmoiron/sqlx"
)

// ReadingStats summarises how complete a stored sheet is.
type ReadingStats struct {
	GroundCheckID  uint `db:"ground_check_id"`
	RowCount       int  `db:"row_count"`
	FilledReadings int  `db:"filled_readings"`
}

// GroundCheckStatsRepository runs read-only aggregate queries with sqlx.
type GroundCheckStatsRepository struct {
	db *sqlx.DB
}

func NewGroundCheckStatsRepository(db *sqlx.DB) *GroundCheckStatsRepository {
	return &GroundCheckStatsRepository{db}
}

// ReadingStats returns per-header row and reading counts keyed by header ID.
func (r *GroundCheckStatsRepository) ReadingStats(ctx context.Context) (map[uint]ReadingStats, error) {
	var stats []ReadingStats

	query := r.db.Rebind(constants.ReadingStatsByGroundCheck)
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to fetch reading stats: %w", err)
	}

	out := make(map[uint]ReadingStats, len(stats))
	for _, s := range stats {
		out[s.GroundCheckID] = s
	}
	return out, nil
}

// Ping checks the connection is usable.
func (r *GroundCheckStatsRepository) Ping(ctx context.Context) error {
	var one int
	return r.db.GetContext(ctx, &one, constants.PingQuery)
}
