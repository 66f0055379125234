package db

import (
	"context"
	"log/slog"
	"time"
)

// writeTimeout bounds every journal write so a slow database can never
// stall the caller's goroutine for long.
const writeTimeout = 3 * time.Second

// JournalRepository persists engagement history. All writes are best-effort:
// errors are logged and swallowed, and every write runs on its own goroutine
// so the reinforcement tick never waits on the database.
type JournalRepository struct {
	db *DB
}

// NewJournalRepository creates a journal repository.
func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// EngagementStarted records the start of an engagement.
func (r *JournalRepository) EngagementStarted(strongpoint string, at time.Time) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		_, err := r.db.pool.Exec(ctx,
			`INSERT INTO engagements (strongpoint, started_at) VALUES ($1, $2)`,
			strongpoint, at,
		)
		if err != nil {
			slog.Warn("journal write failed", "event", "engagement_started", "strongpoint", strongpoint, "error", err)
		}
	}()
}

// EngagementEnded records the end of the most recent open engagement.
func (r *JournalRepository) EngagementEnded(strongpoint string, at time.Time, duration time.Duration, peakWave int32) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		_, err := r.db.pool.Exec(ctx,
			`UPDATE engagements
			 SET ended_at = $2, duration_s = $3, peak_wave = $4
			 WHERE id = (
			     SELECT id FROM engagements
			     WHERE strongpoint = $1 AND ended_at IS NULL
			     ORDER BY started_at DESC LIMIT 1
			 )`,
			strongpoint, at, duration.Seconds(), peakWave,
		)
		if err != nil {
			slog.Warn("journal write failed", "event", "engagement_ended", "strongpoint", strongpoint, "error", err)
		}
	}()
}

// WaveFired records one wave trigger.
func (r *JournalRepository) WaveFired(strongpoint string, wave int32, requested, spawned int, at time.Time) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		_, err := r.db.pool.Exec(ctx,
			`INSERT INTO wave_events (strongpoint, wave, requested, spawned, fired_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			strongpoint, wave, requested, spawned, at,
		)
		if err != nil {
			slog.Warn("journal write failed", "event", "wave_fired", "strongpoint", strongpoint, "wave", wave, "error", err)
		}
	}()
}
