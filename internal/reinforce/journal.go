package reinforce

import "time"

// Journal records engagement history for after-action review.
// Implementations must be best-effort and non-blocking: a journal failure
// never reaches the coordinator's tick.
type Journal interface {
	EngagementStarted(strongpoint string, at time.Time)
	EngagementEnded(strongpoint string, at time.Time, duration time.Duration, peakWave int32)
	WaveFired(strongpoint string, wave int32, requested, spawned int, at time.Time)
}

// nopJournal is the journal used when persistence is disabled.
type nopJournal struct{}

func (nopJournal) EngagementStarted(string, time.Time)                     {}
func (nopJournal) EngagementEnded(string, time.Time, time.Duration, int32) {}
func (nopJournal) WaveFired(string, int32, int, int, time.Time)            {}
