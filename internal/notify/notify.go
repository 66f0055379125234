package notify

import (
	"log/slog"
	"time"
)

// Sink receives fire-and-forget broadcast notifications.
// Delivery is best-effort; implementations must never block the caller.
type Sink interface {
	Broadcast(title, subtitle string, displayDurationSeconds float64)
}

// PlayerCounter reports the number of connected participants.
type PlayerCounter interface {
	PlayerCount() int
}

// LogSink broadcasts by logging. Stands in for the engine-side popup
// delivery, which is outside this module.
type LogSink struct {
	players PlayerCounter
}

// NewLogSink creates a sink that logs each broadcast with the current
// recipient count.
func NewLogSink(players PlayerCounter) *LogSink {
	return &LogSink{players: players}
}

// Broadcast logs the notification.
func (s *LogSink) Broadcast(title, subtitle string, displayDurationSeconds float64) {
	recipients := 0
	if s.players != nil {
		recipients = s.players.PlayerCount()
	}
	slog.Info("notification broadcast",
		"title", title,
		"subtitle", subtitle,
		"duration", displayDurationSeconds,
		"recipients", recipients)
}

// Delayed wraps a sink and defers each broadcast by a fixed delay.
// Newly spawned entities need a moment to replicate to clients before a
// notification references them, so dispatch is pushed off the spawn tick.
type Delayed struct {
	sink  Sink
	delay time.Duration
}

// NewDelayed wraps sink with a fixed dispatch delay.
func NewDelayed(sink Sink, delay time.Duration) *Delayed {
	return &Delayed{sink: sink, delay: delay}
}

// Broadcast schedules the notification after the configured delay and
// returns immediately. A non-positive delay dispatches inline.
func (d *Delayed) Broadcast(title, subtitle string, displayDurationSeconds float64) {
	if d.delay <= 0 {
		d.sink.Broadcast(title, subtitle, displayDurationSeconds)
		return
	}
	time.AfterFunc(d.delay, func() {
		d.sink.Broadcast(title, subtitle, displayDurationSeconds)
	})
}
