package ai

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// TickManager drives AI ticks for all registered group controllers.
type TickManager struct {
	controllers     sync.Map // map[uint32]Controller — groupID → controller
	ticker          *time.Ticker
	stopCh          chan struct{}
	interval        time.Duration
	controllerCount atomic.Int32 // cached count of controllers (O(1) access)
}

// NewTickManager creates a new AI tick manager.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = time.Second
	}
	return &TickManager{
		stopCh:   make(chan struct{}),
		interval: interval,
	}
}

// Register registers an AI controller for a group.
func (m *TickManager) Register(groupID uint32, controller Controller) {
	m.controllers.Store(groupID, controller)
	m.controllerCount.Add(1)
	controller.Start()

	slog.Debug("AI controller registered", "groupID", groupID)
}

// Unregister unregisters an AI controller.
func (m *TickManager) Unregister(groupID uint32) {
	value, ok := m.controllers.LoadAndDelete(groupID)
	if !ok {
		return
	}
	m.controllerCount.Add(-1)

	value.(Controller).Stop()

	slog.Debug("AI controller unregistered", "groupID", groupID)
}

// Start starts the AI tick loop (blocks until context is canceled).
func (m *TickManager) Start(ctx context.Context) error {
	m.ticker = time.NewTicker(m.interval)
	defer m.ticker.Stop()

	slog.Info("AI tick manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("AI tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("AI tick manager stopped")
			return nil

		case <-m.ticker.C:
			m.tickAll()
		}
	}
}

// Stop stops the AI tick loop.
func (m *TickManager) Stop() {
	close(m.stopCh)
}

// tickAll ticks all registered controllers.
func (m *TickManager) tickAll() {
	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick()
		return true
	})
}

// Count returns the number of registered controllers (O(1) cached count).
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}
