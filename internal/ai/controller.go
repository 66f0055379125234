package ai

// Controller represents an AI controller attached to a spawned unit group.
type Controller interface {
	// Start starts the controller
	Start()

	// Stop stops the controller
	Stop()

	// Tick performs one AI tick (called every tick interval)
	Tick()
}
