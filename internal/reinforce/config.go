package reinforce

import "time"

// Core tuning constants. These are deliberate balance decisions, not runtime
// configuration; the Config struct below exists so tests and the simulation
// harness can compress timelines, production code uses the defaults.
const (
	// CombatDetectionRange is how close a hostile must be to the strongpoint
	// to count as attacking it, in meters.
	CombatDetectionRange = 300.0

	// CheckInterval is the coordinator's escalation evaluation period.
	CheckInterval = 30 * time.Second

	// UpdateInterval is every spawn point's own update cadence (patrol cycle
	// and lifecycle guard). Not gated by coordinator status.
	UpdateInterval = 5 * time.Second

	// WaveCooldown blocks any wave within this window of the previous one.
	WaveCooldown = 10 * time.Second

	// ElectionSettleDelay gives sibling spawn points time to register before
	// the coordinator election runs.
	ElectionSettleDelay = 5 * time.Second

	// FrontlineRange classifies a friendly strongpoint as frontline when an
	// enemy-held strongpoint lies within it, in meters.
	FrontlineRange = 2000.0

	// InactivityGrace is how long a rear-area strongpoint keeps its standing
	// defenders after its last frontline observation.
	InactivityGrace = 600 * time.Second

	// NotifyDelay defers the wave notification past entity replication.
	NotifyDelay = 100 * time.Millisecond

	// SpawnMinSeparation is the minimum clearance to other actors required
	// of a sampled spawn position, in meters.
	SpawnMinSeparation = 25.0

	// SpawnMaxAttempts bounds the terrain sampling per unit group.
	SpawnMaxAttempts = 20
)

// Strategy selects how a triggered wave is materialized.
type Strategy int32

const (
	// StrategyDirect spawns wave groups immediately through the world facade.
	StrategyDirect Strategy = 0

	// StrategyRideCycle overrides the patrol cycle's parameters and forces a
	// respawn, letting the existing spawn loop do the work.
	StrategyRideCycle Strategy = 1
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyDirect:
		return "DIRECT"
	case StrategyRideCycle:
		return "RIDE_CYCLE"
	default:
		return "UNKNOWN"
	}
}

// Config holds the tunable parameters of the reinforcement core.
type Config struct {
	DetectionRange      float64
	CheckInterval       time.Duration
	UpdateInterval      time.Duration
	WaveCooldown        time.Duration
	ElectionSettleDelay time.Duration
	FrontlineRange      float64
	InactivityGrace     time.Duration
	NotifyDelay         time.Duration
	Strategy            Strategy
	Waves               []WaveSpec
}

// DefaultConfig returns the production configuration: the canonical
// four-wave direct-spawn variant.
func DefaultConfig() Config {
	return Config{
		DetectionRange:      CombatDetectionRange,
		CheckInterval:       CheckInterval,
		UpdateInterval:      UpdateInterval,
		WaveCooldown:        WaveCooldown,
		ElectionSettleDelay: ElectionSettleDelay,
		FrontlineRange:      FrontlineRange,
		InactivityGrace:     InactivityGrace,
		NotifyDelay:         NotifyDelay,
		Strategy:            StrategyDirect,
		Waves:               DefaultWaveTable(),
	}
}
