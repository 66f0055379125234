package patrol

import (
	"time"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
)

// Standing-defender spawn parameters per spawn point role.
const (
	DefenderRespawnPeriod = 180 * time.Second
	DefenderGroupCount    = 2

	AttackerRespawnPeriod = 90 * time.Second
	AttackerGroupCount    = 1

	NormalDispersion = 50.0 // meters around the spawn position
)

// Profile holds the spawn parameters the periodic respawn cycle reads.
type Profile struct {
	RespawnPeriod time.Duration
	GroupCount    int
	Dispersion    float64
	Template      model.GroupTemplate
}

// DefenderProfile returns the standing-defender parameters.
func DefenderProfile(template model.GroupTemplate) Profile {
	return Profile{
		RespawnPeriod: DefenderRespawnPeriod,
		GroupCount:    DefenderGroupCount,
		Dispersion:    NormalDispersion,
		Template:      template,
	}
}

// AttackerProfile returns the attacking-force parameters.
func AttackerProfile(template model.GroupTemplate) Profile {
	return Profile{
		RespawnPeriod: AttackerRespawnPeriod,
		GroupCount:    AttackerGroupCount,
		Dispersion:    NormalDispersion,
		Template:      template,
	}
}

// Mode is the explicit operating mode the spawn step consumes.
// The zero value is normal operation; a reinforcement mode carries the wave
// number it was requested for. Parameters are derived from the mode at spawn
// time instead of overwriting shared fields and restoring them later.
type Mode struct {
	wave int32
}

// NormalMode returns the normal operating mode.
func NormalMode() Mode {
	return Mode{}
}

// ReinforcementMode returns a reinforcement mode for the given wave.
func ReinforcementMode(wave int32) Mode {
	return Mode{wave: wave}
}

// IsReinforcement returns true if the mode is a reinforcement request.
func (m Mode) IsReinforcement() bool {
	return m.wave > 0
}

// Wave returns the requested wave number (0 in normal mode).
func (m Mode) Wave() int32 {
	return m.wave
}
