package reinforce

import (
	"fmt"
	"log/slog"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/ai"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/notify"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/patrol"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/world"
)

// Notification text for wave alerts.
const (
	waveAlertTitle    = "Enemy Reinforcements Detected"
	waveAlertDuration = 10.0 // seconds on screen
)

// Orchestrator materializes a triggered wave: despawns the previous wave's
// assets, spawns the new force composition, tunes it, and broadcasts the
// alert. Waves never stack with each other, only with the strongpoint's own
// standing defenders (those are the patrol cycle's business).
type Orchestrator struct {
	facade   *world.Facade
	aiMgr    *ai.TickManager
	sink     notify.Sink
	strategy Strategy
}

// NewOrchestrator creates a wave orchestrator.
// The sink is expected to be delay-wrapped already (notify.Delayed).
func NewOrchestrator(facade *world.Facade, aiMgr *ai.TickManager, sink notify.Sink, strategy Strategy) *Orchestrator {
	return &Orchestrator{
		facade:   facade,
		aiMgr:    aiMgr,
		sink:     sink,
		strategy: strategy,
	}
}

// Trigger executes one wave for the strongpoint and returns how many of the
// requested unit groups were actually spawned. Partial failure is degraded
// success: the alert still goes out if at least one group made it.
func (o *Orchestrator) Trigger(
	sp *model.Strongpoint,
	defending *model.Faction,
	wave WaveSpec,
	assets *WaveAssets,
	cycle *patrol.Cycle,
) int {
	if sp == nil || defending == nil {
		slog.Warn("wave trigger with unresolved strongpoint or faction", "wave", wave.Number)
		return 0
	}

	switch o.strategy {
	case StrategyRideCycle:
		return o.triggerRideCycle(sp, wave, cycle)
	default:
		return o.triggerDirect(sp, defending, wave, assets)
	}
}

// triggerDirect spawns the wave immediately through the world facade.
func (o *Orchestrator) triggerDirect(sp *model.Strongpoint, defending *model.Faction, wave WaveSpec, assets *WaveAssets) int {
	// Previous wave first; a superseded wave never lingers.
	assets.Cleanup(o.facade, o.aiMgr.Unregister)

	profile := ai.ProfileForPlayerCount(o.facade.PlayerCount())
	spawned := 0

	for _, template := range wave.Groups {
		group, err := o.spawnGroup(sp, defending, wave, template, profile)
		if err != nil {
			slog.Error("wave group spawn failed",
				"strongpoint", sp.Name(),
				"wave", wave.Number,
				"template", template.String(),
				"error", err)
			continue
		}
		assets.TrackGroup(group)
		spawned++
	}

	if wave.Aircraft != "" {
		vehicle, err := o.facade.SpawnVehicle(wave.Aircraft, model.VehicleHelicopter, defending, sp.Position())
		if err != nil {
			slog.Error("wave aircraft spawn failed",
				"strongpoint", sp.Name(),
				"wave", wave.Number,
				"prefab", wave.Aircraft,
				"error", err)
		} else {
			assets.TrackVehicle(vehicle)
		}
	}

	slog.Info("reinforcement wave triggered",
		"strongpoint", sp.Name(),
		"wave", wave.Number,
		"requested", len(wave.Groups),
		"spawned", spawned,
		"strategy", o.strategy.String())

	if spawned > 0 {
		o.broadcastAlert(sp)
	}

	return spawned
}

// spawnGroup creates and prepares one wave unit group.
func (o *Orchestrator) spawnGroup(
	sp *model.Strongpoint,
	defending *model.Faction,
	wave WaveSpec,
	template model.GroupTemplate,
	profile model.CombatProfile,
) (*model.UnitGroup, error) {
	pos, ok := o.facade.FindEmptyPosition(sp.Position(), wave.MinRadius, wave.MaxRadius, SpawnMinSeparation, SpawnMaxAttempts)
	if !ok {
		// No clear terrain in the ring; the strongpoint itself always works.
		pos = sp.Position()
	}

	group, err := o.facade.SpawnGroup(template, defending, pos)
	if err != nil {
		return nil, fmt.Errorf("spawning wave group: %w", err)
	}

	ai.ApplyProfile(group, profile)

	// One defend order, replacing whatever the fresh group carries.
	group.SetDirective(model.DefendDirective(sp))
	o.aiMgr.Register(group.ObjectID(), ai.NewDefendController(group))

	return group, nil
}

// triggerRideCycle queues the wave on the spawn point's own respawn loop
// instead of spawning directly: set the mode, clear the standing group, and
// expire the respawn timer.
func (o *Orchestrator) triggerRideCycle(sp *model.Strongpoint, wave WaveSpec, cycle *patrol.Cycle) int {
	if cycle == nil {
		slog.Warn("ride-cycle trigger without a patrol cycle", "strongpoint", sp.Name(), "wave", wave.Number)
		return 0
	}

	cycle.SetMode(patrol.ReinforcementMode(wave.Number))
	cycle.DespawnAll()
	cycle.ForceRespawn()

	slog.Info("reinforcement wave queued on patrol cycle",
		"strongpoint", sp.Name(),
		"wave", wave.Number)

	o.broadcastAlert(sp)
	return len(wave.Groups)
}

// broadcastAlert sends the wave notification through the sink.
func (o *Orchestrator) broadcastAlert(sp *model.Strongpoint) {
	if o.sink == nil {
		return
	}
	o.sink.Broadcast(waveAlertTitle, fmt.Sprintf("AO: %s", sp.Name()), waveAlertDuration)
}
