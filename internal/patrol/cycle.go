package patrol

import (
	"log/slog"
	"sync"
	"time"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/ai"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/world"
)

// Cycle is the ordinary periodic respawn loop of one spawn point: it keeps a
// standing group presence alive near the spawn position and re-creates it
// after the configured respawn period once it has been wiped out.
//
// The reinforcement core does not spawn through the cycle by default, but it
// can override the next cycle's parameters with a reinforcement Mode and
// expire the respawn timer (ForceRespawn) to ride the existing loop.
type Cycle struct {
	facade   *world.Facade
	aiMgr    *ai.TickManager
	faction  *model.Faction
	position model.Position
	profile  Profile

	// waveProfile resolves reinforcement-mode parameters by wave number.
	// Nil disables reinforcement modes for this cycle.
	waveProfile func(wave int32) (Profile, bool)

	mu        sync.Mutex
	mode      Mode
	groups    []*model.UnitGroup
	respawnAt time.Time // zero value means spawn on the next tick
}

// NewCycle creates a respawn cycle for one spawn point.
func NewCycle(
	facade *world.Facade,
	aiMgr *ai.TickManager,
	faction *model.Faction,
	position model.Position,
	profile Profile,
	waveProfile func(wave int32) (Profile, bool),
) *Cycle {
	return &Cycle{
		facade:      facade,
		aiMgr:       aiMgr,
		faction:     faction,
		position:    position,
		profile:     profile,
		waveProfile: waveProfile,
	}
}

// SetMode sets the operating mode consumed by the next spawn step.
// Reinforcement modes are one-shot: the cycle reverts to normal after the
// boosted spawn executes, so no delayed restore can race a new trigger.
func (c *Cycle) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m

	slog.Debug("patrol mode set", "reinforcement", m.IsReinforcement(), "wave", m.Wave())
}

// Mode returns the current operating mode.
func (c *Cycle) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ForceRespawn expires the respawn timer so the next Tick spawns immediately.
func (c *Cycle) ForceRespawn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.respawnAt = time.Time{}

	slog.Debug("patrol respawn timer expired")
}

// Tick runs one respawn-cycle step at the given simulation time.
// Dead or despawned groups are dropped from tracking; when no live group
// remains and the respawn timer has elapsed, a fresh spawn is executed with
// the parameters of the current mode.
func (c *Cycle) Tick(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked()

	if len(c.groups) > 0 {
		return
	}
	if !c.respawnAt.IsZero() && now.Before(c.respawnAt) {
		return
	}

	params := c.paramsLocked()
	c.spawnLocked(params)
	c.respawnAt = now.Add(params.RespawnPeriod)

	// Reinforcement modes are consumed by the spawn that used them.
	if c.mode.IsReinforcement() {
		c.mode = NormalMode()
	}
}

// DespawnAll removes every tracked group from the world.
func (c *Cycle) DespawnAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, g := range c.groups {
		c.aiMgr.Unregister(g.ObjectID())
		c.facade.DespawnGroup(g.ObjectID())
	}
	c.groups = nil
}

// GroupCount returns the number of live tracked groups.
func (c *Cycle) GroupCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.groups)
}

// paramsLocked resolves the spawn parameters for the current mode.
func (c *Cycle) paramsLocked() Profile {
	if c.mode.IsReinforcement() && c.waveProfile != nil {
		if p, ok := c.waveProfile(c.mode.Wave()); ok {
			// Respawn period always comes from the base profile; waves only
			// shape the single boosted spawn.
			p.RespawnPeriod = c.profile.RespawnPeriod
			return p
		}
	}
	return c.profile
}

// sweepLocked drops groups that were wiped out or externally despawned.
func (c *Cycle) sweepLocked() {
	live := c.groups[:0]
	for _, g := range c.groups {
		if g.IsRemoved() || g.AliveMemberCount() == 0 {
			c.aiMgr.Unregister(g.ObjectID())
			c.facade.DespawnGroup(g.ObjectID())
			continue
		}
		live = append(live, g)
	}
	c.groups = live
}

// spawnLocked creates the standing groups for the given parameters.
func (c *Cycle) spawnLocked(params Profile) {
	profile := ai.ProfileForPlayerCount(c.facade.PlayerCount())

	for range params.GroupCount {
		pos, ok := c.facade.FindEmptyPosition(c.position, 0, params.Dispersion, 5.0, 10)
		if !ok {
			pos = c.position
		}

		group, err := c.facade.SpawnGroup(params.Template, c.faction, pos)
		if err != nil {
			slog.Error("patrol spawn failed",
				"template", params.Template.String(),
				"error", err)
			continue
		}

		ai.ApplyProfile(group, profile)
		group.SetDirective(model.Directive{Kind: model.DirectivePatrol, Target: c.position})
		c.aiMgr.Register(group.ObjectID(), ai.NewDefendController(group))

		c.groups = append(c.groups, group)
	}

	slog.Info("patrol groups spawned",
		"count", len(c.groups),
		"template", params.Template.String(),
		"dispersion", params.Dispersion)
}
