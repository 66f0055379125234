package reinforce

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/ai"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/notify"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/world"
)

// Registry tracks every spawn point, runs strongpoint resolution and
// coordinator election, and drives the per-spawn-point timers.
//
// Each registered spawn point runs its own update loop (patrol cycle +
// lifecycle guard); only the elected coordinator for a strongpoint
// additionally runs the escalation loop. Shared escalation state is owned by
// exactly one coordinator, so the loops never contend on it.
type Registry struct {
	facade       *world.Facade
	aiMgr        *ai.TickManager
	detector     *Detector
	orchestrator *Orchestrator
	journal      Journal
	cfg          Config

	mu      sync.RWMutex
	points  map[uint32]*SpawnPoint
	stops   map[uint32]chan struct{} // update-loop stop channels
	started bool
	ctx     context.Context
}

// NewRegistry creates the spawn point registry.
// A nil journal disables engagement persistence. The sink is wrapped with the
// configured notification delay here; pass it unwrapped.
func NewRegistry(facade *world.Facade, aiMgr *ai.TickManager, sink notify.Sink, journal Journal, cfg Config) *Registry {
	if journal == nil {
		journal = nopJournal{}
	}
	var delayed notify.Sink
	if sink != nil {
		delayed = notify.NewDelayed(sink, cfg.NotifyDelay)
	}

	return &Registry{
		facade:       facade,
		aiMgr:        aiMgr,
		detector:     NewDetector(facade, cfg.DetectionRange),
		orchestrator: NewOrchestrator(facade, aiMgr, delayed, cfg.Strategy),
		journal:      journal,
		cfg:          cfg,
	}
}

// Start begins driving timers for registered spawn points and blocks until
// the context is canceled.
func (r *Registry) Start(ctx context.Context) error {
	r.mu.Lock()
	r.started = true
	r.ctx = ctx
	for _, sp := range r.points {
		r.startUpdateLoopLocked(sp)
		if sp.IsCoordinator() {
			r.startCoordinatorLocked(sp)
		}
	}
	r.mu.Unlock()

	slog.Info("spawn point registry started",
		"updateInterval", r.cfg.UpdateInterval,
		"checkInterval", r.cfg.CheckInterval,
		"strategy", r.cfg.Strategy.String())

	<-ctx.Done()

	r.mu.Lock()
	r.started = false
	for id, stop := range r.stops {
		close(stop)
		delete(r.stops, id)
	}
	for _, sp := range r.points {
		r.stopCoordinatorLocked(sp)
	}
	r.mu.Unlock()

	slog.Info("spawn point registry stopped")
	return ctx.Err()
}

// Register adds a spawn point to the registry. If the registry is already
// running, the spawn point's update loop starts immediately.
func (r *Registry) Register(sp *SpawnPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.points == nil {
		r.points = make(map[uint32]*SpawnPoint)
		r.stops = make(map[uint32]chan struct{})
	}
	r.points[sp.ID()] = sp

	if r.started {
		r.startUpdateLoopLocked(sp)
	}

	slog.Info("spawn point registered", "id", sp.ID(), "faction", sp.Faction().Key())
}

// Unregister removes a destroyed spawn point: its timers are cancelled, its
// standing defenders and tracked wave assets are despawned, and if it was a
// coordinator the lowest-ID surviving sibling is promoted in its place.
func (r *Registry) Unregister(id uint32) {
	r.mu.Lock()

	sp, ok := r.points[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.points, id)

	if stop, ok := r.stops[id]; ok {
		close(stop)
		delete(r.stops, id)
	}
	r.stopCoordinatorLocked(sp)

	wasCoordinator := sp.IsCoordinator()
	st := sp.Strongpoint()
	r.mu.Unlock()

	sp.cycle.DespawnAll()
	if sp.assets != nil {
		sp.assets.Cleanup(r.facade, r.aiMgr.Unregister)
	}
	sp.demote()

	slog.Info("spawn point unregistered", "id", id, "wasCoordinator", wasCoordinator)

	// Failover promotion: the strongpoint must not lose its timeline driver.
	if wasCoordinator && st != nil {
		r.RunElection(st)
	}
}

// SpawnPoint returns a registered spawn point by ID.
func (r *Registry) SpawnPoint(id uint32) (*SpawnPoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sp, ok := r.points[id]
	return sp, ok
}

// Count returns the number of registered spawn points.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.points)
}

// --- Preparation and election ---

// Prepare resolves the spawn point's strongpoint reference (nearest
// registered strongpoint) and, on first success, schedules coordinator
// election after the settling delay. Safe to call repeatedly; it is invoked
// from the spawn point's own update tick until resolution succeeds.
func (r *Registry) Prepare(sp *SpawnPoint) {
	if sp.Strongpoint() != nil {
		return
	}

	nearest := r.nearestStrongpoint(sp.Position(), sp.Faction())
	if nearest == nil {
		return
	}
	sp.bindStrongpoint(nearest)

	slog.Info("spawn point bound to strongpoint",
		"id", sp.ID(),
		"strongpoint", nearest.Name())

	if sp.electionInit.CompareAndSwap(false, true) {
		// Deferred so sibling spawn points can register and prepare first.
		time.AfterFunc(r.cfg.ElectionSettleDelay, func() {
			r.RunElection(nearest)
		})
	}
}

// RunElection elects the coordinator for a strongpoint among the currently
// registered spawn points bound to it. Deterministic: minimum spawn point ID
// wins; every other sibling is marked non-coordinator. The winner's
// escalation ticker is started if it is not already running.
func (r *Registry) RunElection(st *model.Strongpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidates := make([]*SpawnPoint, 0, len(r.points))
	for _, sp := range r.points {
		candidates = append(candidates, sp)
	}

	winner := ElectCoordinator(candidates, st)
	if winner == nil {
		slog.Warn("coordinator election with no candidates", "strongpoint", st.Name())
		return
	}

	for _, sp := range candidates {
		if sp.Strongpoint() != st || sp == winner {
			continue
		}
		if sp.IsCoordinator() {
			r.stopCoordinatorLocked(sp)
			sp.demote()
		}
	}

	winner.promote(r.cfg.Waves, r.cfg.WaveCooldown)
	r.startCoordinatorLocked(winner)

	slog.Info("coordinator elected",
		"strongpoint", st.Name(),
		"coordinator", winner.ID())
}

// nearestStrongpoint returns the closest strongpoint held by the given
// faction, so a defender spawn point never binds to an enemy base just
// because it is closer. Falls back to the nearest overall (ownership may
// flip later), nil if none registered.
func (r *Registry) nearestStrongpoint(pos model.Position, faction *model.Faction) *model.Strongpoint {
	var nearestHeld, nearestAny *model.Strongpoint
	bestHeld, bestAny := 0.0, 0.0

	r.facade.ForEachStrongpoint(func(sp *model.Strongpoint) bool {
		d := pos.DistanceSquared(sp.Position())
		if nearestAny == nil || d < bestAny {
			nearestAny = sp
			bestAny = d
		}
		if sp.IsHeldBy(faction) && (nearestHeld == nil || d < bestHeld) {
			nearestHeld = sp
			bestHeld = d
		}
		return true
	})

	if nearestHeld != nil {
		return nearestHeld
	}
	return nearestAny
}

// --- Tick bodies ---

// UpdateTick runs one spawn-point update: strongpoint resolution while
// unbound, then the lifecycle guard, then the patrol cycle. Every spawn
// point runs this on its own cadence regardless of coordinator status.
func (r *Registry) UpdateTick(sp *SpawnPoint) {
	st := sp.Strongpoint()
	if st == nil {
		r.Prepare(sp)
		return
	}

	now := r.facade.Now()

	if !sp.guard.ShouldRemainActive(now, st, sp.Faction()) {
		if sp.dormant.CompareAndSwap(false, true) {
			sp.cycle.DespawnAll()
			slog.Info("standing defenders torn down",
				"id", sp.ID(),
				"strongpoint", st.Name())
		}
		return
	}

	if sp.dormant.CompareAndSwap(true, false) {
		slog.Info("standing defenders reactivated",
			"id", sp.ID(),
			"strongpoint", st.Name())
	}

	sp.cycle.Tick(now)
}

// CoordinatorTick runs one escalation evaluation for a coordinator:
// liveness sweep, combat detection, state machine, wave trigger. Within one
// call everything happens atomically relative to this coordinator — nothing
// else ticks the same strongpoint's escalation.
func (r *Registry) CoordinatorTick(sp *SpawnPoint) {
	if !sp.IsCoordinator() {
		return
	}
	st := sp.Strongpoint()
	if st == nil {
		// Owner reference gone; the tick is an idempotent no-op.
		return
	}

	now := r.facade.Now()
	sp.assets.Sweep(r.facade, r.aiMgr.Unregister)

	combatActive := r.detector.UnderAttack(st, sp.Faction())
	res := sp.escalation.Evaluate(now, combatActive)

	if res.Started {
		slog.Info("combat detected, engagement tracking started",
			"strongpoint", st.Name(), "coordinator", sp.ID())
		r.journal.EngagementStarted(st.Name(), now)
	}

	if res.Ended {
		slog.Info("combat ended, escalation reset",
			"strongpoint", st.Name(),
			"duration", res.Duration,
			"peakWave", res.PeakWave)
		r.journal.EngagementEnded(st.Name(), now, res.Duration, res.PeakWave)
	}

	if res.Fired != nil {
		spawned := r.orchestrator.Trigger(st, sp.Faction(), *res.Fired, sp.assets, sp.cycle)
		r.journal.WaveFired(st.Name(), res.Fired.Number, len(res.Fired.Groups), spawned, now)
	}
}

// --- Loop plumbing ---

// startUpdateLoopLocked launches the spawn point's update ticker.
func (r *Registry) startUpdateLoopLocked(sp *SpawnPoint) {
	if _, running := r.stops[sp.ID()]; running {
		return
	}
	stop := make(chan struct{})
	r.stops[sp.ID()] = stop

	go r.runLoop(r.cfg.UpdateInterval, stop, func() { r.UpdateTick(sp) })
}

// startCoordinatorLocked launches the coordinator's escalation ticker.
func (r *Registry) startCoordinatorLocked(sp *SpawnPoint) {
	if sp.stopCoord != nil {
		return
	}
	if !r.started {
		return
	}
	stop := make(chan struct{})
	sp.stopCoord = stop

	go r.runLoop(r.cfg.CheckInterval, stop, func() { r.CoordinatorTick(sp) })
}

// stopCoordinatorLocked cancels the coordinator ticker so no callback can
// fire against a dead owner.
func (r *Registry) stopCoordinatorLocked(sp *SpawnPoint) {
	if sp.stopCoord == nil {
		return
	}
	close(sp.stopCoord)
	sp.stopCoord = nil
}

// runLoop is the shared ticker loop. Every tick body is guarded: one spawn
// point's failure never disables another's timeline.
func (r *Registry) runLoop(interval time.Duration, stop <-chan struct{}, tick func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.safeTick(tick)
		}
	}
}

// safeTick runs one tick body, recovering and logging any panic at the
// callback boundary.
func (r *Registry) safeTick(tick func()) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("tick panicked", "panic", rec)
		}
	}()
	tick()
}
