package reinforce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/ai"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/patrol"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/world"
)

type orchestratorFixture struct {
	facade    *world.Facade
	aiMgr     *ai.TickManager
	sink      *recordingSink
	defenders *model.Faction
	st        *model.Strongpoint
}

func newOrchestratorFixture(t *testing.T) *orchestratorFixture {
	t.Helper()

	facade := world.NewFacade(world.NewManualClock(time.Unix(1000, 0)))
	defenders := model.NewFaction("USSR", "Soviet Army")
	st := model.NewStrongpoint(1, "Depot", model.NewPosition(0, 0, 0), defenders)
	facade.AddStrongpoint(st)
	RegisterWavePrefabs(facade.RegisterPrefab, DefaultWaveTable())

	return &orchestratorFixture{
		facade:    facade,
		aiMgr:     ai.NewTickManager(time.Second),
		sink:      &recordingSink{},
		defenders: defenders,
		st:        st,
	}
}

func TestOrchestrator_DirectSpawnsWave(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	o := NewOrchestrator(f.facade, f.aiMgr, f.sink, StrategyDirect)
	assets := NewWaveAssets()

	wave := DefaultWaveTable()[0]
	spawned := o.Trigger(f.st, f.defenders, wave, assets, nil)

	assert.Equal(t, 2, spawned)
	assert.Equal(t, 2, assets.GroupCount())
	assert.Equal(t, 0, assets.VehicleCount())
	assert.Equal(t, 2, f.aiMgr.Count(), "every wave group gets a defend controller")

	require.Equal(t, 1, f.sink.count())
	assert.Equal(t, "AO: Depot", f.sink.subs[0])
}

func TestOrchestrator_FinalWaveBringsAircraft(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	o := NewOrchestrator(f.facade, f.aiMgr, f.sink, StrategyDirect)
	assets := NewWaveAssets()

	table := DefaultWaveTable()
	wave := table[len(table)-1]
	require.NotEmpty(t, wave.Aircraft)

	spawned := o.Trigger(f.st, f.defenders, wave, assets, nil)

	assert.Equal(t, 3, spawned)
	assert.Equal(t, 3, assets.GroupCount())
	assert.Equal(t, 1, assets.VehicleCount())
}

func TestOrchestrator_PartialFailureStillAlerts(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	o := NewOrchestrator(f.facade, f.aiMgr, f.sink, StrategyDirect)
	assets := NewWaveAssets()

	known := model.NewGroupTemplate(PrefabFireteam, "Fireteam", 4)
	unknown := model.NewGroupTemplate("Group_DoesNotExist", "Ghost Squad", 4)
	wave := WaveSpec{
		Number:    1,
		Threshold: 300 * time.Second,
		Groups:    []model.GroupTemplate{known, unknown, known},
		MinRadius: 100,
		MaxRadius: 300,
	}

	spawned := o.Trigger(f.st, f.defenders, wave, assets, nil)

	assert.Equal(t, 2, spawned, "failed group is skipped, not fatal")
	assert.Equal(t, 2, assets.GroupCount())
	assert.Equal(t, 1, f.sink.count(), "alert goes out when at least one group made it")
}

func TestOrchestrator_AllGroupsFailNoAlert(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	o := NewOrchestrator(f.facade, f.aiMgr, f.sink, StrategyDirect)
	assets := NewWaveAssets()

	unknown := model.NewGroupTemplate("Group_DoesNotExist", "Ghost Squad", 4)
	wave := WaveSpec{
		Number:    1,
		Threshold: 300 * time.Second,
		Groups:    []model.GroupTemplate{unknown, unknown},
		MinRadius: 100,
		MaxRadius: 300,
	}

	spawned := o.Trigger(f.st, f.defenders, wave, assets, nil)

	assert.Equal(t, 0, spawned)
	assert.Equal(t, 0, f.sink.count())
}

func TestOrchestrator_NewWaveReplacesPrevious(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	o := NewOrchestrator(f.facade, f.aiMgr, f.sink, StrategyDirect)
	assets := NewWaveAssets()

	table := DefaultWaveTable()
	o.Trigger(f.st, f.defenders, table[0], assets, nil)
	firstWaveGroups := assets.GroupCount()
	require.Equal(t, 2, firstWaveGroups)

	o.Trigger(f.st, f.defenders, table[1], assets, nil)

	assert.Equal(t, 2, assets.GroupCount(), "only the new wave's groups remain tracked")
	assert.Equal(t, 2, f.aiMgr.Count(), "superseded controllers are unregistered")
}

func TestOrchestrator_NilStrongpointRefused(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	o := NewOrchestrator(f.facade, f.aiMgr, f.sink, StrategyDirect)

	spawned := o.Trigger(nil, f.defenders, DefaultWaveTable()[0], NewWaveAssets(), nil)
	assert.Equal(t, 0, spawned)

	spawned = o.Trigger(f.st, nil, DefaultWaveTable()[0], NewWaveAssets(), nil)
	assert.Equal(t, 0, spawned)
	assert.Equal(t, 0, f.sink.count())
}

func TestOrchestrator_RideCycleQueuesOnPatrol(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	o := NewOrchestrator(f.facade, f.aiMgr, f.sink, StrategyRideCycle)

	base := patrol.DefenderProfile(model.NewGroupTemplate(PrefabFireteam, "Fireteam", 4))
	waveProfile := func(wave int32) (patrol.Profile, bool) {
		spec := DefaultWaveTable()[wave-1]
		return patrol.Profile{
			RespawnPeriod: time.Hour,
			GroupCount:    len(spec.Groups),
			Dispersion:    spec.MaxRadius,
			Template:      spec.Groups[0],
		}, true
	}
	cycle := patrol.NewCycle(f.facade, f.aiMgr, f.defenders, model.NewPosition(10, 0, 0), base, waveProfile)

	// Standing defenders are up before the wave hits.
	now := time.Unix(2000, 0)
	cycle.Tick(now)
	require.Equal(t, patrol.DefenderGroupCount, cycle.GroupCount())

	wave := DefaultWaveTable()[2]
	spawned := o.Trigger(f.st, f.defenders, wave, NewWaveAssets(), cycle)

	assert.Equal(t, len(wave.Groups), spawned)
	assert.Equal(t, 0, cycle.GroupCount(), "standing groups cleared for the boosted respawn")
	assert.True(t, cycle.Mode().IsReinforcement())
	assert.Equal(t, 1, f.sink.count())

	// Next cycle tick executes the boosted spawn immediately.
	cycle.Tick(now.Add(time.Second))
	assert.Equal(t, 3, cycle.GroupCount())
	assert.False(t, cycle.Mode().IsReinforcement(), "reinforcement mode is one-shot")
}

func TestOrchestrator_RideCycleWithoutCycle(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t)
	o := NewOrchestrator(f.facade, f.aiMgr, f.sink, StrategyRideCycle)

	spawned := o.Trigger(f.st, f.defenders, DefaultWaveTable()[0], NewWaveAssets(), nil)
	assert.Equal(t, 0, spawned)
	assert.Equal(t, 0, f.sink.count())
}
