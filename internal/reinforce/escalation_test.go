package reinforce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoWaveTable mirrors the historical two-wave tuning: 5 and 10 minutes.
func twoWaveTable() []WaveSpec {
	waves := DefaultWaveTable()
	return waves[:2]
}

func TestEscalation_StartAndReset(t *testing.T) {
	t.Parallel()

	e := NewEscalation(twoWaveTable(), WaveCooldown)
	now := time.Unix(1000, 0)

	res := e.Evaluate(now, true)
	assert.True(t, res.Started)
	assert.True(t, e.State().Active())
	assert.Equal(t, now, e.State().CombatStart())

	// Disengage: full reset, wave back to 0.
	now = now.Add(100 * time.Second)
	res = e.Evaluate(now, false)
	assert.True(t, res.Ended)
	assert.Equal(t, 100*time.Second, res.Duration)
	assert.False(t, e.State().Active())
	assert.Equal(t, int32(0), e.State().CurrentWave())
}

func TestEscalation_WaveMonotonicWhileActive(t *testing.T) {
	t.Parallel()

	e := NewEscalation(twoWaveTable(), WaveCooldown)
	start := time.Unix(1000, 0)
	now := start

	prev := int32(0)
	for i := 0; i < 40; i++ {
		now = now.Add(30 * time.Second)
		e.Evaluate(now, true)

		cur := e.State().CurrentWave()
		require.GreaterOrEqual(t, cur, prev, "wave must not decrease while active")
		prev = cur
	}
	assert.Equal(t, int32(2), prev)

	res := e.Evaluate(now.Add(30*time.Second), false)
	assert.True(t, res.Ended)
	assert.Equal(t, int32(2), res.PeakWave)
	assert.Equal(t, int32(0), e.State().CurrentWave())
}

func TestEscalation_FiresWaveAtThreshold(t *testing.T) {
	t.Parallel()

	e := NewEscalation(twoWaveTable(), WaveCooldown)
	start := time.Unix(1000, 0)

	e.Evaluate(start, true)

	// Just before the wave 1 threshold: nothing fires.
	res := e.Evaluate(start.Add(299*time.Second), true)
	assert.Nil(t, res.Fired)

	res = e.Evaluate(start.Add(301*time.Second), true)
	require.NotNil(t, res.Fired)
	assert.Equal(t, int32(1), res.Fired.Number)
	assert.Equal(t, int32(1), e.State().CurrentWave())
}

func TestEscalation_LongEngagementSkipsToHighestWave(t *testing.T) {
	t.Parallel()

	e := NewEscalation(twoWaveTable(), WaveCooldown)
	start := time.Unix(1000, 0)

	e.Evaluate(start, true)

	// 625s elapsed with no prior wave: wave 2 fires directly, wave 1 never does.
	res := e.Evaluate(start.Add(625*time.Second), true)
	require.NotNil(t, res.Fired)
	assert.Equal(t, int32(2), res.Fired.Number)
	assert.Equal(t, int32(2), e.State().CurrentWave())

	// Wave 1 is superseded for the remainder of the engagement.
	res = e.Evaluate(start.Add(700*time.Second), true)
	assert.Nil(t, res.Fired)
}

func TestEscalation_CooldownBlocksNextWave(t *testing.T) {
	t.Parallel()

	// Thresholds 1s apart would fire back to back without the cooldown.
	waves := []WaveSpec{
		{Number: 1, Threshold: 10 * time.Second, Groups: twoWaveTable()[0].Groups, MinRadius: 100, MaxRadius: 300},
		{Number: 2, Threshold: 11 * time.Second, Groups: twoWaveTable()[1].Groups, MinRadius: 100, MaxRadius: 300},
	}
	e := NewEscalation(waves, 10*time.Second)
	start := time.Unix(1000, 0)

	e.Evaluate(start, true)

	res := e.Evaluate(start.Add(10*time.Second), true)
	require.NotNil(t, res.Fired)
	require.Equal(t, int32(1), res.Fired.Number)

	// Both thresholds are satisfied, but the cooldown window holds wave 2.
	res = e.Evaluate(start.Add(15*time.Second), true)
	assert.Nil(t, res.Fired)

	res = e.Evaluate(start.Add(21*time.Second), true)
	require.NotNil(t, res.Fired)
	assert.Equal(t, int32(2), res.Fired.Number)
}

func TestEscalation_OneWavePerTick(t *testing.T) {
	t.Parallel()

	e := NewEscalation(DefaultWaveTable(), WaveCooldown)
	start := time.Unix(1000, 0)

	e.Evaluate(start, true)

	// All four thresholds satisfied at once: only the highest fires.
	res := e.Evaluate(start.Add(2000*time.Second), true)
	require.NotNil(t, res.Fired)
	assert.Equal(t, int32(4), res.Fired.Number)

	// Terminal: nothing further fires while the engagement lasts.
	res = e.Evaluate(start.Add(3000*time.Second), true)
	assert.Nil(t, res.Fired)
	assert.True(t, e.State().Active())
}

func TestEscalation_ReengagementRestartsTimeline(t *testing.T) {
	t.Parallel()

	e := NewEscalation(twoWaveTable(), WaveCooldown)
	start := time.Unix(1000, 0)

	e.Evaluate(start, true)
	res := e.Evaluate(start.Add(400*time.Second), true)
	require.NotNil(t, res.Fired)

	// Gap in the fight, then re-engagement.
	e.Evaluate(start.Add(430*time.Second), false)
	restart := start.Add(460 * time.Second)
	e.Evaluate(restart, true)

	// Old elapsed time is gone: nothing fires until 300s after the restart.
	res = e.Evaluate(restart.Add(299*time.Second), true)
	assert.Nil(t, res.Fired)

	res = e.Evaluate(restart.Add(301*time.Second), true)
	require.NotNil(t, res.Fired)
	assert.Equal(t, int32(1), res.Fired.Number)
}

func TestEscalation_InactiveStaysInactive(t *testing.T) {
	t.Parallel()

	e := NewEscalation(twoWaveTable(), WaveCooldown)
	now := time.Unix(1000, 0)

	for i := 0; i < 10; i++ {
		res := e.Evaluate(now, false)
		assert.False(t, res.Started)
		assert.False(t, res.Ended)
		assert.Nil(t, res.Fired)
		now = now.Add(30 * time.Second)
	}
	assert.False(t, e.State().Active())
}
