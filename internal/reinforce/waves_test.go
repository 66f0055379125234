package reinforce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
)

func TestDefaultWaveTable(t *testing.T) {
	t.Parallel()

	waves := DefaultWaveTable()
	require.NoError(t, ValidateWaveTable(waves))
	require.Len(t, waves, 4)

	// Only the final wave brings air support.
	for _, w := range waves[:3] {
		assert.Empty(t, w.Aircraft, "wave %d", w.Number)
	}
	assert.Equal(t, PrefabAttackHeli, waves[3].Aircraft)
}

func TestValidateWaveTable(t *testing.T) {
	t.Parallel()

	fireteam := model.NewGroupTemplate(PrefabFireteam, "Fireteam", 4)

	tests := []struct {
		name    string
		waves   []WaveSpec
		wantErr bool
	}{
		{
			name:    "empty table",
			waves:   nil,
			wantErr: true,
		},
		{
			name: "gap in wave numbers",
			waves: []WaveSpec{
				{Number: 1, Threshold: 300 * time.Second, Groups: []model.GroupTemplate{fireteam}, MaxRadius: 300},
				{Number: 3, Threshold: 600 * time.Second, Groups: []model.GroupTemplate{fireteam}, MaxRadius: 300},
			},
			wantErr: true,
		},
		{
			name: "thresholds not increasing",
			waves: []WaveSpec{
				{Number: 1, Threshold: 600 * time.Second, Groups: []model.GroupTemplate{fireteam}, MaxRadius: 300},
				{Number: 2, Threshold: 300 * time.Second, Groups: []model.GroupTemplate{fireteam}, MaxRadius: 300},
			},
			wantErr: true,
		},
		{
			name: "wave without groups",
			waves: []WaveSpec{
				{Number: 1, Threshold: 300 * time.Second, MaxRadius: 300},
			},
			wantErr: true,
		},
		{
			name: "inverted radius range",
			waves: []WaveSpec{
				{Number: 1, Threshold: 300 * time.Second, Groups: []model.GroupTemplate{fireteam}, MinRadius: 400, MaxRadius: 300},
			},
			wantErr: true,
		},
		{
			name: "unordered input is fine",
			waves: []WaveSpec{
				{Number: 2, Threshold: 600 * time.Second, Groups: []model.GroupTemplate{fireteam}, MaxRadius: 300},
				{Number: 1, Threshold: 300 * time.Second, Groups: []model.GroupTemplate{fireteam}, MaxRadius: 300},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateWaveTable(tt.waves)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterWavePrefabs(t *testing.T) {
	t.Parallel()

	var registered []string
	RegisterWavePrefabs(func(key string) { registered = append(registered, key) }, DefaultWaveTable())

	assert.ElementsMatch(t, []string{PrefabFireteam, PrefabRifleSquad, PrefabMechSquad, PrefabAttackHeli}, registered)
}
