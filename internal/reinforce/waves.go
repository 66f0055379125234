package reinforce

import (
	"fmt"
	"sort"
	"time"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
)

// Prefab keys for the default wave force compositions.
const (
	PrefabFireteam   = "Group_Fireteam"
	PrefabRifleSquad = "Group_RifleSquad"
	PrefabMechSquad  = "Group_MechanizedSquad"
	PrefabAttackHeli = "Vehicle_AttackHelicopter"
)

// WaveSpec describes one escalation tier: what to spawn, where around the
// strongpoint, and how much uninterrupted combat time unlocks it.
type WaveSpec struct {
	Number    int32
	Threshold time.Duration // elapsed combat time required
	Groups    []model.GroupTemplate
	MinRadius float64 // meters from the strongpoint
	MaxRadius float64
	Aircraft  string // aerial asset prefab key, empty = none
}

// DefaultWaveTable returns the canonical four-wave escalation table.
// Waves are strictly ordered by threshold; the last wave brings in air support.
func DefaultWaveTable() []WaveSpec {
	fireteam := model.NewGroupTemplate(PrefabFireteam, "Fireteam", 4)
	rifleSquad := model.NewGroupTemplate(PrefabRifleSquad, "Rifle Squad", 8)
	mechSquad := model.NewGroupTemplate(PrefabMechSquad, "Mechanized Squad", 10)

	return []WaveSpec{
		{
			Number:    1,
			Threshold: 300 * time.Second,
			Groups:    []model.GroupTemplate{fireteam, fireteam},
			MinRadius: 100,
			MaxRadius: 300,
		},
		{
			Number:    2,
			Threshold: 600 * time.Second,
			Groups:    []model.GroupTemplate{rifleSquad, rifleSquad},
			MinRadius: 100,
			MaxRadius: 300,
		},
		{
			Number:    3,
			Threshold: 900 * time.Second,
			Groups:    []model.GroupTemplate{rifleSquad, rifleSquad, rifleSquad},
			MinRadius: 150,
			MaxRadius: 400,
		},
		{
			Number:    4,
			Threshold: 1200 * time.Second,
			Groups:    []model.GroupTemplate{mechSquad, mechSquad, mechSquad},
			MinRadius: 150,
			MaxRadius: 400,
			Aircraft:  PrefabAttackHeli,
		},
	}
}

// ValidateWaveTable checks that the table is usable: wave numbers start at 1
// and increase by one, and thresholds strictly increase with wave number.
func ValidateWaveTable(waves []WaveSpec) error {
	if len(waves) == 0 {
		return fmt.Errorf("wave table is empty")
	}

	sorted := make([]WaveSpec, len(waves))
	copy(sorted, waves)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	for i, w := range sorted {
		if w.Number != int32(i+1) {
			return fmt.Errorf("wave numbers must be contiguous from 1, got %d at index %d", w.Number, i)
		}
		if i > 0 && w.Threshold <= sorted[i-1].Threshold {
			return fmt.Errorf("wave %d threshold %s not greater than wave %d threshold %s",
				w.Number, w.Threshold, sorted[i-1].Number, sorted[i-1].Threshold)
		}
		if len(w.Groups) == 0 {
			return fmt.Errorf("wave %d has no unit groups", w.Number)
		}
		if w.MinRadius < 0 || w.MaxRadius < w.MinRadius {
			return fmt.Errorf("wave %d has invalid radius range [%f, %f]", w.Number, w.MinRadius, w.MaxRadius)
		}
	}

	return nil
}

// sortWavesDescending returns the table ordered highest wave number first,
// the evaluation order of the escalation state machine.
func sortWavesDescending(waves []WaveSpec) []WaveSpec {
	sorted := make([]WaveSpec, len(waves))
	copy(sorted, waves)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number > sorted[j].Number })
	return sorted
}

// RegisterWavePrefabs registers every prefab the table references so the
// world can instantiate them.
func RegisterWavePrefabs(register func(key string), waves []WaveSpec) {
	seen := make(map[string]struct{})
	for _, w := range waves {
		for _, g := range w.Groups {
			if _, ok := seen[g.PrefabKey()]; !ok {
				seen[g.PrefabKey()] = struct{}{}
				register(g.PrefabKey())
			}
		}
		if w.Aircraft != "" {
			if _, ok := seen[w.Aircraft]; !ok {
				seen[w.Aircraft] = struct{}{}
				register(w.Aircraft)
			}
		}
	}
}
