package reinforce

import "github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"

// ElectCoordinator deterministically selects the coordinator among the spawn
// points bound to the given strongpoint: the candidate with the minimum
// object ID wins. Any participant evaluating the same set reaches the same
// answer, so no central authority is needed.
//
// Returns nil if no candidate is bound to the strongpoint.
func ElectCoordinator(candidates []*SpawnPoint, sp *model.Strongpoint) *SpawnPoint {
	if sp == nil {
		return nil
	}

	var winner *SpawnPoint
	for _, c := range candidates {
		if c.Strongpoint() != sp {
			continue
		}
		if winner == nil || c.ID() < winner.ID() {
			winner = c
		}
	}
	return winner
}
