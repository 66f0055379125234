package ai

import (
	"log/slog"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
)

// Player-count tier boundaries for combat tuning.
// Tiers are coarse on purpose: small-group sessions get baseline AI, full
// servers get elevated skill and perception.
const (
	tierHighPlayers = 10

	baselinePerception = 1.0
	elevatedPerception = 1.5
)

// ProfileForPlayerCount returns the combat tuning profile for spawned units
// given the current number of connected players.
//
// A lone player keeps the expert skill level but with baseline perception, so
// solo sessions stay challenging without the AI spotting through bushes.
func ProfileForPlayerCount(players int) model.CombatProfile {
	switch {
	case players <= 1:
		return model.CombatProfile{Skill: model.SkillExpert, Perception: baselinePerception}
	case players < tierHighPlayers:
		return model.CombatProfile{Skill: model.SkillVeteran, Perception: baselinePerception}
	default:
		return model.CombatProfile{Skill: model.SkillExpert, Perception: elevatedPerception}
	}
}

// ApplyProfile writes the tuning profile to every member of the group.
func ApplyProfile(group *model.UnitGroup, profile model.CombatProfile) {
	for _, unit := range group.Members() {
		unit.SetProfile(profile)
	}

	slog.Debug("combat profile applied",
		"group", group.ObjectID(),
		"skill", profile.Skill.String(),
		"perception", profile.Perception,
		"members", group.MemberCount())
}
