package model

// AISkill represents the combat skill level applied to spawned units.
type AISkill int32

const (
	SkillRookie  AISkill = 0
	SkillRegular AISkill = 1
	SkillVeteran AISkill = 2
	SkillExpert  AISkill = 3
)

// String returns a human-readable skill name.
func (s AISkill) String() string {
	switch s {
	case SkillRookie:
		return "ROOKIE"
	case SkillRegular:
		return "REGULAR"
	case SkillVeteran:
		return "VETERAN"
	case SkillExpert:
		return "EXPERT"
	default:
		return "UNKNOWN"
	}
}

// CombatProfile holds the per-unit AI tuning parameters written after spawn.
// Value type, assigned as a whole to avoid partially applied tuning.
type CombatProfile struct {
	Skill      AISkill
	Perception float64 // perception multiplier, 1.0 = baseline
}
