package model

import "fmt"

// GroupTemplate describes a unit group that can be instantiated by the spawn
// system: which prefab to load and how many members to populate it with.
type GroupTemplate struct {
	prefabKey   string
	displayName string
	memberCount int32
}

// NewGroupTemplate creates a new group template.
func NewGroupTemplate(prefabKey, displayName string, memberCount int32) GroupTemplate {
	return GroupTemplate{
		prefabKey:   prefabKey,
		displayName: displayName,
		memberCount: memberCount,
	}
}

// PrefabKey returns the prefab resource key.
func (t GroupTemplate) PrefabKey() string {
	return t.prefabKey
}

// DisplayName returns the human-readable group name.
func (t GroupTemplate) DisplayName() string {
	return t.displayName
}

// MemberCount returns how many units the group is populated with.
func (t GroupTemplate) MemberCount() int32 {
	return t.memberCount
}

// String implements fmt.Stringer.
func (t GroupTemplate) String() string {
	return fmt.Sprintf("%s(%s x%d)", t.displayName, t.prefabKey, t.memberCount)
}
