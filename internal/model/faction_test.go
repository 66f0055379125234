package model

import "testing"

func TestFaction_IdentityComparison(t *testing.T) {
	t.Parallel()

	us := NewFaction("US", "US Forces")
	usClone := NewFaction("US", "US Forces")
	ussr := NewFaction("USSR", "Soviet Forces")

	// Two factions with the same key are still different factions.
	if !us.IsHostileTo(usClone) {
		t.Error("IsHostileTo(same-key clone) = false; want true (identity comparison)")
	}
	if !us.IsHostileTo(ussr) {
		t.Error("IsHostileTo(other faction) = false; want true")
	}
	if us.IsHostileTo(us) {
		t.Error("IsHostileTo(self) = true; want false")
	}
	if us.IsHostileTo(nil) {
		t.Error("IsHostileTo(nil) = true; want false")
	}
}

func TestStrongpoint_IsHeldBy(t *testing.T) {
	t.Parallel()

	us := NewFaction("US", "US Forces")
	ussr := NewFaction("USSR", "Soviet Forces")
	sp := NewStrongpoint(1, "Outpost A", NewPosition(0, 0, 0), ussr)

	if !sp.IsHeldBy(ussr) {
		t.Error("IsHeldBy(owner) = false; want true")
	}
	if sp.IsHeldBy(us) {
		t.Error("IsHeldBy(other) = true; want false")
	}
	if sp.IsHeldBy(nil) {
		t.Error("IsHeldBy(nil) = true; want false")
	}

	sp.SetFaction(nil)
	if sp.IsHeldBy(ussr) {
		t.Error("IsHeldBy after contested = true; want false")
	}
}
