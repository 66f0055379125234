package model

import "testing"

func newTestGroup(memberCount int) *UnitGroup {
	faction := NewFaction("USSR", "Soviet Forces")
	tmpl := NewGroupTemplate("Group_Fireteam", "Fireteam", int32(memberCount))
	g := NewUnitGroup(100, tmpl, faction, NewPosition(0, 0, 0))
	for i := range memberCount {
		g.AddMember(NewUnit(uint32(200+i), faction, NewPosition(0, 0, 0)))
	}
	return g
}

func TestUnitGroup_AliveMemberCount(t *testing.T) {
	t.Parallel()

	g := newTestGroup(4)
	if got := g.AliveMemberCount(); got != 4 {
		t.Fatalf("AliveMemberCount() = %d; want 4", got)
	}

	g.Members()[0].SetAlive(false)
	g.Members()[1].SetAlive(false)
	if got := g.AliveMemberCount(); got != 2 {
		t.Errorf("AliveMemberCount() after two deaths = %d; want 2", got)
	}
}

func TestUnitGroup_SetDirective_Replaces(t *testing.T) {
	t.Parallel()

	g := newTestGroup(2)
	sp := NewStrongpoint(1, "Outpost A", NewPosition(500, 0, 0), g.Faction())

	g.SetDirective(Directive{Kind: DirectivePatrol, Target: NewPosition(0, 0, 0)})
	g.SetDirective(DefendDirective(sp))

	d := g.Directive()
	if d.Kind != DirectiveDefend {
		t.Errorf("Directive().Kind = %v; want DEFEND", d.Kind)
	}
	if d.Strongpoint != sp {
		t.Error("Directive().Strongpoint does not point at the assigned strongpoint")
	}
	if d.Target != sp.Position() {
		t.Errorf("Directive().Target = %v; want %v", d.Target, sp.Position())
	}
}

func TestUnitGroup_MarkRemoved(t *testing.T) {
	t.Parallel()

	g := newTestGroup(1)
	if g.IsRemoved() {
		t.Fatal("IsRemoved() on fresh group = true; want false")
	}
	g.MarkRemoved()
	if !g.IsRemoved() {
		t.Error("IsRemoved() after MarkRemoved = false; want true")
	}
}

func TestUnit_Profile(t *testing.T) {
	t.Parallel()

	u := NewUnit(1, NewFaction("US", "US Forces"), NewPosition(0, 0, 0))
	p := CombatProfile{Skill: SkillExpert, Perception: 1.5}
	u.SetProfile(p)

	if got := u.Profile(); got != p {
		t.Errorf("Profile() = %+v; want %+v", got, p)
	}
}
