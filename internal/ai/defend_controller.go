package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
)

// holdRadius is how far a defending unit may drift from the directive target
// before the controller walks it back.
const holdRadius = 75.0

// defendStep is how far a unit moves toward the target per tick, in meters.
const defendStep = 25.0

// DefendController keeps a unit group's members near its directive target,
// for both patrol and defend orders. It is deliberately minimal: real combat
// behavior lives in the engine's perception and firing systems, this
// controller only enforces the standing order position.
type DefendController struct {
	group     *model.UnitGroup
	isRunning atomic.Bool
	tickCount atomic.Int32
}

// NewDefendController creates a controller for the given group.
func NewDefendController(group *model.UnitGroup) *DefendController {
	return &DefendController{group: group}
}

// Start starts the controller.
func (c *DefendController) Start() {
	c.isRunning.Store(true)
	slog.Debug("defend controller started",
		"group", c.group.ObjectID(),
		"directive", c.group.Directive().Kind.String())
}

// Stop stops the controller.
func (c *DefendController) Stop() {
	c.isRunning.Store(false)
	slog.Debug("defend controller stopped", "group", c.group.ObjectID())
}

// Tick walks strayed members back toward the directive target.
func (c *DefendController) Tick() {
	if !c.isRunning.Load() {
		return
	}
	if c.group.IsRemoved() {
		return
	}

	directive := c.group.Directive()
	switch directive.Kind {
	case model.DirectivePatrol, model.DirectiveDefend:
	default:
		return
	}

	c.tickCount.Add(1)

	for _, unit := range c.group.Members() {
		if !unit.IsAlive() {
			continue
		}
		pos := unit.Position()
		if pos.WithinRange(directive.Target, holdRadius) {
			continue
		}
		unit.SetPosition(stepToward(pos, directive.Target, defendStep))
	}
}

// stepToward moves from toward to by at most step meters.
func stepToward(from, to model.Position, step float64) model.Position {
	dist := from.Distance(to)
	if dist <= step || dist == 0 {
		return to
	}
	scale := step / dist
	return from.Offset((to.X-from.X)*scale, (to.Y-from.Y)*scale, (to.Z-from.Z)*scale)
}
