package celpaint

import (
	"maps"
	"slices"
)

// Command is a reversible edit of a Sequence.
type Command interface {
	// Redo applies the edit.
	Redo()
	// Undo restores the frames the edit changed.
	Undo()
	// Text describes the edit for menus and logs.
	Text() string
}

// CommandState is the lifecycle position of a command.
type CommandState int

const (
	// StateUnexecuted means Redo has never run.
	StateUnexecuted CommandState = iota
	// StateExecuted means the edit is applied.
	StateExecuted
	// StateUndone means the edit was applied and then undone.
	StateUndone
)

// String returns the state name.
func (s CommandState) String() string {
	switch s {
	case StateUnexecuted:
		return "unexecuted"
	case StateExecuted:
		return "executed"
	case StateUndone:
		return "undone"
	default:
		return "unknown"
	}
}

// snapshotCommand holds the undo bookkeeping shared by every frame command.
type snapshotCommand struct {
	seq   *Sequence
	scope Scope
	text  string

	// index is the frame a ScopeCurrent command is bound to; -1 until the
	// first Redo.
	index    int
	snapshot Snapshot
	state    CommandState
}

func newSnapshotCommand(seq *Sequence, scope Scope, name string) snapshotCommand {
	text := name
	if scope == ScopeAll {
		text = "Batch " + name
	}
	return snapshotCommand{seq: seq, scope: scope, text: text, index: -1}
}

// Text returns "<Name>" for the current frame and "Batch <Name>" for all
// frames.
func (c *snapshotCommand) Text() string {
	return c.text
}

// Scope returns the frames the command targets.
func (c *snapshotCommand) Scope() Scope {
	return c.scope
}

// State returns the lifecycle position of the command.
func (c *snapshotCommand) State() CommandState {
	return c.state
}

// Snapshot returns the pixels the command restores on Undo. It is nil before
// the first Redo.
func (c *snapshotCommand) Snapshot() Snapshot {
	return c.snapshot
}

func (c *snapshotCommand) targets() []int {
	if c.scope == ScopeAll {
		return c.seq.targets(ScopeAll)
	}
	if c.index < 0 {
		c.index = c.seq.CurrentIndex()
	}
	if c.index < 0 {
		return nil
	}
	return []int{c.index}
}

// run applies op. The first run keeps the returned snapshot as is; later
// runs only add frames the snapshot does not hold yet, so the snapshot always
// carries the pixels from before the first run.
func (c *snapshotCommand) run(op frameOp) {
	result := c.seq.apply(c.targets(), op)
	if c.snapshot == nil {
		c.snapshot = result
	} else {
		for i, img := range result {
			if _, ok := c.snapshot[i]; !ok {
				c.snapshot[i] = img
			}
		}
	}
	c.state = StateExecuted
	Logger().Debug("command applied", "command", c.text, "frames", len(result))
}

// Undo writes every snapshot buffer back into the sequence, in ascending
// frame order.
func (c *snapshotCommand) Undo() {
	for _, i := range slices.Sorted(maps.Keys(c.snapshot)) {
		c.seq.SetImage(i, c.snapshot[i])
	}
	c.state = StateUndone
	Logger().Debug("command undone", "command", c.text, "frames", len(c.snapshot))
}

// ColorSwapCommand applies a list of color swap rules.
type ColorSwapCommand struct {
	snapshotCommand
	rules []ColorSwapRule
}

// NewColorSwapCommand creates a command that applies rules to the frames
// selected by scope. The rules are copied.
func NewColorSwapCommand(seq *Sequence, scope Scope, rules []ColorSwapRule) *ColorSwapCommand {
	return &ColorSwapCommand{
		snapshotCommand: newSnapshotCommand(seq, scope, "Color Swap"),
		rules:           slices.Clone(rules),
	}
}

// Redo applies the color swap.
func (c *ColorSwapCommand) Redo() {
	c.run(colorSwapOp(c.rules))
}

// GuideCheckCommand rings the regions matched by guide check rules.
type GuideCheckCommand struct {
	snapshotCommand
	rules     []GuideCheckRule
	radius    int
	thickness int
}

// NewGuideCheckCommand creates a command that runs the guide check on the
// frames selected by scope. The rules are copied.
func NewGuideCheckCommand(seq *Sequence, scope Scope, rules []GuideCheckRule, radius, thickness int) *GuideCheckCommand {
	return &GuideCheckCommand{
		snapshotCommand: newSnapshotCommand(seq, scope, "Guide Check"),
		rules:           slices.Clone(rules),
		radius:          radius,
		thickness:       thickness,
	}
}

// Redo applies the guide check.
func (c *GuideCheckCommand) Redo() {
	c.run(guideCheckOp(c.rules, c.radius, c.thickness))
}

// AlphaCheckCommand marks fully transparent regions.
type AlphaCheckCommand struct {
	snapshotCommand
	params AlphaCheckParams
}

// NewAlphaCheckCommand creates a command that runs the alpha check on the
// frames selected by scope.
func NewAlphaCheckCommand(seq *Sequence, scope Scope, params AlphaCheckParams) *AlphaCheckCommand {
	return &AlphaCheckCommand{
		snapshotCommand: newSnapshotCommand(seq, scope, "Alpha Check"),
		params:          params,
	}
}

// Redo applies the alpha check.
func (c *AlphaCheckCommand) Redo() {
	c.run(alphaCheckOp(c.params))
}
