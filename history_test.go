package celpaint

import "testing"

// countingCommand counts Redo and Undo calls.
type countingCommand struct {
	text       string
	redo, undo int
	log        *[]string
}

func (c *countingCommand) Redo() {
	c.redo++
	if c.log != nil {
		*c.log = append(*c.log, "redo "+c.text)
	}
}

func (c *countingCommand) Undo() {
	c.undo++
	if c.log != nil {
		*c.log = append(*c.log, "undo "+c.text)
	}
}

func (c *countingCommand) Text() string { return c.text }

func TestHistoryPushExecutes(t *testing.T) {
	h := NewHistory()
	cmd := &countingCommand{text: "a"}

	h.Push(cmd)

	if cmd.redo != 1 {
		t.Errorf("Push ran Redo %d times, want 1", cmd.redo)
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Error("after Push: want CanUndo and not CanRedo")
	}
	if h.UndoText() != "a" || h.RedoText() != "" {
		t.Errorf("UndoText() = %q, RedoText() = %q", h.UndoText(), h.RedoText())
	}
}

func TestHistoryUndoRedo(t *testing.T) {
	var log []string
	h := NewHistory()
	h.Push(&countingCommand{text: "a", log: &log})
	h.Push(&countingCommand{text: "b", log: &log})

	h.Undo()
	h.Undo()
	h.Undo() // nothing left
	h.Redo()

	want := []string{"redo a", "redo b", "undo b", "undo a", "redo a"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	if h.Index() != 1 || h.Count() != 2 {
		t.Errorf("Index() = %d, Count() = %d, want 1, 2", h.Index(), h.Count())
	}
	if h.RedoText() != "b" {
		t.Errorf("RedoText() = %q, want b", h.RedoText())
	}
}

func TestHistoryPushDiscardsUndone(t *testing.T) {
	h := NewHistory()
	h.Push(&countingCommand{text: "a"})
	h.Push(&countingCommand{text: "b"})
	h.Undo()

	h.Push(&countingCommand{text: "c"})

	if h.Count() != 2 || h.CanRedo() {
		t.Fatalf("Count() = %d, CanRedo() = %v, want 2, false", h.Count(), h.CanRedo())
	}
	if h.Command(1).Text() != "c" {
		t.Errorf("second command = %q, want c", h.Command(1).Text())
	}
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(WithLimit(2))
	for _, s := range []string{"a", "b", "c"} {
		h.Push(&countingCommand{text: s})
	}

	if h.Count() != 2 || h.Index() != 2 {
		t.Fatalf("Count() = %d, Index() = %d, want 2, 2", h.Count(), h.Index())
	}
	if h.Command(0).Text() != "b" {
		t.Errorf("oldest kept = %q, want b", h.Command(0).Text())
	}
}

func TestHistorySetLimitKeepsUndone(t *testing.T) {
	h := NewHistory()
	for _, s := range []string{"a", "b", "c", "d"} {
		h.Push(&countingCommand{text: s})
	}
	h.Undo()
	h.Undo()

	h.SetLimit(1)

	// Only applied commands are dropped.
	if h.Count() != 2 || h.Index() != 0 {
		t.Fatalf("Count() = %d, Index() = %d, want 2, 0", h.Count(), h.Index())
	}
	if h.RedoText() != "c" || h.Limit() != 1 {
		t.Errorf("RedoText() = %q, Limit() = %d", h.RedoText(), h.Limit())
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	cmd := &countingCommand{text: "a"}
	h.Push(cmd)

	h.Clear()

	if h.Count() != 0 || h.CanUndo() || h.CanRedo() {
		t.Error("Clear should empty the history")
	}
	if cmd.undo != 0 {
		t.Error("Clear must not undo commands")
	}
	if h.Command(0) != nil {
		t.Error("Command(0) on empty history should be nil")
	}
}

func TestHistoryOnChange(t *testing.T) {
	h := NewHistory()
	calls := 0
	h.SetOnChange(func() { calls++ })

	h.Push(&countingCommand{text: "a"})
	h.Undo()
	h.Undo() // no-op
	h.Redo()
	h.Redo() // no-op
	h.Clear()
	h.Clear() // no-op
	h.Push(nil)

	if calls != 4 {
		t.Errorf("onChange called %d times, want 4", calls)
	}
}

func TestHistoryWithSequence(t *testing.T) {
	seq := newTestSequence(t, 3, White, nil)
	original := frames(seq)
	h := NewHistory()

	h.Push(NewColorSwapCommand(seq, ScopeAll, []ColorSwapRule{{Source: White, Dest: Blue, Enabled: true}}))
	h.Push(NewAlphaCheckCommand(seq, ScopeAll, DefaultAlphaCheckParams()))
	h.Push(NewColorSwapCommand(seq, ScopeCurrent, []ColorSwapRule{{Source: Blue, Dest: Red, Enabled: true}}))

	if seq.ImageAt(0).Pixel(0, 0) != Red || seq.ImageAt(1).Pixel(0, 0) != Blue {
		t.Fatal("unexpected frame state after three commands")
	}
	if h.UndoText() != "Color Swap" {
		t.Errorf("UndoText() = %q, want Color Swap", h.UndoText())
	}

	for h.CanUndo() {
		h.Undo()
	}
	assertFrames(t, seq, original)
}
