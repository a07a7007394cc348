package celpaint

// HistoryOption configures a History during creation.
type HistoryOption func(*History)

// WithLimit caps the number of commands kept. 0 means unlimited.
func WithLimit(n int) HistoryOption {
	return func(h *History) {
		h.limit = max(n, 0)
	}
}

// History is a linear undo stack. Commands before the current position are
// applied; commands after it have been undone and can be redone until a new
// command is pushed.
//
// A History is not safe for concurrent use.
type History struct {
	commands []Command
	index    int
	limit    int
	onChange func()
}

// NewHistory creates an empty history.
func NewHistory(opts ...HistoryOption) *History {
	h := &History{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push executes cmd and appends it, discarding every undone command.
func (h *History) Push(cmd Command) {
	if cmd == nil {
		return
	}
	cmd.Redo()

	h.commands = append(h.commands[:h.index], cmd)
	h.index++
	h.trim()
	Logger().Debug("history push", "command", cmd.Text(), "depth", h.index)
	h.changed()
}

// Undo reverts the command before the current position.
func (h *History) Undo() {
	if !h.CanUndo() {
		return
	}
	h.index--
	h.commands[h.index].Undo()
	h.changed()
}

// Redo re-applies the command at the current position.
func (h *History) Redo() {
	if !h.CanRedo() {
		return
	}
	h.commands[h.index].Redo()
	h.index++
	h.changed()
}

// CanUndo reports whether there is a command to undo.
func (h *History) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether there is a command to redo.
func (h *History) CanRedo() bool {
	return h.index < len(h.commands)
}

// UndoText returns the text of the command Undo would revert, or "".
func (h *History) UndoText() string {
	if !h.CanUndo() {
		return ""
	}
	return h.commands[h.index-1].Text()
}

// RedoText returns the text of the command Redo would apply, or "".
func (h *History) RedoText() string {
	if !h.CanRedo() {
		return ""
	}
	return h.commands[h.index].Text()
}

// Index returns the current position: the number of applied commands.
func (h *History) Index() int {
	return h.index
}

// Count returns the number of commands kept.
func (h *History) Count() int {
	return len(h.commands)
}

// Command returns the i-th command, or nil when i is out of range.
func (h *History) Command(i int) Command {
	if i < 0 || i >= len(h.commands) {
		return nil
	}
	return h.commands[i]
}

// Clear drops every command without undoing or redoing anything.
func (h *History) Clear() {
	if len(h.commands) == 0 {
		return
	}
	clear(h.commands)
	h.commands = h.commands[:0]
	h.index = 0
	h.changed()
}

// Limit returns the maximum number of commands kept, 0 meaning unlimited.
func (h *History) Limit() int {
	return h.limit
}

// SetLimit caps the number of commands kept. When the history already holds
// more, the oldest applied commands are dropped. 0 means unlimited.
func (h *History) SetLimit(n int) {
	h.limit = max(n, 0)
	if h.trim() {
		h.changed()
	}
}

// SetOnChange registers fn to be called after every change of position or
// content.
func (h *History) SetOnChange(fn func()) {
	h.onChange = fn
}

// trim drops the oldest applied commands beyond the limit. Undone commands
// are never dropped.
func (h *History) trim() bool {
	if h.limit == 0 {
		return false
	}
	drop := min(len(h.commands)-h.limit, h.index)
	if drop <= 0 {
		return false
	}
	clear(h.commands[:drop])
	h.commands = h.commands[drop:]
	h.index -= drop
	return true
}

func (h *History) changed() {
	if h.onChange != nil {
		h.onChange()
	}
}
