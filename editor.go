package celpaint

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
)

// EditorOption configures an Editor during creation.
type EditorOption func(*editorOptions)

type editorOptions struct {
	listener Listener
	loader   Loader
	limit    int
	format   Format
}

// WithEditorListener forwards every sequence notification to l after the
// editor has handled it.
func WithEditorListener(l Listener) EditorOption {
	return func(o *editorOptions) {
		o.listener = l
	}
}

// WithEditorLoader sets the frame decoder of the editor's sequence.
func WithEditorLoader(fn Loader) EditorOption {
	return func(o *editorOptions) {
		o.loader = fn
	}
}

// WithUndoLimit caps the editor's history. 0 means unlimited.
func WithUndoLimit(n int) EditorOption {
	return func(o *editorOptions) {
		o.limit = n
	}
}

// WithExportFormat sets the format SaveSequence writes. The default is PNG.
func WithExportFormat(f Format) EditorOption {
	return func(o *editorOptions) {
		o.format = f
	}
}

// Editor ties a Sequence to its rule lists, undo history, custom colors and
// view state. It is the entry point for interactive front ends and for the
// batch CLI.
type Editor struct {
	seq     *Sequence
	swaps   SwapList
	guides  *GuideList
	history *History
	custom  RecentColors

	forward Listener
	format  Format
	zoom    float64
	status  string
}

// NewEditor creates an editor with an empty sequence, an empty swap list and
// the default guide list.
func NewEditor(opts ...EditorOption) *Editor {
	o := editorOptions{format: FormatPNG}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Editor{
		guides:  NewGuideList(),
		history: NewHistory(WithLimit(o.limit)),
		forward: o.listener,
		format:  o.format,
		zoom:    1,
		status:  "Ready",
	}
	if e.forward == nil {
		e.forward = NopListener{}
	}
	e.seq = NewSequence(WithListener(editorEvents{e}), WithLoader(o.loader))
	return e
}

// Sequence returns the edited sequence.
func (e *Editor) Sequence() *Sequence { return e.seq }

// Swaps returns the color swap rules.
func (e *Editor) Swaps() *SwapList { return &e.swaps }

// Guides returns the guide check rules.
func (e *Editor) Guides() *GuideList { return e.guides }

// History returns the undo history.
func (e *Editor) History() *History { return e.history }

// CustomColors returns the recently used custom colors.
func (e *Editor) CustomColors() *RecentColors { return &e.custom }

// StatusMessage returns the last status line.
func (e *Editor) StatusMessage() string { return e.status }

// OpenSequence loads paths sorted lexically and returns the number of frames
// loaded. The undo history is cleared since its snapshots refer to the
// previous frames.
func (e *Editor) OpenSequence(paths []string) int {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)
	e.history.Clear()
	return e.seq.Load(sorted)
}

// SaveSequence writes every frame into dir in the editor's export format.
// It returns false when there is nothing to save or when any frame failed.
func (e *Editor) SaveSequence(dir string) bool {
	if e.seq.Count() == 0 {
		return false
	}
	err := e.seq.Save(dir, e.format)
	var exportErr *ExportError
	switch {
	case err == nil:
		e.setStatus("Sequence exported successfully.")
		return true
	case errors.As(err, &exportErr):
		e.setStatus(fmt.Sprintf("Export failed for %d of %d frames.", len(exportErr.Failed), e.seq.Count()))
	default:
		e.setStatus("Export failed: " + err.Error())
	}
	return false
}

// PickColorAt adds the color of pixel (x, y) of the current frame as a swap
// source. It reports whether a rule was added.
func (e *Editor) PickColorAt(x, y int) bool {
	img := e.seq.CurrentImage()
	if img == nil || x < 0 || x >= img.Width() || y < 0 || y >= img.Height() {
		return false
	}
	return e.swaps.AddSource(img.Pixel(x, y))
}

// ApplyColorReplacement pushes a color swap of the current rules.
func (e *Editor) ApplyColorReplacement(all bool) {
	e.history.Push(NewColorSwapCommand(e.seq, ScopeOf(all), e.swaps.Rules()))
	if all {
		e.setStatus("Replaced colors in all frames.")
	} else {
		e.setStatus("Replaced colors in current frame.")
	}
}

// ApplyGuideCheck pushes a guide check of the enabled guide rules.
func (e *Editor) ApplyGuideCheck(all bool, radius, thickness int) {
	e.history.Push(NewGuideCheckCommand(e.seq, ScopeOf(all), e.guides.Enabled(), radius, thickness))
	if all {
		e.setStatus("Guide check applied to all frames.")
	} else {
		e.setStatus("Guide check applied to current frame.")
	}
}

// ApplyAlphaCheck pushes an alpha check drawing crosses of the given color,
// size and thickness.
func (e *Editor) ApplyAlphaCheck(all bool, c Color, size, thickness int) {
	params := AlphaCheckParams{CrossColor: c, CrossSize: size, Thickness: thickness, ApplyToAll: all}
	e.history.Push(NewAlphaCheckCommand(e.seq, ScopeOf(all), params))
	if all {
		e.setStatus("Alpha check applied to all frames.")
	} else {
		e.setStatus("Alpha check applied to current frame.")
	}
}

// Undo reverts the last applied command.
func (e *Editor) Undo() {
	if text := e.history.UndoText(); text != "" {
		e.history.Undo()
		e.setStatus("Undo: " + text)
	}
}

// Redo re-applies the last undone command.
func (e *Editor) Redo() {
	if text := e.history.RedoText(); text != "" {
		e.history.Redo()
		e.setStatus("Redo: " + text)
	}
}

// CanUndo reports whether Undo has an effect.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo has an effect.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// SetCurrentIndex makes frame i current.
func (e *Editor) SetCurrentIndex(i int) { e.seq.SetCurrentIndex(i) }

// CurrentIndex returns the index of the current frame, or -1.
func (e *Editor) CurrentIndex() int { return e.seq.CurrentIndex() }

// FrameCount returns the number of frames.
func (e *Editor) FrameCount() int { return e.seq.Count() }

// Title returns "CelPaint" for an empty sequence and
// "CelPaint - <file> [<n>/<count>]" otherwise, n being 1-based.
func (e *Editor) Title() string {
	if e.seq.Count() == 0 {
		return "CelPaint"
	}
	return fmt.Sprintf("CelPaint - %s [%d/%d]",
		filepath.Base(e.seq.CurrentPath()), e.seq.CurrentIndex()+1, e.seq.Count())
}

// Zoom returns the view zoom factor, 1 meaning 100%.
func (e *Editor) Zoom() float64 { return e.zoom }

// SetZoom changes the view zoom factor and reports it in the status line.
func (e *Editor) SetZoom(level float64) {
	if math.Abs(e.zoom-level) <= 1e-12*math.Max(math.Abs(e.zoom), math.Abs(level)) {
		return
	}
	e.zoom = level
	e.setStatus(fmt.Sprintf("Zoom: %d%%", int(level*100)))
}

// AddCustomColor remembers c as a custom color.
func (e *Editor) AddCustomColor(c Color) bool {
	return e.custom.Add(c)
}

func (e *Editor) setStatus(msg string) {
	e.status = msg
}

// editorEvents keeps the editor's view state in sync with its sequence and
// forwards every notification.
type editorEvents struct {
	e *Editor
}

func (l editorEvents) SequenceLoaded(count int) {
	l.e.zoom = 1
	l.e.setStatus(fmt.Sprintf("Loaded %d frames", count))
	l.e.forward.SequenceLoaded(count)
}

func (l editorEvents) CurrentIndexChanged(index int)        { l.e.forward.CurrentIndexChanged(index) }
func (l editorEvents) CountChanged(count int)               { l.e.forward.CountChanged(count) }
func (l editorEvents) CurrentImageChanged(img *Pixmap)      { l.e.forward.CurrentImageChanged(img) }
func (l editorEvents) ImageModified(index int, img *Pixmap) { l.e.forward.ImageModified(index, img) }
