package celpaint

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/gogpu/celpaint/internal/imageio"
)

// ErrEmptySequence is returned when an operation needs at least one frame.
var ErrEmptySequence = errors.New("celpaint: empty sequence")

// Frame is one decoded image of a sequence together with the path it was
// loaded from.
type Frame struct {
	Path  string
	Image *Pixmap
}

// Snapshot maps frame indices to the pixels a frame had before an operation
// modified it.
type Snapshot map[int]*Pixmap

// Loader decodes the image stored at path.
type Loader func(path string) (image.Image, error)

// SequenceOption configures a Sequence during creation.
//
// Example:
//
//	seq := celpaint.NewSequence(celpaint.WithListener(ui))
type SequenceOption func(*sequenceOptions)

type sequenceOptions struct {
	listener Listener
	loader   Loader
}

func defaultSequenceOptions() sequenceOptions {
	return sequenceOptions{
		listener: NopListener{},
		loader:   imageio.Load,
	}
}

// WithListener sets the listener that receives change notifications.
func WithListener(l Listener) SequenceOption {
	return func(o *sequenceOptions) {
		if l != nil {
			o.listener = l
		}
	}
}

// WithLoader replaces the file decoder. The default decodes PNG, JPEG, GIF,
// BMP, TIFF and WebP, and TGA for paths with a .tga extension.
func WithLoader(fn Loader) SequenceOption {
	return func(o *sequenceOptions) {
		if fn != nil {
			o.loader = fn
		}
	}
}

// Sequence is the ordered list of frames being edited. It owns the pixel
// buffers of its frames and tracks the current frame.
//
// A Sequence is not safe for concurrent use.
type Sequence struct {
	frames   []Frame
	current  int
	listener Listener
	loader   Loader
}

// NewSequence creates an empty sequence.
func NewSequence(opts ...SequenceOption) *Sequence {
	o := defaultSequenceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Sequence{
		current:  -1,
		listener: o.listener,
		loader:   o.loader,
	}
}

// SetListener replaces the listener. Nil restores the no-op listener.
func (s *Sequence) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	s.listener = l
}

// Load replaces the sequence with the frames decoded from paths, in the order
// given. Paths that cannot be decoded are skipped. It returns the number of
// frames loaded.
func (s *Sequence) Load(paths []string) int {
	s.frames = nil
	s.current = -1

	for _, p := range paths {
		img, err := s.loader(p)
		if err != nil {
			Logger().Warn("skipping frame", "path", p, "err", err)
			continue
		}
		s.frames = append(s.frames, Frame{Path: p, Image: FromImage(img)})
	}

	n := len(s.frames)
	Logger().Info("sequence loaded", "frames", n, "skipped", len(paths)-n)

	s.listener.CountChanged(n)
	s.listener.SequenceLoaded(n)
	if n > 0 {
		s.current = 0
		s.listener.CurrentIndexChanged(0)
		s.listener.CurrentImageChanged(s.frames[0].Image)
	}
	return n
}

// Save writes every frame into dir, which is created if needed, under the
// base name of the path it was loaded from, encoded as format. Saving is
// best effort: a frame that fails does not stop the others, and the returned
// *ExportError lists every failure.
func (s *Sequence) Save(dir string, format Format) error {
	if len(s.frames) == 0 {
		return ErrEmptySequence
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return fmt.Errorf("celpaint: save: %w", err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("celpaint: create output directory: %w", err)
	}

	var exportErr ExportError
	for _, f := range s.frames {
		out := filepath.Join(dir, filepath.Base(f.Path))
		if err := imageio.Save(out, f.Image.ToImage(), format); err != nil {
			Logger().Warn("frame export failed", "path", out, "err", err)
			exportErr.Failed = append(exportErr.Failed, &FileError{Path: out, Err: err})
		}
	}

	Logger().Info("sequence saved", "dir", dir, "format", format,
		"written", len(s.frames)-len(exportErr.Failed), "failed", len(exportErr.Failed))
	if len(exportErr.Failed) > 0 {
		return &exportErr
	}
	return nil
}

// Count returns the number of frames.
func (s *Sequence) Count() int {
	return len(s.frames)
}

// CurrentIndex returns the index of the current frame, or -1 when the
// sequence is empty.
func (s *Sequence) CurrentIndex() int {
	return s.current
}

// SetCurrentIndex makes frame i current. Out-of-range indices and the
// already current index are ignored.
func (s *Sequence) SetCurrentIndex(i int) {
	if !s.valid(i) || i == s.current {
		return
	}
	s.current = i
	s.listener.CurrentIndexChanged(i)
	s.listener.CurrentImageChanged(s.frames[i].Image)
}

// CurrentImage returns the pixels of the current frame, or nil when the
// sequence is empty. The pixmap is owned by the sequence.
func (s *Sequence) CurrentImage() *Pixmap {
	return s.ImageAt(s.current)
}

// ImageAt returns the pixels of frame i, or nil when i is out of range.
// The pixmap is owned by the sequence.
func (s *Sequence) ImageAt(i int) *Pixmap {
	if !s.valid(i) {
		return nil
	}
	return s.frames[i].Image
}

// CurrentPath returns the source path of the current frame.
func (s *Sequence) CurrentPath() string {
	return s.PathAt(s.current)
}

// PathAt returns the source path of frame i, or "" when i is out of range.
func (s *Sequence) PathAt(i int) string {
	if !s.valid(i) {
		return ""
	}
	return s.frames[i].Path
}

// SetImage replaces the pixels of frame i with a copy of img. Out-of-range
// indices and nil images are ignored.
func (s *Sequence) SetImage(i int, img *Pixmap) {
	if !s.valid(i) || img == nil {
		return
	}
	s.frames[i].Image = img.Clone()
	s.listener.ImageModified(i, s.frames[i].Image)
	if i == s.current {
		s.listener.CurrentImageChanged(s.frames[i].Image)
	}
}

// ApplyColorSwap runs ReplaceColors over the frames selected by scope and
// returns the previous pixels of every frame it changed.
func (s *Sequence) ApplyColorSwap(scope Scope, rules []ColorSwapRule) Snapshot {
	return s.apply(s.targets(scope), colorSwapOp(rules))
}

// ApplyGuideCheck runs CheckGuides over the frames selected by scope and
// returns the previous pixels of every frame it changed.
func (s *Sequence) ApplyGuideCheck(scope Scope, rules []GuideCheckRule, radius, thickness int) Snapshot {
	return s.apply(s.targets(scope), guideCheckOp(rules, radius, thickness))
}

// ApplyAlphaCheck runs CheckAlpha over the frames selected by scope and
// returns the previous pixels of every frame it changed.
func (s *Sequence) ApplyAlphaCheck(scope Scope, params AlphaCheckParams) Snapshot {
	return s.apply(s.targets(scope), alphaCheckOp(params))
}

// frameOp modifies one frame in place and reports whether it changed.
type frameOp func(*Pixmap) bool

func colorSwapOp(rules []ColorSwapRule) frameOp {
	return func(p *Pixmap) bool { return ReplaceColors(p, rules) }
}

func guideCheckOp(rules []GuideCheckRule, radius, thickness int) frameOp {
	return func(p *Pixmap) bool { return CheckGuides(p, rules, radius, thickness) }
}

func alphaCheckOp(params AlphaCheckParams) frameOp {
	return func(p *Pixmap) bool { return CheckAlpha(p, params) }
}

// targets returns the frame indices selected by scope in ascending order.
func (s *Sequence) targets(scope Scope) []int {
	if scope == ScopeAll {
		indices := make([]int, len(s.frames))
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	if !s.valid(s.current) {
		return nil
	}
	return []int{s.current}
}

// apply runs op on each listed frame in order. Frames op reports as modified
// are recorded in the returned snapshot and announced to the listener.
func (s *Sequence) apply(indices []int, op frameOp) Snapshot {
	touched := make(Snapshot)
	for _, i := range indices {
		if !s.valid(i) {
			continue
		}
		img := s.frames[i].Image
		before := img.Clone()
		if !op(img) {
			continue
		}
		touched[i] = before
		Logger().Debug("frame modified", "index", i, "path", s.frames[i].Path)
		s.listener.ImageModified(i, img)
	}
	if _, ok := touched[s.current]; ok {
		s.listener.CurrentImageChanged(s.frames[s.current].Image)
	}
	return touched
}

func (s *Sequence) valid(i int) bool {
	return i >= 0 && i < len(s.frames)
}
