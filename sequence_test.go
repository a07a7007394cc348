package celpaint

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// recorder is a Listener that records every notification as a string.
type recorder struct {
	events []string
}

func (r *recorder) SequenceLoaded(count int)      { r.add("loaded %d", count) }
func (r *recorder) CurrentIndexChanged(index int) { r.add("index %d", index) }
func (r *recorder) CountChanged(count int)        { r.add("count %d", count) }
func (r *recorder) CurrentImageChanged(*Pixmap)   { r.add("image") }
func (r *recorder) ImageModified(index int, _ *Pixmap) {
	r.add("modified %d", index)
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) reset() { r.events = nil }

// memLoader serves images from memory; unknown paths fail to decode.
func memLoader(images map[string]*Pixmap) Loader {
	return func(path string) (image.Image, error) {
		pm, ok := images[path]
		if !ok {
			return nil, fmt.Errorf("decode %s: %w", path, os.ErrNotExist)
		}
		return pm.ToImage(), nil
	}
}

// newTestSequence loads n frames filled with c (named f0.png, f1.png, ...).
func newTestSequence(t *testing.T, n int, c Color, rec *recorder) *Sequence {
	t.Helper()
	images := make(map[string]*Pixmap)
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("f%d.png", i)
		images[paths[i]] = fill(8, 8, c)
	}
	opts := []SequenceOption{WithLoader(memLoader(images))}
	if rec != nil {
		opts = append(opts, WithListener(rec))
	}
	seq := NewSequence(opts...)
	if got := seq.Load(paths); got != n {
		t.Fatalf("Load() = %d, want %d", got, n)
	}
	if rec != nil {
		rec.reset()
	}
	return seq
}

func TestSequenceLoadSkipsUndecodable(t *testing.T) {
	rec := &recorder{}
	seq := NewSequence(WithListener(rec), WithLoader(memLoader(map[string]*Pixmap{
		"b.png": fill(2, 2, Red),
		"a.png": fill(2, 2, Blue),
	})))

	n := seq.Load([]string{"b.png", "broken.png", "a.png"})

	if n != 2 || seq.Count() != 2 {
		t.Fatalf("Load() = %d, Count() = %d, want 2", n, seq.Count())
	}
	// Caller order is kept; no sorting.
	if seq.PathAt(0) != "b.png" || seq.PathAt(1) != "a.png" {
		t.Errorf("paths = %q, %q", seq.PathAt(0), seq.PathAt(1))
	}
	if seq.CurrentIndex() != 0 || seq.CurrentPath() != "b.png" {
		t.Errorf("current = %d (%q), want 0", seq.CurrentIndex(), seq.CurrentPath())
	}
	if seq.CurrentImage().Pixel(0, 0) != Red {
		t.Error("current image should be the first decoded frame")
	}
	want := []string{"count 2", "loaded 2", "index 0", "image"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestSequenceLoadNothing(t *testing.T) {
	rec := &recorder{}
	seq := NewSequence(WithListener(rec), WithLoader(memLoader(nil)))

	if n := seq.Load([]string{"missing.png"}); n != 0 {
		t.Fatalf("Load() = %d, want 0", n)
	}
	if seq.CurrentIndex() != -1 || seq.CurrentImage() != nil || seq.CurrentPath() != "" {
		t.Error("empty sequence should have no current frame")
	}
	want := []string{"count 0", "loaded 0"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestSequenceReloadReplacesFrames(t *testing.T) {
	seq := newTestSequence(t, 3, White, nil)
	seq.SetCurrentIndex(2)

	seq.Load([]string{"f1.png"})

	if seq.Count() != 1 || seq.CurrentIndex() != 0 {
		t.Errorf("after reload Count() = %d, CurrentIndex() = %d", seq.Count(), seq.CurrentIndex())
	}
}

func TestSequenceSetCurrentIndex(t *testing.T) {
	rec := &recorder{}
	seq := newTestSequence(t, 3, White, rec)

	seq.SetCurrentIndex(2)
	seq.SetCurrentIndex(2)  // unchanged
	seq.SetCurrentIndex(3)  // out of range
	seq.SetCurrentIndex(-1) // out of range

	if seq.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", seq.CurrentIndex())
	}
	want := []string{"index 2", "image"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestSequenceOutOfRangeAccess(t *testing.T) {
	rec := &recorder{}
	seq := newTestSequence(t, 2, White, rec)

	if seq.ImageAt(-1) != nil || seq.ImageAt(2) != nil {
		t.Error("ImageAt out of range should return nil")
	}
	if seq.PathAt(5) != "" {
		t.Error("PathAt out of range should return empty")
	}
	seq.SetImage(7, fill(8, 8, Red))
	seq.SetImage(0, nil)
	if len(rec.events) != 0 {
		t.Errorf("out-of-range SetImage notified: %v", rec.events)
	}
}

func TestSequenceSetImageCopies(t *testing.T) {
	rec := &recorder{}
	seq := newTestSequence(t, 2, White, rec)
	img := fill(8, 8, Red)

	seq.SetImage(1, img)
	img.Clear(Blue)

	if seq.ImageAt(1).Pixel(0, 0) != Red {
		t.Error("SetImage should store a copy")
	}
	seq.SetImage(0, img)
	want := []string{"modified 1", "modified 0", "image"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestSequenceSetListenerNil(t *testing.T) {
	rec := &recorder{}
	seq := newTestSequence(t, 2, White, rec)

	seq.SetListener(nil)
	seq.SetCurrentIndex(1)

	if len(rec.events) != 0 {
		t.Errorf("detached listener received %v", rec.events)
	}
}

func TestApplyColorSwapAllFrames(t *testing.T) {
	seq := newTestSequence(t, 3, White, nil)
	// Frame 1 has a non-white pixel that must survive.
	other := Color{R: 254, G: 255, B: 255, A: 255}
	seq.ImageAt(1).SetPixel(4, 4, other)

	snap := seq.ApplyColorSwap(ScopeAll, []ColorSwapRule{
		{Source: White, Dest: Blue, Enabled: true},
	})

	if len(snap) != 3 {
		t.Fatalf("snapshot has %d frames, want 3", len(snap))
	}
	for i := 0; i < 3; i++ {
		img := seq.ImageAt(i)
		for y := 0; y < img.Height(); y++ {
			for x := 0; x < img.Width(); x++ {
				want := Blue
				if i == 1 && x == 4 && y == 4 {
					want = other
				}
				if got := img.Pixel(x, y); got != want {
					t.Fatalf("frame %d pixel (%d,%d) = %v, want %v", i, x, y, got, want)
				}
			}
		}
		if snap[i].Pixel(0, 0) != White {
			t.Errorf("snapshot of frame %d should hold the white original", i)
		}
	}
}

func TestApplyColorSwapCurrentFrame(t *testing.T) {
	rec := &recorder{}
	seq := newTestSequence(t, 3, White, rec)
	seq.SetCurrentIndex(1)
	rec.reset()

	snap := seq.ApplyColorSwap(ScopeCurrent, []ColorSwapRule{
		{Source: White, Dest: Blue, Enabled: true},
	})

	if _, ok := snap[1]; !ok || len(snap) != 1 {
		t.Fatalf("snapshot keys = %v, want [1]", slices.Sorted(maps.Keys(snap)))
	}
	if seq.ImageAt(0).Pixel(0, 0) != White || seq.ImageAt(2).Pixel(0, 0) != White {
		t.Error("other frames must not change")
	}
	want := []string{"modified 1", "image"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestApplyReportsOnlyModifiedFrames(t *testing.T) {
	rec := &recorder{}
	seq := newTestSequence(t, 3, White, rec)
	seq.ImageAt(2).SetPixel(0, 0, Red)

	snap := seq.ApplyColorSwap(ScopeAll, []ColorSwapRule{
		{Source: Red, Dest: Green, Enabled: true},
	})

	if len(snap) != 1 || snap[2] == nil {
		t.Errorf("snapshot = %v, want only frame 2", snap)
	}
	// Frame 0 is current but untouched: no current image notification.
	want := []string{"modified 2"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestApplyOnEmptySequence(t *testing.T) {
	seq := NewSequence()

	if snap := seq.ApplyAlphaCheck(ScopeCurrent, DefaultAlphaCheckParams()); len(snap) != 0 {
		t.Errorf("snapshot = %v, want empty", snap)
	}
	if snap := seq.ApplyGuideCheck(ScopeAll, NewGuideList().Rules(), 10, 2); len(snap) != 0 {
		t.Errorf("snapshot = %v, want empty", snap)
	}
}

func TestApplyGuideAndAlphaCheck(t *testing.T) {
	seq := newTestSequence(t, 2, White, nil)
	block(seq.ImageAt(0), 3, 3, 2, 2, Green)
	block(seq.ImageAt(1), 0, 0, 2, 2, Transparent)

	guides := seq.ApplyGuideCheck(ScopeAll, NewGuideList().Enabled(), 2, 1)
	if len(guides) != 1 || guides[0] == nil {
		t.Errorf("guide check snapshot = %v, want frame 0", guides)
	}

	seq.SetCurrentIndex(1)
	alpha := seq.ApplyAlphaCheck(ScopeCurrent, DefaultAlphaCheckParams())
	if len(alpha) != 1 || alpha[1] == nil {
		t.Errorf("alpha check snapshot = %v, want frame 1", alpha)
	}
	if seq.ImageAt(1).Pixel(0, 0) != Red {
		t.Error("alpha check should mark the transparent corner")
	}
}

// writePNG encodes pm to dir/name.
func writePNG(t *testing.T, dir, name string, pm *Pixmap) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, pm.ToImage()); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSequenceSaveRoundTrip(t *testing.T) {
	in := t.TempDir()
	frames := []*Pixmap{fill(5, 4, Red), fill(5, 4, Color{R: 1, G: 2, B: 3, A: 100})}
	paths := []string{
		writePNG(t, in, "a.png", frames[0]),
		writePNG(t, in, "b.png", frames[1]),
	}

	seq := NewSequence()
	if seq.Load(paths) != 2 {
		t.Fatal("Load failed")
	}

	out := filepath.Join(t.TempDir(), "nested", "out")
	if err := seq.Save(out, FormatPNG); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded := NewSequence()
	n := reloaded.Load([]string{filepath.Join(out, "a.png"), filepath.Join(out, "b.png")})
	if n != 2 {
		t.Fatalf("reloaded %d frames, want 2", n)
	}
	for i := range frames {
		if !reloaded.ImageAt(i).Equal(frames[i]) {
			t.Errorf("frame %d changed across save and load", i)
		}
	}
}

func TestSequenceSaveReportsFailures(t *testing.T) {
	seq := newTestSequence(t, 3, White, nil)
	out := t.TempDir()
	// A directory in place of f1.png makes that single write fail.
	if err := os.Mkdir(filepath.Join(out, "f1.png"), 0o750); err != nil {
		t.Fatal(err)
	}

	err := seq.Save(out, FormatBMP)

	var exportErr *ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("Save() error = %v, want *ExportError", err)
	}
	if want := []string{filepath.Join(out, "f1.png")}; !slices.Equal(exportErr.Paths(), want) {
		t.Errorf("failed paths = %v, want %v", exportErr.Paths(), want)
	}
	for _, name := range []string{"f0.png", "f2.png"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s should still be written: %v", name, err)
		}
	}
}

func TestSequenceSaveErrors(t *testing.T) {
	if err := NewSequence().Save(t.TempDir(), FormatPNG); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("Save() on empty sequence error = %v, want ErrEmptySequence", err)
	}

	seq := newTestSequence(t, 1, White, nil)
	if err := seq.Save(t.TempDir(), Format("xcf")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save() with unknown format error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSequenceLoadSkipsOversizedTGA(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "a.png", fill(4, 4, White))

	// An 18-byte header declaring a 65535x65535 true-color image.
	hdr := make([]byte, 18)
	hdr[2], hdr[16] = 2, 32
	hdr[12], hdr[13], hdr[14], hdr[15] = 0xff, 0xff, 0xff, 0xff
	huge := filepath.Join(dir, "b.tga")
	if err := os.WriteFile(huge, hdr, 0o600); err != nil {
		t.Fatal(err)
	}

	seq := NewSequence()
	if got := seq.Load([]string{good, huge}); got != 1 {
		t.Fatalf("Load() = %d, want 1", got)
	}
	if seq.PathAt(0) != good {
		t.Errorf("PathAt(0) = %q, want %q", seq.PathAt(0), good)
	}
}
