package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/celpaint"
	"github.com/gogpu/celpaint/internal/config"
)

var errNoFrames = errors.New("no frame could be loaded")

// overrides are command line settings that take precedence over the job.
type overrides struct {
	output string
	format string
}

type result struct {
	frames int
	output string
}

// run loads the job's frames, applies its steps in order and exports the
// sequence.
func run(job *config.Job, ov overrides) (*result, error) {
	paths, err := job.ExpandInputs()
	if err != nil {
		return nil, err
	}

	name := job.Format
	if ov.format != "" {
		name = ov.format
	}
	format, err := celpaint.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	out := job.OutputDir()
	if ov.output != "" {
		out = ov.output
	}

	e := celpaint.NewEditor(
		celpaint.WithUndoLimit(job.UndoLimit),
		celpaint.WithExportFormat(format),
	)
	if e.OpenSequence(paths) == 0 {
		return nil, fmt.Errorf("%w (%d inputs)", errNoFrames, len(paths))
	}

	for i := range job.Steps {
		step := &job.Steps[i]
		if err := apply(e, step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step, err)
		}
		celpaint.Logger().Info("step done", "index", i, "step", step.String(), "status", e.StatusMessage())
	}

	if err := e.Sequence().Save(out, format); err != nil {
		return nil, err
	}
	return &result{frames: e.FrameCount(), output: out}, nil
}

// apply runs one job step through the editor so it lands in its history.
func apply(e *celpaint.Editor, s *config.Step) error {
	if s.Frame != nil {
		if *s.Frame >= e.FrameCount() {
			return fmt.Errorf("frame %d out of range (%d frames)", *s.Frame, e.FrameCount())
		}
		e.SetCurrentIndex(*s.Frame)
	}
	all := s.ScopeValue() == celpaint.ScopeAll

	switch s.Kind {
	case config.KindColorSwap:
		rules, err := s.SwapRules()
		if err != nil {
			return err
		}
		swaps := e.Swaps()
		swaps.Clear()
		for i, r := range rules {
			swaps.Add(r.Source, r.Dest, r.Tolerance)
			swaps.SetEnabled(i, r.Enabled)
		}
		e.ApplyColorReplacement(all)

	case config.KindGuideCheck:
		rules, err := s.GuideRules()
		if err != nil {
			return err
		}
		guides := e.Guides()
		guides.Clear()
		for i, r := range rules {
			guides.Add(r.Source, r.Mark, r.Tolerance)
			guides.SetEnabled(i, r.Enabled)
		}
		e.ApplyGuideCheck(all, s.Radius, s.Thickness)

	case config.KindAlphaCheck:
		params, err := s.AlphaParams()
		if err != nil {
			return err
		}
		e.ApplyAlphaCheck(all, params.CrossColor, params.CrossSize, params.Thickness)

	case config.KindUndo:
		for range s.Count {
			e.Undo()
		}

	case config.KindRedo:
		for range s.Count {
			e.Redo()
		}

	default:
		return fmt.Errorf("unknown step kind %q", s.Kind)
	}
	return nil
}

// watchJob re-runs the job every time its file changes until ctx is done.
func watchJob(ctx context.Context, path string, ov overrides, logger *slog.Logger) error {
	w := config.NewWatcher(path, 0)

	var mu sync.Mutex
	w.OnChange(func(job *config.Job) {
		mu.Lock()
		defer mu.Unlock()
		res, err := run(job, ov)
		if err != nil {
			logger.Error("job failed", "err", err)
			return
		}
		logger.Info("job done", "frames", res.frames, "output", res.output)
	})

	if err := w.Start(); err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	logger.Info("watching job file", "path", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			logger.Warn("job reload failed", "err", err)
		}
	}
}
