// Package celpaint batch-edits cel animation sequences: ordered lists of
// raster frames decoded into straight-alpha RGBA8 pixmaps.
//
// # Overview
//
// Three pixel operations are provided, each usable on one pixmap or through
// a Sequence on the current frame or on every frame:
//   - Color swap: rule-based color replacement with per-channel tolerance
//     (ReplaceColors, Sequence.ApplyColorSwap).
//   - Guide check: every 4-connected region of a guide color gets an
//     anti-aliased ring around its centroid (CheckGuides).
//   - Alpha check: every fully transparent region gets an "X" at its
//     centroid (CheckAlpha).
//
// # Quick Start
//
//	seq := celpaint.NewSequence()
//	seq.Load([]string{"walk_01.png", "walk_02.png", "walk_03.png"})
//
//	history := celpaint.NewHistory()
//	history.Push(celpaint.NewColorSwapCommand(seq, celpaint.ScopeAll, []celpaint.ColorSwapRule{
//	    {Source: celpaint.White, Dest: celpaint.Blue, Enabled: true},
//	}))
//	history.Undo() // frames are byte-identical to what was loaded
//
//	if err := seq.Save("out", celpaint.FormatPNG); err != nil {
//	    log.Fatal(err)
//	}
//
// # Undo
//
// Commands keep the pixels of every frame they changed, captured on their
// first execution. Undo writes those pixels back without re-running any
// operation.
//
// # Notifications
//
// A Sequence reports loads, navigation and modifications to a single
// Listener. Embed NopListener to handle only some of them.
//
// # Concurrency
//
// Everything runs synchronously on the caller's goroutine. Sequence,
// History and Editor are not safe for concurrent use.
//
// # Logging
//
// celpaint is silent by default. See SetLogger.
package celpaint
