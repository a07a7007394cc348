// Command celpaint runs batch jobs over cel animation sequences.
//
// A job file lists the input frames, the steps to apply (color swap, guide
// check, alpha check, undo and redo) and where to export the result:
//
//	celpaint -job walk.toml
//	celpaint -job walk.yaml -out /tmp/walk -format tiff -watch
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/celpaint"
	"github.com/gogpu/celpaint/internal/config"
)

func main() {
	var (
		jobPath = flag.String("job", "celpaint.toml", "job file (.toml, .yaml or .yml)")
		output  = flag.String("out", "", "export directory, overrides the job")
		format  = flag.String("format", "", "export format: png, jpeg, gif, bmp or tiff; overrides the job")
		watch   = flag.Bool("watch", false, "re-run the job whenever the job file changes")
		verbose = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	celpaint.SetLogger(logger)

	ov := overrides{output: *output, format: *format}

	job, err := config.Load(*jobPath)
	if err != nil {
		log.Fatalf("Failed to load job: %v", err)
	}
	res, err := run(job, ov)
	if err != nil && !*watch {
		log.Fatalf("Job failed: %v", err)
	}
	if err != nil {
		logger.Error("job failed", "err", err)
	} else {
		logger.Info("job done", "frames", res.frames, "output", res.output)
	}

	if !*watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := watchJob(ctx, *jobPath, ov, logger); err != nil {
		log.Fatalf("Watch failed: %v", err)
	}
}
