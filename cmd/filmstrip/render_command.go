package main

import (
	"errors"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"filmstrip/internal/assembler"
	"filmstrip/internal/codec"
	"filmstrip/internal/config"
	"filmstrip/internal/faults"
	"filmstrip/internal/logging"
	"filmstrip/internal/preflight"
	"filmstrip/internal/renderlock"
	"filmstrip/internal/renderlog"
	"filmstrip/internal/sink/ffmpegsink"
)

// progressInterval controls how often render progress is flushed to the
// render history store.
const progressInterval = 25

type renderOptions struct {
	output    string
	duration  float64
	durations string
	overwrite bool
	jsonOut   bool
}

type renderSummary struct {
	Title    string  `json:"title"`
	Output   string  `json:"output"`
	Frames   uint64  `json:"frames"`
	Duration float64 `json:"duration_seconds"`
	JobID    int64   `json:"job_id"`
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <image|directory>...",
		Short: "Render an ordered image sequence into a video",
		Long: `Render decodes the given images (or every supported image inside the
given directories, in lexical order) and encodes them into a video in
submission order. Frame durations come from --durations, --duration, or
default to one encoder tick per frame.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if opts.overwrite {
				cfg.Render.Overwrite = true
			}
			return runRender(cmd, cfg, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Destination video file (defaults into the output directory)")
	cmd.Flags().Float64Var(&opts.duration, "duration", 0, "Uniform seconds per frame")
	cmd.Flags().StringVar(&opts.durations, "durations", "", "Comma-separated seconds per frame, one entry per frame")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "Replace the destination if it already exists")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Emit the render summary as JSON")

	return cmd
}

func runRender(cmd *cobra.Command, cfg *config.Config, args []string, opts renderOptions) error {
	images, err := collectImages(args)
	if err != nil {
		return err
	}
	durations, err := frameDurations(len(images), opts.duration, opts.durations, cfg.Render.FPS)
	if err != nil {
		return err
	}

	results := preflight.Run(cfg)
	if !preflight.Passed(results) {
		for _, result := range results {
			if !result.Passed {
				fmt.Fprintf(cmd.ErrOrStderr(), "preflight %s: %s\n", result.Name, result.Detail)
			}
		}
		return errors.New("preflight checks failed")
	}

	output, err := resolveOutput(cfg, opts.output, args[0])
	if err != nil {
		return err
	}
	title := displayTitle(args[0])

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	lock, err := renderlock.Acquire(output)
	if err != nil {
		return err
	}
	defer lock.Release()

	store, err := renderlog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	job, err := store.NewJob(cmd.Context(), output, int64(len(images)))
	if err != nil {
		return err
	}
	if err := store.MarkRunning(cmd.Context(), job.ID); err != nil {
		return err
	}

	logger.Info("render started",
		logging.String(logging.FieldComponent, "cli"),
		logging.String("title", title),
		logging.String("output", output),
		logging.Int("frames", len(images)),
	)

	sink, err := ffmpegsink.New(output, cfg.Render.Width, cfg.Render.Height, ffmpegsink.Options{
		Binary:     cfg.FFmpegBinary(),
		FPS:        cfg.Render.FPS,
		VideoCodec: cfg.Render.VideoCodec,
		Overwrite:  cfg.Render.Overwrite,
		Logger:     logger,
	})
	if err != nil {
		_ = store.MarkFailed(cmd.Context(), job.ID, err.Error())
		return err
	}

	frameCodec, err := codec.NewRGBA(cfg.Render.Width, cfg.Render.Height)
	if err != nil {
		_ = store.MarkFailed(cmd.Context(), job.ID, err.Error())
		return err
	}

	pipeline, err := assembler.New(sink, frameCodec, assembler.Options{
		Workers:          cfg.Render.Workers,
		PendingHighWater: cfg.Render.PendingHighWater,
		PendingLowWater:  cfg.Render.PendingLowWater,
		SinkReadyRetries: cfg.Render.SinkReadyRetries,
		SinkReadyBackoff: time.Duration(cfg.Render.SinkReadyBackoffMS) * time.Millisecond,
		Logger:           logger,
	})
	if err != nil {
		_ = store.MarkFailed(cmd.Context(), job.ID, err.Error())
		return err
	}

	feedErr := feedFrames(cmd, store, job.ID, pipeline, images, durations)
	if feedErr != nil {
		abortRender(sink, output)
		_ = store.MarkFailed(cmd.Context(), job.ID, feedErr.Error())
		return feedErr
	}

	if err := pipeline.Finish(); err != nil {
		if errors.Is(err, faults.ErrTransient) {
			// The encoder already exited; only the artifact is suspect.
			_ = os.Remove(output)
		} else {
			// Poisoned stream: the sink was left untouched, shut it down.
			abortRender(sink, output)
		}
		_ = store.MarkFailed(cmd.Context(), job.ID, err.Error())
		return err
	}

	if err := store.MarkCompleted(cmd.Context(), job.ID, int64(pipeline.Committed()), pipeline.Position()); err != nil {
		return err
	}

	summary := renderSummary{
		Title:    title,
		Output:   output,
		Frames:   pipeline.Committed(),
		Duration: pipeline.Position(),
		JobID:    job.ID,
	}
	if opts.jsonOut {
		return writeJSON(cmd, summary)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s: %d frames, %.2fs -> %s\n",
		summary.Title, summary.Frames, summary.Duration, summary.Output)
	return nil
}

// feedFrames decodes images one at a time and submits them in order, flushing
// progress to the history store at a fixed cadence.
func feedFrames(cmd *cobra.Command, store *renderlog.Store, jobID int64, pipeline *assembler.Pipeline, images []string, durations []float64) error {
	for i, path := range images {
		img, err := loadImage(path)
		if err != nil {
			return err
		}
		if err := pipeline.AddFrame(img, durations[i]); err != nil {
			return err
		}
		if (i+1)%progressInterval == 0 {
			_ = store.UpdateProgress(cmd.Context(), jobID, int64(pipeline.Committed()))
		}
	}
	return nil
}

// abortRender shuts the encoder down after a mid-stream failure and removes
// the partial artifact. The finalize error is irrelevant at this point.
func abortRender(sink *ffmpegsink.Sink, output string) {
	sink.CloseInput()
	done := make(chan error, 1)
	sink.Finalize(func(err error) { done <- err })
	<-done
	_ = os.Remove(output)
}

// resolveOutput picks the destination path: an explicit flag wins, otherwise
// the first input's base name lands in the configured output directory.
func resolveOutput(cfg *config.Config, flag, firstInput string) (string, error) {
	if strings.TrimSpace(flag) != "" {
		return config.ExpandPath(flag)
	}

	base := filepath.Base(strings.TrimSuffix(firstInput, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "filmstrip"
	}
	return filepath.Join(cfg.Paths.OutputDir, base+".mp4"), nil
}
