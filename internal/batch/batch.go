package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"transcribe/internal/logging"
	"transcribe/internal/pipeline"
)

// Runner executes one transcription run. *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}

// ItemResult records the outcome of one batch item.
type ItemResult struct {
	ID             uuid.UUID
	InputPath      string
	TranscriptPath string
	Elapsed        time.Duration
	Err            error
}

// Summary aggregates a whole batch run.
type Summary struct {
	Results []ItemResult
}

// Failed counts items that ended in error.
func (s Summary) Failed() int {
	failed := 0
	for _, result := range s.Results {
		if result.Err != nil {
			failed++
		}
	}
	return failed
}

// Succeeded counts items that produced a transcript.
func (s Summary) Succeeded() int {
	return len(s.Results) - s.Failed()
}

// Run executes requests strictly sequentially. Each item gets its own ID and
// its own outcome; a failure is recorded and the batch moves on. Context
// cancellation stops the batch, marking unprocessed items with the context
// error.
func Run(ctx context.Context, runner Runner, requests []pipeline.Request, logger *slog.Logger) Summary {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With("component", "batch")

	summary := Summary{Results: make([]ItemResult, 0, len(requests))}
	for _, req := range requests {
		item := ItemResult{ID: uuid.New(), InputPath: req.InputPath}

		if err := ctx.Err(); err != nil {
			item.Err = err
			summary.Results = append(summary.Results, item)
			continue
		}

		start := time.Now()
		result, err := runner.Run(ctx, req)
		item.Elapsed = time.Since(start)
		if err != nil {
			item.Err = err
			logger.Warn("batch item failed", "item", item.ID, "input", req.InputPath, "error", err)
		} else {
			item.TranscriptPath = result.TranscriptPath
			logger.Info("batch item complete", "item", item.ID, "input", req.InputPath, "transcript", result.TranscriptPath, "elapsed", item.Elapsed)
		}
		summary.Results = append(summary.Results, item)
	}
	return summary
}
