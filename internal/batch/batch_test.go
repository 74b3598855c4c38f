package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"transcribe/internal/pipeline"
)

type scriptedRunner struct {
	failOn map[string]error
	calls  []string
}

func (r *scriptedRunner) Run(_ context.Context, req pipeline.Request) (pipeline.Result, error) {
	r.calls = append(r.calls, req.InputPath)
	if err, ok := r.failOn[req.InputPath]; ok {
		return pipeline.Result{}, err
	}
	return pipeline.Result{TranscriptPath: req.InputPath + ".txt"}, nil
}

func requests(inputs ...string) []pipeline.Request {
	reqs := make([]pipeline.Request, 0, len(inputs))
	for _, input := range inputs {
		reqs = append(reqs, pipeline.Request{InputPath: input, OutputFormat: "txt"})
	}
	return reqs
}

func TestRunIsolatesFailures(t *testing.T) {
	runner := &scriptedRunner{failOn: map[string]error{"b.mp4": errors.New("boom")}}

	summary := Run(context.Background(), runner, requests("a.mp4", "b.mp4", "c.mp4"), nil)

	if len(runner.calls) != 3 {
		t.Fatalf("all items should run, got calls %v", runner.calls)
	}
	if summary.Failed() != 1 || summary.Succeeded() != 2 {
		t.Fatalf("failed = %d succeeded = %d", summary.Failed(), summary.Succeeded())
	}
	if summary.Results[1].Err == nil {
		t.Fatal("second item should carry its error")
	}
	if summary.Results[2].TranscriptPath != "c.mp4.txt" {
		t.Fatalf("third item transcript = %q", summary.Results[2].TranscriptPath)
	}
}

func TestRunAssignsDistinctIDs(t *testing.T) {
	runner := &scriptedRunner{}
	summary := Run(context.Background(), runner, requests("a.mp4", "b.mp4"), nil)

	if summary.Results[0].ID == summary.Results[1].ID {
		t.Fatal("items should get distinct IDs")
	}
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &scriptedRunner{}
	summary := Run(ctx, runner, requests("a.mp4", "b.mp4"), nil)

	if len(runner.calls) != 0 {
		t.Fatalf("no items should run after cancellation, got %v", runner.calls)
	}
	if summary.Failed() != 2 {
		t.Fatalf("canceled items should be recorded as failed, got %d", summary.Failed())
	}
	for i, result := range summary.Results {
		if !errors.Is(result.Err, context.Canceled) {
			t.Fatalf("item %d error = %v, want context.Canceled", i, result.Err)
		}
	}
}

func TestRunEmptyBatch(t *testing.T) {
	summary := Run(context.Background(), &scriptedRunner{}, nil, nil)
	if len(summary.Results) != 0 || summary.Failed() != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestSummaryCounts(t *testing.T) {
	runner := &scriptedRunner{failOn: map[string]error{}}
	for i := 0; i < 3; i++ {
		runner.failOn[fmt.Sprintf("f%d.mp4", i)] = errors.New("bad")
	}
	summary := Run(context.Background(), runner, requests("f0.mp4", "f1.mp4", "f2.mp4", "ok.mp4"), nil)
	if summary.Failed() != 3 || summary.Succeeded() != 1 {
		t.Fatalf("failed = %d succeeded = %d", summary.Failed(), summary.Succeeded())
	}
}
