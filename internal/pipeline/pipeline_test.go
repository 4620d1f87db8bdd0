package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/nao1215/scrubsnap/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, report *model.RunReport) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, report *model.RunReport) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, report)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func newTestReport() *model.RunReport {
	return model.NewRunReport("in.html", "out.html")
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "test-step"})

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "first"})
		p.AddSteps(&mockStep{name: "second"}, &mockStep{name: "third"})

		want := []string{"first", "second", "third"}
		if got := p.StepNames(); !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)
		record := func(name string) func(context.Context, *model.RunReport) error {
			return func(_ context.Context, _ *model.RunReport) error {
				executionOrder = append(executionOrder, name)
				return nil
			}
		}

		p := New()
		p.AddSteps(
			&mockStep{name: "step-1", doFunc: record("step-1")},
			&mockStep{name: "step-2", doFunc: record("step-2")},
		)

		report := newTestReport()
		if err := p.Execute(t.Context(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(executionOrder, []string{"step-1", "step-2"}) {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
		if !slices.Equal(report.PerformedSteps, []string{"step-1", "step-2"}) {
			t.Errorf("unexpected performed steps: %v", report.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New()
		p.AddSteps(
			&mockStep{
				name: "failing-step",
				doFunc: func(_ context.Context, _ *model.RunReport) error {
					return expectedErr
				},
			},
			second,
		)

		report := newTestReport()
		err := p.Execute(t.Context(), report)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
		if report.ErrorMessage != expectedErr.Error() {
			t.Errorf("expected error message %q, got %q", expectedErr.Error(), report.ErrorMessage)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New()
		p.AddStep(step)

		report := newTestReport()
		err := p.Execute(ctx, report)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
		if !errors.Is(report.Error, context.Canceled) {
			t.Errorf("expected report error to be context.Canceled, got %v", report.Error)
		}
	})
}

// TestPipelineStepNames tests the StepNames method.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	if names := New().StepNames(); len(names) != 0 {
		t.Errorf("expected empty slice, got %v", names)
	}
}

// TestDefaultPipelineConfig tests the DefaultPipelineConfig options.
func TestDefaultPipelineConfig(t *testing.T) {
	t.Parallel()

	cfg := &DefaultPipelineConfig{}
	WithPipelineDryRun(true)(cfg)
	WithPipelineSkipAudit(true)(cfg)
	WithPipelineMaxImageSize(1024)(cfg)

	if !cfg.DryRun {
		t.Error("expected DryRun to be true")
	}
	if !cfg.SkipAudit {
		t.Error("expected SkipAudit to be true")
	}
	if cfg.MaxImageSize != 1024 {
		t.Errorf("expected MaxImageSize 1024, got %d", cfg.MaxImageSize)
	}
}
