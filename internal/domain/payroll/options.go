package payroll

import (
	"io"
	"log/slog"
	"time"
)

// Recorder receives engine outcomes for metrics. The default discards them.
type Recorder interface {
	PaycheckComputed(outcome string, elapsed time.Duration)
	ProtectedFloorBound(garnishmentType string)
	SupportCapBound()
}

type noopRecorder struct{}

func (noopRecorder) PaycheckComputed(string, time.Duration) {}
func (noopRecorder) ProtectedFloorBound(string)             {}
func (noopRecorder) SupportCapBound()                       {}

type Option func(e *Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithClock sets the time source stamped on audits.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithTraceLevel(level TraceLevel) Option {
	return func(e *Engine) {
		e.traceLevel = level
	}
}

// WithStrictYtdYear makes a prior YTD year that differs from the check year
// an error instead of a trace note.
func WithStrictYtdYear(strict bool) Option {
	return func(e *Engine) {
		e.strictYtdYear = strict
	}
}

func WithEarningConfig(repo EarningConfigRepository) Option {
	return func(e *Engine) {
		if repo != nil {
			e.earningConfig = repo
		}
	}
}

func WithDeductionConfig(repo DeductionConfigRepository) Option {
	return func(e *Engine) {
		if repo != nil {
			e.deductionConfig = repo
		}
	}
}

func WithOvertimePolicy(policy OvertimePolicy) Option {
	return func(e *Engine) {
		if policy != nil {
			e.overtime = policy
		}
	}
}

func WithProrationStrategy(strategy ProrationStrategy) Option {
	return func(e *Engine) {
		if strategy != nil {
			e.proration = strategy
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
