package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"paycalc/internal/domain/payroll"
)

// Computer is the part of the engine the pool depends on.
type Computer interface {
	Compute(in payroll.PaycheckInput) (payroll.PaycheckComputation, error)
}

// BatchObserver is notified of each submitted batch.
type BatchObserver interface {
	BatchSubmitted(size int)
}

type Service struct {
	engine   Computer
	workers  int
	logger   *slog.Logger
	observer BatchObserver
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithObserver(o BatchObserver) Option {
	return func(s *Service) {
		s.observer = o
	}
}

func New(engine Computer, workers int, opts ...Option) *Service {
	if workers <= 0 {
		workers = 1
	}
	s := &Service{engine: engine, workers: workers, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is one paycheck's outcome. A failed paycheck carries Err and does
// not stop the rest of the batch.
type Result struct {
	PaycheckID  payroll.PaycheckID
	Computation payroll.PaycheckComputation
	Err         error
}

type Batch struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

func (b Batch) Failed() int {
	n := 0
	for _, r := range b.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// RunNow computes a single paycheck on the calling goroutine.
func (s *Service) RunNow(in payroll.PaycheckInput) Result {
	comp, err := s.engine.Compute(in)
	return Result{PaycheckID: in.PaycheckID, Computation: comp, Err: err}
}

// RunBatch computes every input with at most workers paychecks in flight.
// Results keep input order. Only context cancellation aborts the batch.
func (s *Service) RunBatch(ctx context.Context, inputs []payroll.PaycheckInput) (Batch, error) {
	batch := Batch{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		Results:   make([]Result, len(inputs)),
	}
	if s.observer != nil {
		s.observer.BatchSubmitted(len(inputs))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := s.RunNow(in)
			if res.Err != nil {
				s.logger.Warn("paycheck run failed", "batchId", batch.ID, "paycheckId", in.PaycheckID, "err", res.Err)
			}
			batch.Results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Batch{}, err
	}
	batch.FinishedAt = time.Now()
	s.logger.Info("batch completed", "batchId", batch.ID, "paychecks", len(inputs), "failed", batch.Failed(), "elapsed", batch.FinishedAt.Sub(batch.StartedAt))
	return batch, nil
}
