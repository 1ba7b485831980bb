package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"paycalc/internal/domain/payroll"
	"paycalc/internal/platform/config"
	"paycalc/internal/platform/jobs"
	"paycalc/internal/platform/logging"
	"paycalc/internal/platform/metrics"
	"paycalc/internal/scenario"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a YAML scenario file")
	outPath := flag.String("out", "", "write results here instead of stdout")
	auditOnly := flag.Bool("audit-only", false, "emit audits without paychecks")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}
	logger := logging.Setup(cfg.LogLevel)

	if *scenarioPath == "" {
		logger.Error("-scenario is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := io.WriteCloser(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			logger.Error("open output failed", "path", *outPath, "err", err)
			os.Exit(1)
		}
		out = f
	}

	failed, err := run(ctx, cfg, logger, *scenarioPath, *auditOnly, out)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = cerr
	}
	stop()
	if err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
	if failed > 0 {
		logger.Warn("paychecks did not match expectations", "count", failed)
		os.Exit(1)
	}
}

type report struct {
	Name       string                  `json:"name"`
	PaycheckID payroll.PaycheckID      `json:"paycheckId"`
	Paycheck   *payroll.PaycheckResult `json:"paycheck,omitempty"`
	Audit      *payroll.PaycheckAudit  `json:"audit,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Mismatches []string                `json:"mismatches,omitempty"`
}

// run computes every paycheck in the scenario and writes one JSON report per
// paycheck. It returns how many paychecks missed their expectations.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger, path string, auditOnly bool, out io.Writer) (int, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return 0, err
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}
	opts := engineOptions(cfg, logger, sc)
	if collector != nil {
		opts = append(opts, payroll.WithRecorder(collector))
	}
	engine := payroll.NewEngine(opts...)

	poolOpts := []jobs.Option{jobs.WithLogger(logger)}
	if collector != nil {
		poolOpts = append(poolOpts, jobs.WithObserver(collector))
	}
	pool := jobs.New(engine, cfg.Workers, poolOpts...)

	batch, err := pool.RunBatch(ctx, sc.Inputs())
	if err != nil {
		return 0, err
	}

	reports := make([]report, 0, len(batch.Results))
	failed := 0
	for i, res := range batch.Results {
		c := sc.Cases[i]
		r := report{Name: c.Name, PaycheckID: res.PaycheckID}
		if res.Err != nil {
			r.Error = res.Err.Error()
			if c.Expect == nil || c.Expect.Error == "" || !strings.Contains(r.Error, c.Expect.Error) {
				failed++
			}
		} else {
			audit := res.Computation.Audit
			r.Audit = &audit
			if !auditOnly {
				paycheck := res.Computation.Paycheck
				r.Paycheck = &paycheck
			}
			r.Mismatches = c.Mismatches(res.Computation.Paycheck)
			if c.Expect != nil && c.Expect.Error != "" {
				r.Mismatches = append(r.Mismatches, "expected error: "+c.Expect.Error)
			}
			if len(r.Mismatches) > 0 {
				failed++
			}
		}
		reports = append(reports, r)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return 0, fmt.Errorf("write results: %w", err)
	}

	if collector != nil && cfg.MetricsTextfile != "" {
		if err := collector.WriteTextfile(cfg.MetricsTextfile); err != nil {
			return 0, fmt.Errorf("write metrics: %w", err)
		}
		logger.Debug("metrics written", "path", cfg.MetricsTextfile)
	}
	logger.Info("scenario finished", "path", path, "batchId", batch.ID, "paychecks", len(reports), "failed", failed)
	return failed, nil
}

func engineOptions(cfg config.Config, logger *slog.Logger, sc scenario.Scenario) []payroll.Option {
	return []payroll.Option{
		payroll.WithLogger(logger),
		payroll.WithTraceLevel(payroll.TraceLevel(strings.ToUpper(cfg.TraceLevel))),
		payroll.WithStrictYtdYear(cfg.StrictYtdYear),
		payroll.WithProrationStrategy(prorationStrategy(cfg.ProrationPolicy)),
		payroll.WithEarningConfig(sc.Earnings),
		payroll.WithDeductionConfig(sc.Deductions),
	}
}

func prorationStrategy(name string) payroll.ProrationStrategy {
	switch strings.ToLower(name) {
	case "workdays":
		return payroll.Workdays{}
	case "thirty_day_month":
		return payroll.ThirtyDayMonth{}
	default:
		return payroll.CalendarDays{}
	}
}
