package linter

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("herb.linter")
	meter  = otel.Meter("herb.linter")
)

var (
	lintLatency   metric.Float64Histogram
	filesTotal    metric.Int64Counter
	offensesTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the driver instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		lintLatency, err = meter.Float64Histogram(
			"herb_lint_file_duration_seconds",
			metric.WithDescription("Duration of linting a single file"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		filesTotal, err = meter.Int64Counter(
			"herb_lint_files_total",
			metric.WithDescription("Total number of files linted"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		offensesTotal, err = meter.Int64Counter(
			"herb_lint_offenses_total",
			metric.WithDescription("Total offenses reported, by rule"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startFileSpan(ctx context.Context, path string, fix bool) (context.Context, trace.Span) {
	return tracer.Start(ctx, "linter.File",
		trace.WithAttributes(
			attribute.String("file.path", path),
			attribute.Bool("lint.fix", fix),
		),
	)
}

func recordFileMetrics(ctx context.Context, fr *FileResult, d time.Duration) {
	if initMetrics() != nil {
		return
	}
	status := "ok"
	if fr.Err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	lintLatency.Record(ctx, d.Seconds(), attrs)
	filesTotal.Add(ctx, 1, attrs)

	if fr.Lint == nil {
		return
	}
	byRule := make(map[string]int64)
	for _, o := range fr.Lint.Offenses {
		byRule[o.Code]++
	}
	for rule, n := range byRule {
		offensesTotal.Add(ctx, n, metric.WithAttributes(attribute.String("rule", rule)))
	}
}
