package helpboard

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for helpboard_sdk_operations_total.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeReadOnly = "read_only"
	outcomeError    = "error"
)

// allCollections labels operations that are not scoped to one collection.
const allCollections = "all"

// outcome buckets an operation error so that caller mistakes and missing
// listings are not counted as failures.
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrListingNotFound), errors.Is(err, ErrCollectionNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrInvalidListing), errors.Is(err, ErrInvalidQuery):
		return outcomeInvalid
	case errors.Is(err, ErrReadOnly):
		return outcomeReadOnly
	default:
		return outcomeError
	}
}

type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	ops, err := registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "helpboard",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "SDK operations by operation, collection and outcome.",
	}, []string{"operation", "collection", "outcome"}))
	if err != nil {
		return nil, err
	}
	dur, err := registerOrReuse(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "helpboard",
		Subsystem: "sdk",
		Name:      "operation_duration_seconds",
		Help:      "SDK operation latency by operation and collection.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"operation", "collection"}))
	if err != nil {
		return nil, err
	}
	return &sdkMetrics{operations: ops, duration: dur}, nil
}

// registerOrReuse registers c, or returns the collector already registered
// under the same descriptor so several clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("helpboard: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("helpboard: metric already registered as %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer logs and counts SDK operations. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}
	m, err := newSDKMetrics(reg)
	if err != nil {
		return nil, err
	}
	o.metrics = m
	return o, nil
}

// observe records one finished operation. col is empty for client-wide
// operations such as ping.
func (o *observer) observe(op string, col Collection, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	scope := string(col)
	if scope == "" {
		scope = allCollections
	}
	result := outcome(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, scope, result).Inc()
		o.metrics.duration.WithLabelValues(op, scope).Observe(dur.Seconds())
	}
	if o.logger == nil {
		return
	}

	attrs := []any{"op", op, "collection", scope, "outcome", result, "duration", dur}
	switch result {
	case outcomeOK:
		o.logger.Debug("operation completed", attrs...)
	case outcomeError:
		o.logger.Warn("operation failed", append(attrs, "error", err)...)
	default:
		o.logger.Info("operation rejected", append(attrs, "error", err)...)
	}
}
