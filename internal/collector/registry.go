package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Guliveer/hwinfo/internal/models"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single collector run.
const DefaultTimeout = 30 * time.Second

// Registry manages all registered collectors and orchestrates concurrent collection.
type Registry struct {
	collectors  []Collector
	logger      *zap.Logger
	timeout     time.Duration
	concurrency int
}

// Option configures a Registry.
type Option func(*Registry)

// WithTimeout sets the per-collector timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithConcurrency limits how many collectors run at once. Zero means one
// goroutine per selected collector.
func WithConcurrency(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRegistry creates a new collector registry with the given logger.
func NewRegistry(logger *zap.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		collectors: make([]Collector, 0),
		logger:     logger,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a collector if it's available on the current platform.
// Unavailable collectors are logged and skipped.
func (r *Registry) Register(c Collector) {
	if c.IsAvailable() {
		r.collectors = append(r.collectors, c)
		r.logger.Debug("Registered collector", zap.String("name", string(c.Name())))
	} else {
		r.logger.Info("Collector not available, skipping", zap.String("name", string(c.Name())))
	}
}

// Lookup returns the registered collector for a component.
func (r *Registry) Lookup(name models.Component) (Collector, bool) {
	for _, c := range r.collectors {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Collectors returns a copy of all registered collectors.
func (r *Registry) Collectors() []Collector {
	result := make([]Collector, len(r.collectors))
	copy(result, r.collectors)
	return result
}

// CollectAll runs the collectors of the named components concurrently and
// returns one result per name, in the order given. Failed, timed out or
// missing collectors yield a result carrying a *CollectionError; they never
// prevent the other collectors from completing.
func (r *Registry) CollectAll(ctx context.Context, names []models.Component, verbosity models.Verbosity) []models.CollectorResult {
	results := make([]models.CollectorResult, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup

	limit := r.concurrency
	if limit <= 0 || limit > len(names) {
		limit = len(names)
	}
	sem := make(chan struct{}, max(limit, 1))

	for i, name := range names {
		col, ok := r.Lookup(name)
		if !ok {
			results[i] = models.CollectorResult{
				Name:  name,
				Error: &CollectionError{Component: name, Err: ErrUnavailable},
			}
			continue
		}

		wg.Add(1)
		go func(i int, col Collector) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			start := time.Now()
			data, err := r.run(ctx, col, verbosity)
			if err != nil {
				r.logger.Warn("Collection failed",
					zap.String("collector", string(col.Name())),
					zap.Error(err))
			}
			r.logger.Debug("Collector finished",
				zap.String("collector", string(col.Name())),
				zap.Duration("elapsed", time.Since(start)))

			mu.Lock()
			results[i] = models.CollectorResult{Name: col.Name(), Data: data, Error: err}
			mu.Unlock()
		}(i, col)
	}

	wg.Wait()
	return results
}

type outcome struct {
	data any
	err  error
}

// run executes one collector under its own timeout. A collector that panics
// or overruns the deadline is reported as a CollectionError.
func (r *Registry) run(ctx context.Context, col Collector, verbosity models.Verbosity) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", p)}
			}
		}()
		data, err := col.Collect(ctx, verbosity)
		done <- outcome{data: data, err: err}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-ctx.Done():
		out = outcome{err: ctx.Err()}
	}

	if out.err != nil {
		return out.data, &CollectionError{Component: col.Name(), Err: out.err}
	}
	return out.data, nil
}
