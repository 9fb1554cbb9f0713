package kepler

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// propagateJob is a unit of work for the worker pool.
type propagateJob struct {
	index int
	orbit Orbit
}

// propagateResult is the state of a single orbit at the batch time.
type propagateResult struct {
	index    int
	anomaly  Anomaly
	position Vector3
}

// Propagator computes many orbits at the same instant over a fixed number of goroutines.
type Propagator struct {
	workers int
	logger  log.Logger
	metrics *Metrics
}

// NewPropagator creates a propagator with the given number of workers. A nil
// logger discards everything and nil metrics are not registered anywhere.
func NewPropagator(workers int, logger log.Logger, metrics *Metrics) *Propagator {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Propagator{workers, log.With(logger, "subsys", "batch"), metrics}
}

// Positions returns the position of every orbit at dt, in the order of orbits.
func (p *Propagator) Positions(ctx context.Context, orbits []Orbit, dt time.Time) ([]Vector3, error) {
	positions := make([]Vector3, len(orbits))
	err := p.propagate(ctx, orbits, dt, func(r propagateResult) {
		positions[r.index] = r.position
	})
	if err != nil {
		return nil, err
	}
	return positions, nil
}

// Anomalies returns the anomaly of every orbit at dt, in the order of orbits.
func (p *Propagator) Anomalies(ctx context.Context, orbits []Orbit, dt time.Time) ([]Anomaly, error) {
	anomalies := make([]Anomaly, len(orbits))
	err := p.propagate(ctx, orbits, dt, func(r propagateResult) {
		anomalies[r.index] = r.anomaly
	})
	if err != nil {
		return nil, err
	}
	return anomalies, nil
}

// propagate fans the orbits out to the workers and hands every result to
// collect from the calling goroutine. Cancelling ctx stops feeding new jobs
// and the context error is returned.
func (p *Propagator) propagate(ctx context.Context, orbits []Orbit, dt time.Time, collect func(propagateResult)) error {
	if len(orbits) == 0 {
		return ctx.Err()
	}
	start := time.Now()
	defer p.metrics.observeBatch(start)

	jobs := make(chan propagateJob, p.workers*2)
	results := make(chan propagateResult, p.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				an := job.orbit.Anomaly(dt)
				result := propagateResult{job.index, an, job.orbit.PositionAt(an.TrueAnomaly)}
				select {
				case results <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, orbit := range orbits {
			select {
			case jobs <- propagateJob{i, orbit}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	nonConverged := 0
	for result := range results {
		p.metrics.observe(result.anomaly)
		if !result.anomaly.Solution.Converged {
			nonConverged++
			level.Debug(p.logger).Log("msg", "solver hit the iteration cap", "index", result.index, "regime", result.anomaly.Regime, "iterations", result.anomaly.Solution.Iterations, "orbit", orbits[result.index])
		}
		collect(result)
	}
	if err := ctx.Err(); err != nil {
		level.Warn(p.logger).Log("msg", "batch cancelled", "orbits", len(orbits), "err", err)
		return err
	}
	level.Debug(p.logger).Log("msg", "batch done", "orbits", len(orbits), "nonconverged", nonConverged, "duration", time.Since(start))
	return nil
}
