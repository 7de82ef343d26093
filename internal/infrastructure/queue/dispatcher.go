// Package queue runs the background cache-refresh workers. References
// that have been tracked recently get their documents re-scraped on an
// interval so cache hits stay close to the carrier's latest state.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/jtrack/tracking-system/internal/api/metrics"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes refresh jobs to a fixed set of workers using
// consistent hashing on the reference number, so concurrent refreshes of
// the same shipment never race each other.
type Dispatcher struct {
	workers []chan ports.TrackInput
	service ports.TrackingService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.TrackingService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.TrackInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TrackInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a refresh job to the worker responsible for its
// reference number. The call is non-blocking up to channelBuffer
// capacity; beyond that the job is dropped rather than stalling the
// request path.
func (d *Dispatcher) Enqueue(input ports.TrackInput) {
	select {
	case d.workers[d.shardIndex(input.RefNum)] <- input:
	default:
		metrics.RefreshJobsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("ref_num", input.RefNum).Msg("refresh queue full, job dropped")
	}
}

// shardIndex maps a reference number deterministically to a worker index.
func (d *Dispatcher) shardIndex(refNum string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(refNum))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TrackInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			if _, err := d.service.Refresh(ctx, input); err != nil {
				metrics.RefreshJobsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("carrier", input.Carrier).
					Str("ref_num", input.RefNum).
					Int("worker_id", id).
					Msg("background refresh failed")
				continue
			}
			metrics.RefreshJobsTotal.WithLabelValues("ok").Inc()
		}
	}
}
