package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jtrack/tracking-system/internal/core/ports"
)

// Scheduler remembers which references have been tracked recently and
// enqueues a refresh job for each of them on every tick. References not
// requested again within the retention window age out.
type Scheduler struct {
	mu         sync.Mutex
	seen       map[ports.TrackInput]time.Time
	dispatcher *Dispatcher
	interval   time.Duration
	retention  time.Duration
	log        zerolog.Logger
}

func NewScheduler(dispatcher *Dispatcher, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		seen:       make(map[ports.TrackInput]time.Time),
		dispatcher: dispatcher,
		interval:   interval,
		// A reference stays on the refresh schedule for a few intervals
		// after its last request.
		retention: 4 * interval,
		log:       log,
	}
}

// Record marks a reference as recently tracked.
func (s *Scheduler) Record(input ports.TrackInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[input] = time.Now()
}

// Start runs the refresh loop until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

func (s *Scheduler) tick() {
	cutoff := time.Now().Add(-s.retention)

	s.mu.Lock()
	due := make([]ports.TrackInput, 0, len(s.seen))
	for input, last := range s.seen {
		if last.Before(cutoff) {
			delete(s.seen, input)
			continue
		}
		due = append(due, input)
	}
	s.mu.Unlock()

	if len(due) == 0 {
		return
	}
	s.log.Debug().Int("jobs", len(due)).Msg("scheduling background refreshes")
	for _, input := range due {
		s.dispatcher.Enqueue(input)
	}
}
