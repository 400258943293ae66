// Package reaper periodically deletes expired recommendation rows.
// Reads filter on expiry themselves, so the reaper is purely space
// reclamation.
package reaper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/forkcast/backend/internal/service"
)

const (
	defaultInterval = time.Hour
	runTimeout      = time.Minute
)

// Reaper runs the expiry sweep on a schedule.
type Reaper struct {
	scheduler gocron.Scheduler
	store     service.IRecommendationService
}

// New creates a Reaper sweeping at the given interval (hourly when
// interval <= 0).
func New(store service.IRecommendationService, interval time.Duration) (*Reaper, error) {
	if interval <= 0 {
		interval = defaultInterval
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	r := &Reaper{scheduler: scheduler, store: store}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(r.run),
	); err != nil {
		return nil, fmt.Errorf("failed to schedule reap job: %w", err)
	}
	return r, nil
}

// Start begins the schedule.
func (r *Reaper) Start() {
	r.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for a running sweep.
func (r *Reaper) Stop() error {
	return r.scheduler.Shutdown()
}

func (r *Reaper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	count, err := r.store.ReapExpired(ctx)
	if err != nil {
		log.Printf("recommendation reap failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("reaped %d expired recommendations", count)
	}
}
