package analyticsimpl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
)

const sweepWorkers = 3

// ScheduleSweep sets up a periodic job that collects a snapshot for
// every published post. The job honors context cancellation and shuts
// the scheduler down when the app stops.
func (a *AggregatorImpl) ScheduleSweep(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create sweep scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(a.Config.Analytics.SweepInterval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				a.Logger.Info("Context cancelled, stopping metrics sweep")
				return
			}

			sweepCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()

			a.runSweep(sweepCtx)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule metrics sweep: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		a.Logger.Info("Stopping metrics sweep scheduler")
		if err := scheduler.Shutdown(); err != nil {
			a.Logger.Error("Failed to shut down sweep scheduler", "error", err)
		}
	}()

	return nil
}

func (a *AggregatorImpl) runSweep(ctx context.Context) {
	a.Logger.Info("Starting metrics sweep")

	posts, err := a.PostRepo.ListPublished(ctx)
	if err != nil {
		a.Logger.Error("Failed to list published posts for sweep", "error", err)
		return
	}

	if len(posts) == 0 {
		a.Logger.Info("No published posts, skipping sweep")
		return
	}

	var wg sync.WaitGroup
	pool, _ := ants.NewPool(sweepWorkers, ants.WithPreAlloc(true))
	defer pool.Release()

	var collected, failed int
	var mu sync.Mutex

	for _, p := range posts {
		wg.Add(1)
		target := p

		err := pool.Submit(func() {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			default:
			}

			if _, err := a.CollectSnapshot(ctx, target.ID); err != nil {
				a.Logger.Warn("Sweep collection failed for post",
					"post_id", target.ID, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			collected++
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			a.Logger.Error("Failed to submit sweep job", "post_id", target.ID, "error", err)
		}
	}

	wg.Wait()
	a.Logger.Info("Metrics sweep completed", "collected", collected, "failed", failed)
}
