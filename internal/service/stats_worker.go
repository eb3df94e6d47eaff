package service

import (
	"context"
	"log"
	"time"

	"github.com/ranki5/ranki5-go/internal/repository"
)

// StatsWorker is a periodic background job that appends a metrics snapshot
// for every channel to the statistiques history table.
type StatsWorker struct {
	repo     *repository.ChannelRepo
	interval time.Duration
	stopCh   chan struct{}
}

// NewStatsWorker creates a worker that ticks every interval.
func NewStatsWorker(repo *repository.ChannelRepo, interval time.Duration) *StatsWorker {
	return &StatsWorker{
		repo:     repo,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic snapshot loop.
// It runs one tick immediately, then every interval.
func (w *StatsWorker) Start(ctx context.Context) {
	log.Printf("stats-worker: starting (interval=%s)", w.interval)

	// Run once immediately on startup
	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("stats-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("stats-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *StatsWorker) Stop() {
	close(w.stopCh)
}

// tick runs one cycle: snapshot the current metrics of every channel.
func (w *StatsWorker) tick(ctx context.Context) {
	start := time.Now()

	count, err := w.repo.SnapshotAll(ctx)
	if err != nil {
		log.Printf("stats-worker: error: %v", err)
		return
	}

	elapsed := time.Since(start)
	log.Printf("stats-worker: tick complete, %d snapshots written (%s)",
		count, elapsed.Round(time.Millisecond))
}
