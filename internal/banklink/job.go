package banklink

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/salim-ai/salim-client/internal/store"
)

// RefreshJob periodically re-fetches the bank snapshots in the background
// so the dashboard shows reasonably fresh balances without a manual
// refresh. The job is idle until Start is called and quietly skips ticks
// while no institution is linked.
type RefreshJob struct {
	coordinator *Coordinator

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a RefreshJob driving the given coordinator.
func NewRefreshJob(coordinator *Coordinator) *RefreshJob {
	return &RefreshJob{coordinator: coordinator}
}

// Start stops any previously running job, then launches a background
// goroutine that refreshes every interval. If interval is zero or negative
// it defaults to 15 minutes. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *RefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.coordinator.Refresh(jobCtx); err != nil {
					if !errors.Is(err, store.ErrBankLinkNotFound) {
						j.coordinator.logger.Warn().Err(err).Msg("background bank refresh failed")
					}
				}
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has fully
// exited. Safe to call when the job is not running.
func (j *RefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
