// internal/app/system/workers/tokencleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	tokenstore "github.com/dalemusser/helpbridge/internal/app/store/tokens"
	"go.uber.org/zap"
)

// TokenCleanup is a background worker that deletes auth tokens that
// have not been seen for longer than the stale threshold.
type TokenCleanup struct {
	tokens         *tokenstore.Store
	log            *zap.Logger
	interval       time.Duration
	staleThreshold time.Duration
	stopCh         chan struct{}
	wg             sync.WaitGroup
}

// NewTokenCleanup creates a new token cleanup worker.
//
// Parameters:
//   - tokens: the auth token store
//   - logger: zap logger for logging
//   - interval: how often to run cleanup (e.g., 1 hour)
//   - staleThreshold: how long a token may go unused before deletion (e.g., 30 days)
func NewTokenCleanup(tokens *tokenstore.Store, logger *zap.Logger, interval, staleThreshold time.Duration) *TokenCleanup {
	return &TokenCleanup{
		tokens:         tokens,
		log:            logger,
		interval:       interval,
		staleThreshold: staleThreshold,
		stopCh:         make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *TokenCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("token cleanup worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("stale_threshold", w.staleThreshold))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *TokenCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("token cleanup worker stopped")
}

func (w *TokenCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *TokenCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-w.staleThreshold)
	count, err := w.tokens.DeleteStaleBefore(ctx, cutoff)
	if err != nil {
		w.log.Error("failed to delete stale tokens", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("deleted stale tokens", zap.Int64("count", count))
	}
}
