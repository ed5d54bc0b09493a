package sweep

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"go_vpnadmin/internal/orchestrator"
)

const lockKey = "vpnadmin:sweep:lock"

// Worker periodically deactivates clients whose subscription has expired.
// The core sweep operation stays scheduler-agnostic; this worker is just the
// trigger. A Redis lock keeps concurrent replicas from sweeping at once.
type Worker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	svc      *orchestrator.Service
	rdb      *redis.Client
	logger   *logrus.Entry
	interval time.Duration
	lockTTL  time.Duration
}

// Config holds the configuration for the sweep worker
type Config struct {
	Service     *orchestrator.Service
	Redis       *redis.Client
	Logger      *logrus.Entry
	IntervalSec int
	LockTTLSec  int
}

// NewWorker creates a new expiry sweep worker
func NewWorker(cfg *Config) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		ctx:      ctx,
		cancel:   cancel,
		svc:      cfg.Service,
		rdb:      cfg.Redis,
		logger:   cfg.Logger.WithField("component", "expiry-sweep"),
		interval: time.Duration(cfg.IntervalSec) * time.Second,
		lockTTL:  time.Duration(cfg.LockTTLSec) * time.Second,
	}
}

// Start begins the periodic sweep
func (w *Worker) Start() {
	w.logger.Info("Starting expiry sweep worker...")
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		// Run immediately on start
		w.tick()
		for {
			select {
			case <-ticker.C:
				w.tick()
			case <-w.ctx.Done():
				w.logger.Info("Stopping expiry sweep worker...")
				return
			}
		}
	}()
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.cancel()
}

func (w *Worker) tick() {
	if !w.acquireLock() {
		w.logger.Debug("Sweep lock held elsewhere, skipping tick")
		return
	}

	count, err := w.svc.DeactivateExpired(w.ctx)
	if err != nil {
		w.logger.WithError(err).Error("Expiry sweep failed")
		return
	}
	if count > 0 {
		w.logger.WithField("deactivated", count).Info("Expiry sweep finished")
	}
}

// acquireLock takes the cross-replica mutex. The TTL covers a crashed holder;
// the lock is deliberately not released early so a replica that just swept
// keeps the others quiet for the TTL window.
func (w *Worker) acquireLock() bool {
	if w.rdb == nil {
		return true
	}
	ok, err := w.rdb.SetNX(w.ctx, lockKey, 1, w.lockTTL).Result()
	if err != nil {
		w.logger.WithError(err).Warn("Sweep lock unavailable, proceeding without it")
		return true
	}
	return ok
}
