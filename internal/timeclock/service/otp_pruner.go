package service

import (
	"context"
	"log"
	"time"

	"github.com/clock-in-out/server/internal/timeclock/store"
)

// OtpPruner periodically deletes one-time codes whose expiry has aged past
// a configurable retention period. It runs as a background goroutine and
// is safe to stop via its context or the Stop method.
//
// A retention of 0 disables pruning entirely.
type OtpPruner struct {
	store     store.OtpStore
	clock     Clock
	retention time.Duration
	interval  time.Duration
	logger    *log.Logger
	cancel    context.CancelFunc
	done      chan struct{}
}

// PrunerConfig holds the parameters for NewOtpPruner.
type PrunerConfig struct {
	// RetentionDays is how many days of dead codes to keep around.
	// 0 means keep everything (pruner will not start).
	RetentionDays int

	// IntervalHours is how often the pruner runs.  Defaults to 6.
	IntervalHours int
}

// NewOtpPruner creates a pruner but does not start it.
// Call Start to begin the background loop.
func NewOtpPruner(s store.OtpStore, clock Clock, cfg PrunerConfig, logger *log.Logger) *OtpPruner {
	interval := time.Duration(cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	return &OtpPruner{
		store:     s,
		clock:     clock,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		interval:  interval,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start begins the background pruning loop.  It runs an immediate prune
// on startup, then repeats on the configured interval.  The loop exits
// when ctx is cancelled or Stop is called.
func (p *OtpPruner) Start(ctx context.Context) {
	if p.retention <= 0 {
		p.logger.Printf("otp pruner disabled (retention=0)")
		close(p.done)
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)

	go p.loop(ctx)

	p.logger.Printf("otp pruner started (retention=%dd, interval=%dh)",
		int(p.retention.Hours()/24), int(p.interval.Hours()))
}

// Stop signals the pruner to exit and waits for it to finish.
func (p *OtpPruner) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	<-p.done
}

func (p *OtpPruner) loop(ctx context.Context) {
	defer close(p.done)

	// Run immediately on startup to clean up any backlog.
	p.prune(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *OtpPruner) prune(ctx context.Context) {
	cutoff := p.clock.Now().Add(-p.retention).Unix()
	deleted, err := p.store.PruneBefore(ctx, cutoff)
	if err != nil {
		p.logger.Printf("otp prune error: %v", err)
		return
	}
	if deleted > 0 {
		p.logger.Printf("otp prune: deleted %d codes expired before %d", deleted, cutoff)
	}
}
