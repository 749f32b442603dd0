package outbox

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	domain "leaguehub/internal/domain/outbox"
	"leaguehub/internal/repository"
	"leaguehub/pkg/logger"
)

// Options tunes the dispatcher poll loop.
type Options struct {
	Interval     time.Duration
	BatchSize    int
	MaxRetries   int
	DrainTimeout time.Duration
}

func (o *Options) setDefaults() {
	if o.Interval <= 0 {
		o.Interval = 5 * time.Second
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 10
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.DrainTimeout <= 0 {
		o.DrainTimeout = 5 * time.Second
	}
}

// Dispatcher polls the outbox table and routes pending events. At most one
// processing cycle is in flight per process; the inFlight CAS guard keeps
// overlapping ticks from piling concurrent load onto the database.
type Dispatcher struct {
	repo   repository.OutboxRepository
	router *Router
	log    *logger.Logger
	opts   Options

	inFlight atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewDispatcher(repo repository.OutboxRepository, router *Router, log *logger.Logger, opts Options) *Dispatcher {
	opts.setDefaults()
	return &Dispatcher{
		repo:   repo,
		router: router,
		log:    log,
		opts:   opts,
		stopCh: make(chan struct{}),
	}
}

// Start begins the poll loop.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop halts scheduling immediately, then waits for an in-flight cycle by
// polling its completion flag up to the drain timeout. A cycle still running
// at the deadline is abandoned: a truncated final batch is recoverable on the
// next boot, a hung shutdown is not.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })

	deadline := time.Now().Add(d.opts.DrainTimeout)
	for d.inFlight.Load() {
		if time.Now().After(deadline) {
			d.log.Warnf("outbox dispatcher: drain timeout after %s, abandoning in-flight cycle", d.opts.DrainTimeout)
			d.inFlight.Store(false)
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopCh:
			return
		case <-ticker.C:
			d.runCycle(context.Background())
		}
	}
}

// runCycle executes one poll-and-process pass. A tick that arrives while a
// cycle is in flight is skipped, not queued.
func (d *Dispatcher) runCycle(ctx context.Context) {
	if !d.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer d.inFlight.Store(false)

	batch, err := d.repo.GetPending(ctx, d.opts.BatchSize)
	if err != nil {
		d.log.Errorf("outbox dispatcher: fetch pending: %v", err)
		return
	}

	// Sequential on purpose: bounds connection usage and keeps oldest-first
	// order within the batch. One bad event never aborts the rest.
	for _, event := range batch {
		d.processEvent(ctx, event)
	}
}

func (d *Dispatcher) processEvent(ctx context.Context, event domain.OutboxEvent) {
	claimed, err := d.repo.MarkProcessing(ctx, event.ID)
	if err != nil {
		d.log.Errorf("outbox dispatcher: claim %s: %v", event.ID, err)
		return
	}
	if !claimed {
		// Another dispatcher instance won the row.
		return
	}

	if routeErr := d.router.Route(ctx, event); routeErr != nil {
		d.recordFailure(ctx, event, routeErr)
		return
	}

	if err := d.repo.MarkCompleted(ctx, event.ID); err != nil {
		d.log.Errorf("outbox dispatcher: mark completed %s: %v", event.ID, err)
	}
}

// recordFailure returns the event to PENDING until the retry ceiling is hit,
// then freezes it as FAILED for operator triage. Events are never dropped.
func (d *Dispatcher) recordFailure(ctx context.Context, event domain.OutboxEvent, routeErr error) {
	if event.RetryCount >= d.opts.MaxRetries {
		d.log.Errorf("outbox dispatcher: event %s (%s) failed permanently after %d retries: %v",
			event.ID, event.EventType, event.RetryCount, routeErr)
		if err := d.repo.MarkFailed(ctx, event.ID, routeErr.Error()); err != nil {
			d.log.Errorf("outbox dispatcher: mark failed %s: %v", event.ID, err)
		}
		return
	}

	d.log.Warnf("outbox dispatcher: event %s (%s) attempt %d failed, will retry: %v",
		event.ID, event.EventType, event.RetryCount+1, routeErr)
	if err := d.repo.MarkRetry(ctx, event.ID, routeErr.Error()); err != nil {
		d.log.Errorf("outbox dispatcher: mark retry %s: %v", event.ID, err)
	}
}
