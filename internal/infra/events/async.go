package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/shared"
)

var ErrQueueFull = errs.New("event queue full")

type batch struct {
	ctx    context.Context
	events []shared.Event
}

// AsyncPublisher queues events and hands them to the wrapped publisher from a
// single background goroutine. Publish never waits on the broker.
type AsyncPublisher struct {
	next    shared.EventPublisher
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan batch
	done   chan struct{}
}

func NewAsyncPublisher(next shared.EventPublisher, size int, timeout time.Duration, logger *slog.Logger) *AsyncPublisher {
	if size <= 0 {
		size = 256
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AsyncPublisher{
		next:    next,
		logger:  logger,
		timeout: timeout,
		queue:   make(chan batch, size),
		done:    make(chan struct{}),
	}
}

// Publish enqueues the events. The request context is detached from its
// deadline but keeps its values, so trace headers still propagate.
func (p *AsyncPublisher) Publish(ctx context.Context, events ...shared.Event) error {
	if len(events) == 0 {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return errs.Wrap(ErrQueueFull, "publisher stopped")
	}
	select {
	case p.queue <- batch{ctx: context.WithoutCancel(ctx), events: events}:
		return nil
	default:
		return errs.Wrapf(ErrQueueFull, "dropped %d event(s)", len(events))
	}
}

func (p *AsyncPublisher) Start() {
	go p.run()
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for b := range p.queue {
		ctx, cancel := context.WithTimeout(b.ctx, p.timeout)
		if err := p.next.Publish(ctx, b.events...); err != nil {
			p.logger.WarnContext(ctx, "event delivery failed",
				"error", err.Error(),
				"event_type", string(b.events[0].Type),
				"count", len(b.events),
			)
		}
		cancel()
	}
}

// Stop refuses new events and waits for the queue to drain or ctx to end.
func (p *AsyncPublisher) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
