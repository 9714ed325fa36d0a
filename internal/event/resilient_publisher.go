package event

import (
	"context"
	"sync"
	"time"

	"github.com/wavesight/earnings-service/internal/logger"
)

// retryEntry is one event waiting for another publish attempt
type retryEntry struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps an Event Bus with a bounded retry queue and a
// dead-letter file. Publishing never blocks the caller: a failed publish is
// queued for background retry with exponential backoff, and events that
// exhaust their retries (or overflow the queue) are written to dead-letter.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a ResilientPublisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// PublishWithRetry attempts a synchronous publish and, on failure, hands the
// event to the retry worker. The caller is never returned an error; delivery
// failures surface in logs and the dead-letter file.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	if err := p.bus.Publish(ctx, evt); err != nil {
		log := logger.FromContext(ctx)
		log.Warn(LogMsgEventPublishFailed,
			"event_type", evt.Type,
			"error", err,
			"max_retries", p.maxRetries)
		p.enqueue(ctx, retryEntry{event: evt, attempts: 1, lastErr: err})
	}
}

func (p *ResilientPublisher) enqueue(ctx context.Context, entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		log := logger.FromContext(ctx)
		log.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		if err := p.deadLetter.Write(entry.event, entry.attempts, entry.lastErr); err != nil {
			log.Error(LogMsgDeadLetterWriteFailed, "error", err)
		}
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drain()
			return
		case entry := <-p.retryQueue:
			p.process(entry, false)
		}
	}
}

// drain processes whatever is left in the queue without backoff delays
func (p *ResilientPublisher) drain() {
	log := logger.FromContext(context.Background())
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			p.process(entry, true)
			drained++
		default:
			if drained > 0 {
				log.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

// process retries a single event until it succeeds or exhausts maxRetries.
// immediate skips backoff delays; it flips on when shutdown begins so a
// pending entry cannot hold up the worker.
func (p *ResilientPublisher) process(entry retryEntry, immediate bool) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for {
		if !immediate {
			select {
			case <-time.After(CalculateRetryDelay(p.retryDelay, entry.attempts)):
			case <-p.shutdown:
				immediate = true
			}
		}

		err := p.bus.Publish(ctx, entry.event)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded,
				"event_type", entry.event.Type,
				"attempt", entry.attempts)
			return
		}

		entry.lastErr = err
		entry.attempts++
		if entry.attempts > p.maxRetries {
			log.Warn(LogMsgEventRetryExhausted,
				"event_type", entry.event.Type,
				"attempts", entry.attempts-1,
				"error", err)
			if werr := p.deadLetter.Write(entry.event, entry.attempts-1, err); werr != nil {
				log.Error(LogMsgDeadLetterWriteFailed, "error", werr)
			}
			return
		}

		log.Warn(LogMsgEventRetryFailed,
			"event_type", entry.event.Type,
			"attempt", entry.attempts-1,
			"error", err)
	}
}

// Shutdown stops the retry worker, drains the queue, and closes the
// dead-letter file. It respects the context deadline.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.closeOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}
