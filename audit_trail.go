package ironsession

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// AuditTrail decouples request handling from audit delivery: events are
// queued onto a buffered channel and a single goroutine drains them into the
// sink. Create one trail for the lifetime of the application, share it
// through [Options], and Close it on shutdown to drain the queue.
//
// All methods are safe on a nil trail, which behaves as auditing disabled.
type AuditTrail struct {
	cfg       AuditConfig
	sink      AuditSink
	ch        chan AuditEvent
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewAuditTrail starts the dispatch goroutine. A nil sink selects [NoOpSink].
func NewAuditTrail(cfg AuditConfig, sink AuditSink) *AuditTrail {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	t := &AuditTrail{
		cfg:  cfg,
		sink: sink,
		ch:   make(chan AuditEvent, cfg.BufferSize),
		done: make(chan struct{}),
	}

	t.wg.Add(1)
	go t.run()

	return t
}

func (t *AuditTrail) run() {
	defer t.wg.Done()

	for {
		select {
		case event := <-t.ch:
			t.sink.Emit(context.Background(), event)
		case <-t.done:
			for {
				select {
				case event := <-t.ch:
					t.sink.Emit(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

// Emit queues an event. An empty EventID is filled with a fresh UUID and a
// zero Timestamp with the current time. With DropIfFull set, a full buffer
// drops the event and bumps the drop counter; otherwise Emit blocks until
// the event is accepted, ctx is done, or the trail closes.
func (t *AuditTrail) Emit(ctx context.Context, event AuditEvent) {
	if t == nil || t.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if t.cfg.DropIfFull {
		select {
		case t.ch <- event:
		case <-t.done:
		default:
			t.dropped.Add(1)
		}
		return
	}

	select {
	case t.ch <- event:
	case <-ctx.Done():
	case <-t.done:
	}
}

// Close stops intake, drains queued events into the sink, and waits for the
// dispatch goroutine to exit. Close is idempotent.
func (t *AuditTrail) Close() {
	if t == nil {
		return
	}
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		close(t.done)
		t.wg.Wait()
	})
}

// Dropped reports how many events were discarded under DropIfFull.
func (t *AuditTrail) Dropped() uint64 {
	if t == nil {
		return 0
	}
	return t.dropped.Load()
}
