package ironsession

import (
	"context"
	"time"
)

// Audit event types emitted by session handles.
const (
	// AuditSessionDecoded records the outcome of decoding an inbound cookie,
	// including silently degraded outcomes (absent, invalid, expired).
	AuditSessionDecoded = "session_decoded"
	// AuditSessionSaved records a successful Save.
	AuditSessionSaved = "session_saved"
	// AuditSessionDestroyed records a successful Destroy.
	AuditSessionDestroyed = "session_destroyed"
	// AuditSaveRejected records a Save or Destroy refused because the
	// response was already sent or the cookie exceeded the size bound.
	AuditSaveRejected = "save_rejected"
)

// AuditEvent describes one session lifecycle occurrence. EventID and
// Timestamp are filled by the trail when left empty.
type AuditEvent struct {
	EventID    string            `json:"event_id"`
	Timestamp  time.Time         `json:"timestamp"`
	EventType  string            `json:"event_type"`
	CookieName string            `json:"cookie_name,omitempty"`
	KeyID      int               `json:"key_id,omitempty"`
	Status     string            `json:"status,omitempty"`
	Error      string            `json:"error,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// AuditSink receives audit events from an [AuditTrail]. Implementations must
// tolerate concurrent calls.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpSink discards every event.
type NoOpSink struct{}

// Emit implements [AuditSink].
func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink forwards events to a buffered channel, for callers that want
// to consume the stream themselves.
type ChannelSink struct {
	events chan AuditEvent
}

// NewChannelSink returns a ChannelSink with the given buffer.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

// Emit implements [AuditSink]. It blocks when the buffer is full until the
// event is accepted or ctx is done.
func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events exposes the sink's stream.
func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// AuditConfig controls the buffered dispatch of audit events.
type AuditConfig struct {
	// BufferSize is the dispatch channel depth. Values below 1 become 1.
	BufferSize int
	// DropIfFull drops events (counted, see [AuditTrail.Dropped]) instead of
	// blocking the request path when the buffer is full.
	DropIfFull bool
}
