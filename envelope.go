package ironsession

import "time"

// clockSkewTolerance absorbs clock drift between the host that sealed an
// envelope and the host evaluating it. The tolerance is fixed; it is part of
// the staleness contract, not a tunable.
const clockSkewTolerance = 60 * time.Second

// nowFunc is swapped out by tests that pin staleness boundaries.
var nowFunc = time.Now

// envelope is the logical payload sealed into the token. TTL is deliberately
// not stored: it is re-supplied from the caller's current configuration on
// every decode, so operators can change TTL and have it apply to cookies
// already issued.
type envelope struct {
	Data      map[string]any `json:"data"`
	CreatedAt int64          `json:"createdAt"`
}

func stampEnvelope(data map[string]any) envelope {
	if data == nil {
		data = map[string]any{}
	}
	return envelope{
		Data:      data,
		CreatedAt: nowFunc().Unix(),
	}
}

// envelopeStale reports whether an envelope created at the given epoch second
// has outlived ttl. A zero ttl never goes stale. The boundary is strict: an
// envelope is still fresh at exactly createdAt + ttl + skew and stale one
// second past it.
func envelopeStale(createdAt int64, ttl time.Duration) bool {
	if ttl == 0 {
		return false
	}
	deadline := createdAt + int64(ttl.Seconds()) + int64(clockSkewTolerance.Seconds())
	return nowFunc().Unix() > deadline
}
