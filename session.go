package ironsession

import (
	"context"
	"net/http"
	"sort"

	"github.com/riceharvest/ironsession/keyring"
	"github.com/riceharvest/ironsession/seal"
)

// reservedKeys name the session operations. They may never be shadowed by
// data fields: assigning one through Set fails with ErrReservedKey instead
// of silently hiding the operation.
var reservedKeys = map[string]struct{}{
	"save":         {},
	"destroy":      {},
	"updateConfig": {},
}

// Session is the per-request mutable facade over the sealed cookie: the
// working copy of the session data plus the save, destroy, and update-config
// operations. A Session is created fresh for each inbound request and owns
// its data exclusively for that request's duration; nothing persists beyond
// the cookie Save writes.
//
// A Session is not safe for concurrent use. Callers invoking Save from
// multiple goroutines must serialize themselves, as the relative order of
// their header appends is otherwise unspecified.
type Session struct {
	opts      Options
	kr        *keyring.Keyring
	sealer    *seal.Sealer
	req       RequestAdapter
	resp      ResponseAdapter
	data      map[string]any
	status    DecodeStatus
	destroyed bool
}

// New validates opts, reads the inbound cookie through req, and decodes it
// into a fresh handle. Configuration and usage mistakes fail here,
// synchronously, before any cookie I/O; a missing, tampered, or expired
// cookie never does — those yield a blank session.
func New(req RequestAdapter, resp ResponseAdapter, opts Options) (*Session, error) {
	if req == nil {
		return nil, ErrMissingRequest
	}
	if resp == nil {
		return nil, ErrMissingResponse
	}
	opts = opts.normalize()
	if opts.CookieName == "" {
		return nil, ErrMissingCookieName
	}
	if opts.TTL < 0 {
		return nil, ErrTTLNegative
	}

	kr, err := newKeyring(opts.Password)
	if err != nil {
		return nil, err
	}
	sealer, err := seal.New(opts.Seal)
	if err != nil {
		return nil, err
	}

	token := cookieValue(req.CookieHeader(), opts.CookieName)
	data, status := decodeSession(sealer, kr, token, opts.TTL)

	opts.Metrics.Inc(decodeMetric(status))
	opts.Audit.Emit(context.Background(), AuditEvent{
		EventType:  AuditSessionDecoded,
		CookieName: opts.CookieName,
		Status:     status.String(),
	})

	return &Session{
		opts:   opts,
		kr:     kr,
		sealer: sealer,
		req:    req,
		resp:   resp,
		data:   data,
		status: status,
	}, nil
}

// FromHTTP builds a handle directly from net/http request and response
// objects.
func FromHTTP(w http.ResponseWriter, r *http.Request, opts Options) (*Session, error) {
	return New(HTTPRequest(r), HTTPResponse(w), opts)
}

/*
====================================
DATA ACCESS
====================================
*/

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString returns the string stored under key, or "" when absent or of
// another type.
func (s *Session) GetString(key string) string {
	v, _ := s.data[key].(string)
	return v
}

// GetInt returns the integer stored under key. Values decoded from a cookie
// arrive as JSON numbers and are converted.
func (s *Session) GetInt(key string) (int, bool) {
	switch v := s.data[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Set stores value under key. The reserved operation names save, destroy,
// and updateConfig are refused with ErrReservedKey.
func (s *Session) Set(key string, value any) error {
	if _, reserved := reservedKeys[key]; reserved {
		return ErrReservedKey
	}
	s.data[key] = value
	return nil
}

// Delete removes key from the session data.
func (s *Session) Delete(key string) {
	delete(s.data, key)
}

// Keys returns the data field names in sorted order.
func (s *Session) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of data fields.
func (s *Session) Len() int {
	return len(s.data)
}

// Values returns a shallow copy of the session data.
func (s *Session) Values() map[string]any {
	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// IsBlank reports whether the session holds no data, which is the state
// after decoding an absent, invalid, or expired cookie.
func (s *Session) IsBlank() bool {
	return len(s.data) == 0
}

// Status reports how the inbound cookie decoded.
func (s *Session) Status() DecodeStatus {
	return s.status
}

/*
====================================
OPERATIONS
====================================
*/

// Save seals the current data and writes the session cookie, merging with
// any Set-Cookie entries already on the response. It fails with
// ErrResponseSent once the response has been flushed and with
// ErrCookieTooLarge when the assembled header exceeds the size bound; in
// both cases the response's cookie state is left untouched. Each successful
// call appends a fresh entry — the client keeps the last one.
func (s *Session) Save(ctx context.Context) error {
	if s.resp.Sent() {
		s.reject(ctx, MetricSaveRejectedSent, ErrResponseSent)
		return ErrResponseSent
	}

	token, err := encodeSession(s.sealer, s.kr, s.data)
	if err != nil {
		s.reject(ctx, MetricSealFailure, err)
		return err
	}

	cookie, err := buildSetCookie(s.opts.CookieName, token, s.opts.TTL, s.opts.CookieOptions)
	if err != nil {
		s.reject(ctx, MetricSaveRejectedSize, err)
		return err
	}

	if err := s.resp.WriteCookies(mergeSetCookie(s.resp.SetCookies(), cookie)); err != nil {
		return err
	}

	s.opts.Metrics.Inc(MetricSave)
	s.opts.Audit.Emit(ctx, AuditEvent{
		EventType:  AuditSessionSaved,
		CookieName: s.opts.CookieName,
		KeyID:      s.kr.Current().ID,
		Metadata:   auditMetadataFromContext(ctx),
	})
	return nil
}

// Destroy clears every data field synchronously, then writes an expiry
// cookie (empty value, Max-Age=0) through the same merge path Save uses.
// The data clearing is observable immediately even when the cookie write
// fails with ErrResponseSent or ErrCookieTooLarge. Destroy is idempotent;
// each call appends another expiry cookie.
func (s *Session) Destroy(ctx context.Context) error {
	for k := range s.data {
		delete(s.data, k)
	}
	s.destroyed = true

	if s.resp.Sent() {
		s.reject(ctx, MetricSaveRejectedSent, ErrResponseSent)
		return ErrResponseSent
	}

	cookie, err := buildDestroyCookie(s.opts.CookieName, s.opts.CookieOptions)
	if err != nil {
		s.reject(ctx, MetricSaveRejectedSize, err)
		return err
	}
	if err := s.resp.WriteCookies(mergeSetCookie(s.resp.SetCookies(), cookie)); err != nil {
		return err
	}

	s.opts.Metrics.Inc(MetricDestroy)
	s.opts.Audit.Emit(ctx, AuditEvent{
		EventType:  AuditSessionDestroyed,
		CookieName: s.opts.CookieName,
		Metadata:   auditMetadataFromContext(ctx),
	})
	return nil
}

// Destroyed reports whether Destroy ran on this handle.
func (s *Session) Destroyed() bool {
	return s.destroyed
}

// UpdateConfig merges patch into the handle's bound options in place,
// affecting subsequent Save and Destroy calls on this handle only. A patched
// password or cookie name is re-validated; on error the bound options are
// unchanged.
func (s *Session) UpdateConfig(patch OptionsPatch) error {
	next := patch.apply(s.opts)
	if next.CookieName == "" {
		return ErrMissingCookieName
	}
	if next.TTL < 0 {
		return ErrTTLNegative
	}

	kr := s.kr
	if patch.Password != nil {
		var err error
		if kr, err = newKeyring(next.Password); err != nil {
			return err
		}
	}

	s.opts = next
	s.kr = kr
	return nil
}

func (s *Session) reject(ctx context.Context, metric MetricID, cause error) {
	s.opts.Metrics.Inc(metric)
	s.opts.Audit.Emit(ctx, AuditEvent{
		EventType:  AuditSaveRejected,
		CookieName: s.opts.CookieName,
		Error:      cause.Error(),
		Metadata:   auditMetadataFromContext(ctx),
	})
}
