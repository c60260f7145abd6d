package ironsession

import (
	"net/http"
	"strings"
)

// RequestAdapter supplies the single inbound primitive the engine needs:
// the raw Cookie header value, or "" when absent.
type RequestAdapter interface {
	CookieHeader() string
}

// ResponseAdapter supplies the outbound primitives. SetCookies must reflect
// the response's current Set-Cookie state on every call — the engine always
// re-reads before merging, never assuming an earlier read is still accurate.
type ResponseAdapter interface {
	// SetCookies returns the Set-Cookie values currently on the response.
	SetCookies() []string
	// WriteCookies replaces the response's Set-Cookie values with the merged
	// array.
	WriteCookies(values []string) error
	// Sent reports whether the response has already been flushed to the
	// client, after which cookie writes must be refused.
	Sent() bool
}

// HTTPRequest adapts a *net/http.Request. Returns nil for a nil request so
// construction fails with ErrMissingRequest.
func HTTPRequest(r *http.Request) RequestAdapter {
	if r == nil {
		return nil
	}
	return httpRequestAdapter{r: r}
}

type httpRequestAdapter struct {
	r *http.Request
}

func (a httpRequestAdapter) CookieHeader() string {
	return a.r.Header.Get("Cookie")
}

// HTTPResponse adapts an http.ResponseWriter. Flush state is probed through
// an optional Written() bool method on the writer; the middleware package
// wraps writers to provide it. Writers without the probe report not-sent.
func HTTPResponse(w http.ResponseWriter) ResponseAdapter {
	if w == nil {
		return nil
	}
	return httpResponseAdapter{w: w}
}

type httpResponseAdapter struct {
	w http.ResponseWriter
}

func (a httpResponseAdapter) SetCookies() []string {
	return append([]string(nil), a.w.Header().Values("Set-Cookie")...)
}

func (a httpResponseAdapter) WriteCookies(values []string) error {
	h := a.w.Header()
	h.Del("Set-Cookie")
	for _, v := range values {
		h.Add("Set-Cookie", v)
	}
	return nil
}

func (a httpResponseAdapter) Sent() bool {
	if ww, ok := a.w.(interface{ Written() bool }); ok {
		return ww.Written()
	}
	return false
}

// HeaderRequest adapts a bare header map, for frameworks that expose only
// headers rather than request objects.
func HeaderRequest(h http.Header) RequestAdapter {
	if h == nil {
		return nil
	}
	return headerRequestAdapter{h: h}
}

type headerRequestAdapter struct {
	h http.Header
}

func (a headerRequestAdapter) CookieHeader() string {
	return a.h.Get("Cookie")
}

// HeaderResponse adapts a bare response header map. sent, when non-nil,
// reports whether the response has been flushed; a nil sent means writes are
// always allowed.
func HeaderResponse(h http.Header, sent func() bool) ResponseAdapter {
	if h == nil {
		return nil
	}
	return headerResponseAdapter{h: h, sent: sent}
}

type headerResponseAdapter struct {
	h    http.Header
	sent func() bool
}

func (a headerResponseAdapter) SetCookies() []string {
	return append([]string(nil), a.h.Values("Set-Cookie")...)
}

func (a headerResponseAdapter) WriteCookies(values []string) error {
	a.h.Del("Set-Cookie")
	for _, v := range values {
		a.h.Add("Set-Cookie", v)
	}
	return nil
}

func (a headerResponseAdapter) Sent() bool {
	return a.sent != nil && a.sent()
}

// cookieValue locates the named cookie within a raw Cookie header. Parsing
// is lenient: malformed pairs are skipped rather than failing the whole
// header, since browser-mangled or foreign cookies must never take the
// session cookie down with them.
func cookieValue(header, name string) string {
	if header == "" {
		return ""
	}
	for _, part := range strings.Split(header, ";") {
		pairName, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || pairName != name {
			continue
		}
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}
		return value
	}
	return ""
}
