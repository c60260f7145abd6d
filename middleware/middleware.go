package middleware

import (
	"context"
	"net/http"

	"github.com/riceharvest/ironsession"
)

type sessionContextKey struct{}

// FromContext returns the session handle installed by [Sessions].
func FromContext(ctx context.Context) (*ironsession.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*ironsession.Session)
	return sess, ok
}

// Sessions returns middleware that builds a session handle for every request
// and stores it in the request context. Validate opts once with
// Options.Validate before mounting; a configuration error at request time is
// answered with a bare 500.
func Sessions(opts ironsession.Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := &sentWriter{ResponseWriter: w}

			sess, err := ironsession.FromHTTP(ww, r, opts)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}

// sentWriter latches once the response headers leave the server, which is
// the point after which Set-Cookie writes are lost.
type sentWriter struct {
	http.ResponseWriter
	wrote bool
}

// Written implements the flush probe ironsession.HTTPResponse looks for.
func (w *sentWriter) Written() bool {
	return w.wrote
}

func (w *sentWriter) WriteHeader(status int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *sentWriter) Write(p []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(p)
}

// Flush forwards to the underlying writer when it supports flushing.
func (w *sentWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		w.wrote = true
		f.Flush()
	}
}
