package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riceharvest/ironsession"
	"github.com/riceharvest/ironsession/keyring"
)

const testPassword = "complex_password_at_least_32_characters_long"

func testOptions() ironsession.Options {
	return ironsession.DefaultOptions("session", keyring.FromString(testPassword))
}

func TestSessionsInjectsHandle(t *testing.T) {
	var inner http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		if !ok {
			t.Fatal("no session in request context")
		}
		if err := sess.Set("user", "alice"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := sess.Save(r.Context()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}

	handler := Sessions(testOptions())(inner)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	cookies := rec.Header().Values("Set-Cookie")
	if len(cookies) != 1 || !strings.HasPrefix(cookies[0], "session=") {
		t.Fatalf("Set-Cookie = %v", cookies)
	}

	// Replay the cookie: the next request sees the saved data.
	token, _, _ := strings.Cut(strings.TrimPrefix(cookies[0], "session="), ";")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "session="+token)

	var echo http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		sess, _ := FromContext(r.Context())
		if sess.GetString("user") != "alice" {
			t.Fatalf("user = %q", sess.GetString("user"))
		}
	}
	Sessions(testOptions())(echo).ServeHTTP(httptest.NewRecorder(), req)
}

func TestSessionsSaveAfterBodyWrite(t *testing.T) {
	var inner http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		sess, _ := FromContext(r.Context())
		_, _ = w.Write([]byte("hello"))

		_ = sess.Set("user", "alice")
		if err := sess.Save(r.Context()); !errors.Is(err, ironsession.ErrResponseSent) {
			t.Fatalf("error = %v, want ErrResponseSent", err)
		}
	}

	rec := httptest.NewRecorder()
	Sessions(testOptions())(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Values("Set-Cookie"); len(got) != 0 {
		t.Fatalf("cookie written after body: %v", got)
	}
}

func TestSessionsBadConfigAnswers500(t *testing.T) {
	opts := testOptions()
	opts.Password = keyring.Secret{}

	rec := httptest.NewRecorder()
	handler := Sessions(opts)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("inner handler reached with broken config")
	}))
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("FromContext reported a session on a bare context")
	}
}
