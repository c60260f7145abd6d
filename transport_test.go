package ironsession

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestCookieValue(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty header", header: "", want: ""},
		{name: "single pair", header: "session=abc", want: "abc"},
		{name: "among others", header: "a=1; session=abc; b=2", want: "abc"},
		{name: "absent", header: "a=1; b=2", want: ""},
		{name: "quoted value", header: `session="abc"`, want: "abc"},
		{name: "value with equals", header: "session=a=b=c", want: "a=b=c"},
		{name: "malformed neighbor skipped", header: "junk; session=abc", want: "abc"},
		{name: "name is prefix of another", header: "session2=zzz; session=abc", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cookieValue(tt.header, "session"); got != tt.want {
				t.Fatalf("cookieValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPAdapters(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Cookie", "session=abc")

	if got := HTTPRequest(r).CookieHeader(); got != "session=abc" {
		t.Fatalf("CookieHeader = %q", got)
	}
	if HTTPRequest(nil) != nil {
		t.Fatal("HTTPRequest(nil) must be nil")
	}

	w := httptest.NewRecorder()
	resp := HTTPResponse(w)
	if HTTPResponse(nil) != nil {
		t.Fatal("HTTPResponse(nil) must be nil")
	}

	w.Header().Add("Set-Cookie", "a=1")
	if got := resp.SetCookies(); !reflect.DeepEqual(got, []string{"a=1"}) {
		t.Fatalf("SetCookies = %v", got)
	}

	if err := resp.WriteCookies([]string{"a=1", "b=2"}); err != nil {
		t.Fatalf("WriteCookies failed: %v", err)
	}
	if got := w.Header().Values("Set-Cookie"); !reflect.DeepEqual(got, []string{"a=1", "b=2"}) {
		t.Fatalf("header values = %v", got)
	}

	// A plain recorder has no flush probe, so the response reads as unsent.
	if resp.Sent() {
		t.Fatal("recorder without probe reported sent")
	}
}

type writtenRecorder struct {
	*httptest.ResponseRecorder
	written bool
}

func (w *writtenRecorder) Written() bool { return w.written }

func TestHTTPResponseSentProbe(t *testing.T) {
	w := &writtenRecorder{ResponseRecorder: httptest.NewRecorder()}
	resp := HTTPResponse(w)

	if resp.Sent() {
		t.Fatal("unwritten response reported sent")
	}
	w.written = true
	if !resp.Sent() {
		t.Fatal("written response reported unsent")
	}
}

func TestHeaderAdapters(t *testing.T) {
	reqHeader := http.Header{}
	reqHeader.Set("Cookie", "session=abc")
	if got := HeaderRequest(reqHeader).CookieHeader(); got != "session=abc" {
		t.Fatalf("CookieHeader = %q", got)
	}
	if HeaderRequest(nil) != nil {
		t.Fatal("HeaderRequest(nil) must be nil")
	}

	respHeader := http.Header{}
	respHeader.Add("Set-Cookie", "a=1")
	sent := false
	resp := HeaderResponse(respHeader, func() bool { return sent })

	if got := resp.SetCookies(); !reflect.DeepEqual(got, []string{"a=1"}) {
		t.Fatalf("SetCookies = %v", got)
	}
	if err := resp.WriteCookies([]string{"a=1", "b=2"}); err != nil {
		t.Fatalf("WriteCookies failed: %v", err)
	}
	if got := respHeader.Values("Set-Cookie"); !reflect.DeepEqual(got, []string{"a=1", "b=2"}) {
		t.Fatalf("header values = %v", got)
	}

	if resp.Sent() {
		t.Fatal("Sent before flush")
	}
	sent = true
	if !resp.Sent() {
		t.Fatal("Sent after flush")
	}

	// Nil sent func means writes are always allowed.
	if HeaderResponse(respHeader, nil).Sent() {
		t.Fatal("nil sent func must report unsent")
	}
}
