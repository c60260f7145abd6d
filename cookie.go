package ironsession

import (
	"strconv"
	"strings"
	"time"
)

const (
	// maxCookieSize is the largest Set-Cookie header value this package will
	// emit. 4096 bytes is the lowest common browser limit for name + value +
	// attributes; anything larger fails with ErrCookieTooLarge instead of
	// being truncated by the client.
	maxCookieSize = 4096

	// maxAgeForever is the largest Max-Age browsers honor (2^31-1 seconds).
	// Written for non-expiring sessions, since omitting Max-Age would make
	// the cookie session-only instead of persistent.
	maxAgeForever = 2147483647
)

// buildSetCookie assembles the full Set-Cookie header value for a sealed
// token.
func buildSetCookie(name, token string, ttl time.Duration, co CookieOptions) (string, error) {
	maxAge, emit := resolveMaxAge(ttl, co)

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(token)

	if emit {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(maxAge))
	}
	writeAttributes(&b, co)

	value := b.String()
	if len(value) > maxCookieSize {
		return "", ErrCookieTooLarge
	}
	return value, nil
}

// buildDestroyCookie assembles the expiry cookie written by Destroy: empty
// value, Max-Age=0, same attributes. TTL and MaxAge overrides do not apply.
// The size bound still holds; an oversized name or attribute set fails with
// ErrCookieTooLarge.
func buildDestroyCookie(name string, co CookieOptions) (string, error) {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString("=; Max-Age=0")
	writeAttributes(&b, co)

	value := b.String()
	if len(value) > maxCookieSize {
		return "", ErrCookieTooLarge
	}
	return value, nil
}

// resolveMaxAge applies the Max-Age priority order: an explicit
// CookieOptions.MaxAge wins (with MaxAgeSessionOnly suppressing the attribute
// entirely), a zero ttl selects the forever sentinel, and otherwise the ttl
// is used as-is.
func resolveMaxAge(ttl time.Duration, co CookieOptions) (seconds int, emit bool) {
	if co.MaxAge != nil {
		if *co.MaxAge == MaxAgeSessionOnly {
			return 0, false
		}
		return *co.MaxAge, true
	}
	if ttl == 0 {
		return maxAgeForever, true
	}
	return int(ttl.Seconds()), true
}

func writeAttributes(b *strings.Builder, co CookieOptions) {
	if co.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(co.Path)
	}
	if co.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(co.Domain)
	}
	if co.HttpOnly == nil || *co.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	if co.Secure == nil || *co.Secure {
		b.WriteString("; Secure")
	}
	if co.SameSite != "" {
		b.WriteString("; SameSite=")
		b.WriteString(string(co.SameSite))
	}
	if co.Partitioned {
		b.WriteString("; Partitioned")
	}
}

// mergeSetCookie appends value to the response's existing Set-Cookie entries
// without reordering or discarding anything set by unrelated code.
func mergeSetCookie(existing []string, value string) []string {
	merged := make([]string, 0, len(existing)+1)
	merged = append(merged, existing...)
	return append(merged, value)
}
