package ironsession

import "errors"

var (
	// ErrMissingRequest is returned when a session is constructed without a
	// request adapter.
	ErrMissingRequest = errors.New("request is required")
	// ErrMissingResponse is returned when a session is constructed without a
	// response adapter.
	ErrMissingResponse = errors.New("response is required")
	// ErrMissingCookieName is returned when Options.CookieName is empty.
	ErrMissingCookieName = errors.New("cookie name is required")
	// ErrMissingPassword is returned when Options.Password holds no secrets.
	ErrMissingPassword = errors.New("password is required")
	// ErrPasswordTooShort is returned when any configured secret is shorter
	// than 32 bytes.
	ErrPasswordTooShort = errors.New("password must be at least 32 bytes")
	// ErrSecretID is returned when a rotation map contains a non-positive id.
	ErrSecretID = errors.New("rotation secret ids must be positive")
	// ErrTTLNegative is returned when Options.TTL is below zero.
	ErrTTLNegative = errors.New("ttl must not be negative")
	// ErrCookieTooLarge is returned from Save when the assembled Set-Cookie
	// header would exceed the safe cookie size. The response is left
	// untouched; the value is never truncated.
	ErrCookieTooLarge = errors.New("cookie value is too large")
	// ErrResponseSent is returned from Save and Destroy once the response has
	// already been flushed to the client.
	ErrResponseSent = errors.New("response has already been sent")
	// ErrReservedKey is returned from Session.Set for the reserved field
	// names save, destroy, and updateConfig, which name session operations
	// and may never be shadowed by data.
	ErrReservedKey = errors.New("session key is reserved")
	// ErrEncodeFailed wraps a failure of the sealing primitive during Save.
	// It is not expected in normal operation.
	ErrEncodeFailed = errors.New("session encoding failed")
)
