package ironsession

import (
	"errors"
	"time"

	"github.com/riceharvest/ironsession/keyring"
	"github.com/riceharvest/ironsession/seal"
)

/*
====================================
SESSION OPTIONS
====================================
*/

// DefaultTTL is the session lifetime applied by [DefaultOptions].
const DefaultTTL = 14 * 24 * time.Hour

// MaxAgeSessionOnly, assigned through CookieOptions.MaxAge, omits the Max-Age
// attribute entirely so the browser treats the cookie as session-only.
const MaxAgeSessionOnly = -1

// Options configures a session handle. Passing the same Options value to
// every request is the expected usage; each handle binds its own copy, so
// per-request mutation through [Session.UpdateConfig] never leaks across
// requests.
type Options struct {
	// CookieName names the cookie carrying the sealed token. Required.
	CookieName string

	// Password is the sealing secret specification: a single password via
	// [keyring.FromString] or a rotation set via [keyring.FromMap]. Every
	// password must be at least 32 bytes. Required.
	Password keyring.Secret

	// TTL bounds the age of a sealed envelope. Zero means the session never
	// expires and the cookie is written with the largest Max-Age browsers
	// honor. TTL is re-evaluated against each inbound cookie at decode time,
	// so shortening or lengthening it applies to cookies already in the wild.
	TTL time.Duration

	// CookieOptions controls the emitted Set-Cookie attributes.
	CookieOptions CookieOptions

	// Seal tunes the key-derivation work factor of the sealing primitive.
	// The zero value selects [seal.DefaultConfig].
	Seal seal.Config

	// Metrics, when non-nil, receives operation counters. Shared across
	// requests; safe for concurrent use.
	Metrics *Metrics

	// Audit, when non-nil, receives session lifecycle events. Shared across
	// requests.
	Audit *AuditTrail
}

/*
====================================
COOKIE OPTIONS
====================================
*/

// SameSite is the Set-Cookie SameSite attribute value.
type SameSite string

const (
	// SameSiteLax is the default SameSite policy.
	SameSiteLax SameSite = "Lax"
	// SameSiteStrict withholds the cookie from all cross-site requests.
	SameSiteStrict SameSite = "Strict"
	// SameSiteNone sends the cookie cross-site; requires Secure.
	SameSiteNone SameSite = "None"
)

// CookieOptions selects the attributes of the emitted Set-Cookie header.
// Unset fields take the secure defaults: Path=/, HttpOnly, Secure,
// SameSite=Lax.
type CookieOptions struct {
	// Path defaults to "/".
	Path string

	// Domain is emitted only when non-empty.
	Domain string

	// SameSite defaults to [SameSiteLax].
	SameSite SameSite

	// Secure defaults to true. Use [Bool] to override explicitly.
	Secure *bool

	// HttpOnly defaults to true. Use [Bool] to override explicitly.
	HttpOnly *bool

	// Partitioned emits the Partitioned attribute when true.
	Partitioned bool

	// MaxAge overrides the ttl-derived Max-Age. nil derives Max-Age from
	// Options.TTL; [MaxAgeSessionOnly] omits the attribute so the cookie
	// lives only for the browser session; any value >= 0 is used verbatim.
	MaxAge *int
}

// Bool returns a pointer to v, for the explicit-override cookie attributes.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for CookieOptions.MaxAge.
func Int(v int) *int { return &v }

/*
====================================
DEFAULTS AND VALIDATION
====================================
*/

// DefaultOptions returns Options with the documented defaults: a 14-day TTL
// and Path=/, HttpOnly, Secure, SameSite=Lax cookie attributes.
func DefaultOptions(cookieName string, password keyring.Secret) Options {
	return Options{
		CookieName: cookieName,
		Password:   password,
		TTL:        DefaultTTL,
		CookieOptions: CookieOptions{
			Path:     "/",
			SameSite: SameSiteLax,
			Secure:   Bool(true),
			HttpOnly: Bool(true),
		},
	}
}

// Validate checks the Options for configuration errors. It runs synchronously
// before any cookie I/O; [Session] construction calls it for you.
func (o *Options) Validate() error {
	if o.CookieName == "" {
		return ErrMissingCookieName
	}
	if o.TTL < 0 {
		return ErrTTLNegative
	}
	if _, err := newKeyring(o.Password); err != nil {
		return err
	}
	return nil
}

// normalize fills the attribute defaults without touching explicit choices.
func (o Options) normalize() Options {
	if o.CookieOptions.Path == "" {
		o.CookieOptions.Path = "/"
	}
	if o.CookieOptions.SameSite == "" {
		o.CookieOptions.SameSite = SameSiteLax
	}
	if o.CookieOptions.Secure == nil {
		o.CookieOptions.Secure = Bool(true)
	}
	if o.CookieOptions.HttpOnly == nil {
		o.CookieOptions.HttpOnly = Bool(true)
	}
	return o
}

// newKeyring translates keyring validation failures into this package's
// config error taxonomy.
func newKeyring(secret keyring.Secret) (*keyring.Keyring, error) {
	kr, err := keyring.New(secret)
	switch {
	case err == nil:
		return kr, nil
	case errors.Is(err, keyring.ErrMissingPassword):
		return nil, ErrMissingPassword
	case errors.Is(err, keyring.ErrPasswordTooShort):
		return nil, ErrPasswordTooShort
	case errors.Is(err, keyring.ErrSecretID):
		return nil, ErrSecretID
	default:
		return nil, err
	}
}

/*
====================================
OPTIONS PATCH
====================================
*/

// OptionsPatch is a partial Options merged in place by
// [Session.UpdateConfig]. Nil fields leave the bound value unchanged.
type OptionsPatch struct {
	CookieName    *string
	Password      *keyring.Secret
	TTL           *time.Duration
	CookieOptions *CookieOptions
}

func (p OptionsPatch) apply(o Options) Options {
	if p.CookieName != nil {
		o.CookieName = *p.CookieName
	}
	if p.Password != nil {
		o.Password = *p.Password
	}
	if p.TTL != nil {
		o.TTL = *p.TTL
	}
	if p.CookieOptions != nil {
		o.CookieOptions = *p.CookieOptions
	}
	return o.normalize()
}
