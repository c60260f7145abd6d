package ironsession

import (
	"time"

	"github.com/riceharvest/ironsession/keyring"
	"github.com/riceharvest/ironsession/seal"
)

// SealConfig configures the standalone sealing API.
type SealConfig struct {
	// Password is the secret specification, as in [Options].
	Password keyring.Secret
	// TTL applies to UnsealData staleness evaluation and is stamped-against
	// at SealData time. Zero means no expiry.
	TTL time.Duration
	// Seal tunes the primitive's work factor; zero selects the default.
	Seal seal.Config
}

// SealData seals an arbitrary data mapping into a token without any cookie
// involvement, applying the same envelope stamping and key selection as
// [Session.Save]. Intended for pre-issuing tokens, migration tooling, and
// tests.
func SealData(data map[string]any, cfg SealConfig) (string, error) {
	kr, err := newKeyring(cfg.Password)
	if err != nil {
		return "", err
	}
	if cfg.TTL < 0 {
		return "", ErrTTLNegative
	}
	sealer, err := seal.New(cfg.Seal)
	if err != nil {
		return "", err
	}
	return encodeSession(sealer, kr, data)
}

// UnsealData decodes a token produced by [SealData] (or carried in a session
// cookie), applying the same candidate iteration, legacy tolerance, and
// staleness rules as cookie decoding. Absent, unverifiable, and stale tokens
// degrade to an empty mapping; only configuration problems error.
func UnsealData(token string, cfg SealConfig) (map[string]any, error) {
	data, _, err := UnsealDataStatus(token, cfg)
	return data, err
}

// UnsealDataStatus is UnsealData plus the decode classification, for callers
// that need to distinguish a genuinely blank session from a degraded one.
func UnsealDataStatus(token string, cfg SealConfig) (map[string]any, DecodeStatus, error) {
	kr, err := newKeyring(cfg.Password)
	if err != nil {
		return nil, StatusInvalid, err
	}
	if cfg.TTL < 0 {
		return nil, StatusInvalid, ErrTTLNegative
	}
	sealer, err := seal.New(cfg.Seal)
	if err != nil {
		return nil, StatusInvalid, err
	}

	data, status := decodeSession(sealer, kr, token, cfg.TTL)
	return data, status, nil
}
