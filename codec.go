package ironsession

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riceharvest/ironsession/keyring"
	"github.com/riceharvest/ironsession/seal"
)

// DecodeStatus classifies the outcome of decoding an inbound cookie. Every
// status except StatusOK yields a blank session; none of them is an error.
type DecodeStatus uint8

const (
	// StatusOK means a current envelope verified and was within TTL.
	StatusOK DecodeStatus = iota
	// StatusAbsent means no cookie was present on the request.
	StatusAbsent
	// StatusInvalid means the token failed verification under every
	// candidate secret: tampering, corruption, or a rotated-out password.
	StatusInvalid
	// StatusExpired means the envelope verified but outlived the TTL.
	StatusExpired
	// StatusLegacy means the payload verified but predates envelope
	// stamping; its data is accepted as-is without staleness evaluation.
	StatusLegacy
)

// String returns the status name used in audit events.
func (s DecodeStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAbsent:
		return "absent"
	case StatusInvalid:
		return "invalid"
	case StatusExpired:
		return "expired"
	case StatusLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// encodeSession stamps data into an envelope and seals it with the current
// key. The emitted token is prefixed with the sealing key id so decode can
// shortcut to the right candidate.
func encodeSession(sealer *seal.Sealer, kr *keyring.Keyring, data map[string]any) (string, error) {
	env := stampEnvelope(data)

	payload, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}

	current := kr.Current()
	sealed, err := sealer.Seal(payload, current.Password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}

	return fmt.Sprintf("%d.%s", current.ID, sealed), nil
}

// decodeSession turns an inbound token into session data. It never returns
// an error: absent, unverifiable, and stale tokens all degrade to a blank
// mapping, distinguished only by the returned status.
func decodeSession(sealer *seal.Sealer, kr *keyring.Keyring, token string, ttl time.Duration) (map[string]any, DecodeStatus) {
	if token == "" {
		return map[string]any{}, StatusAbsent
	}

	payload, ok := unsealWithCandidates(sealer, kr, token)
	if !ok {
		return map[string]any{}, StatusInvalid
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return map[string]any{}, StatusInvalid
	}
	if raw == nil {
		// The payload "null" unmarshals without error but carries no
		// mapping. Returning it would hand callers a nil data map.
		return map[string]any{}, StatusInvalid
	}

	data, createdAt, isEnvelope := splitEnvelope(raw)
	if !isEnvelope {
		// A prior protocol generation sealed the data mapping directly,
		// with no createdAt stamp. Accept it as eternally fresh.
		return raw, StatusLegacy
	}

	if envelopeStale(createdAt, ttl) {
		return map[string]any{}, StatusExpired
	}
	return data, StatusOK
}

// splitEnvelope applies the structural check that separates current
// envelopes from legacy payloads: an object with a "data" object field and a
// positive numeric "createdAt" field is an envelope, anything else is legacy
// session data.
func splitEnvelope(raw map[string]any) (data map[string]any, createdAt int64, isEnvelope bool) {
	dataField, ok := raw["data"].(map[string]any)
	if !ok {
		return nil, 0, false
	}
	createdField, ok := raw["createdAt"].(float64)
	if !ok || createdField <= 0 {
		return nil, 0, false
	}
	return dataField, int64(createdField), true
}

// unsealWithCandidates tries the hinted key first, then every candidate in
// order, against both the prefix-stripped and the whole token. Tokens from
// older generations carry no key-id prefix.
func unsealWithCandidates(sealer *seal.Sealer, kr *keyring.Keyring, token string) ([]byte, bool) {
	sealed, hint, hasHint := splitKeyID(token)

	if hasHint {
		if key, ok := kr.Lookup(hint); ok {
			if payload, err := sealer.Unseal(sealed, key.Password); err == nil {
				return payload, true
			}
		}
	}

	for _, key := range kr.Candidates() {
		if payload, err := sealer.Unseal(sealed, key.Password); err == nil {
			return payload, true
		}
		if sealed != token {
			if payload, err := sealer.Unseal(token, key.Password); err == nil {
				return payload, true
			}
		}
	}
	return nil, false
}

func splitKeyID(token string) (sealed string, id int, ok bool) {
	i := strings.IndexByte(token, '.')
	if i <= 0 {
		return token, 0, false
	}
	id, err := strconv.Atoi(token[:i])
	if err != nil || id <= 0 {
		return token, 0, false
	}
	return token[i+1:], id, true
}
