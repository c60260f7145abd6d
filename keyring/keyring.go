package keyring

import (
	"errors"
	"fmt"
	"sort"
)

// MinPasswordBytes is the shortest password the keyring accepts. It matches
// the bound enforced by the seal package.
const MinPasswordBytes = 32

var (
	// ErrMissingPassword is returned when a Secret holds no passwords at all.
	ErrMissingPassword = errors.New("password is required")
	// ErrPasswordTooShort is returned when any configured password is shorter
	// than MinPasswordBytes.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d bytes", MinPasswordBytes)
	// ErrSecretID is returned when a rotation map contains a non-positive id.
	ErrSecretID = errors.New("rotation secret ids must be positive")
)

// Key pairs a rotation id with its password.
type Key struct {
	ID       int
	Password string
}

// Secret is the password specification accepted by session options: a single
// password or an id-keyed rotation set. The zero Secret is invalid.
type Secret struct {
	single   string
	rotation map[int]string
	isMap    bool
}

// FromString builds a single-password Secret. The password is assigned
// rotation id 1.
func FromString(password string) Secret {
	return Secret{single: password}
}

// FromMap builds a rotation Secret. The map is copied; later mutation of m
// does not affect the Secret.
func FromMap(m map[int]string) Secret {
	rotation := make(map[int]string, len(m))
	for id, password := range m {
		rotation[id] = password
	}
	return Secret{rotation: rotation, isMap: true}
}

// IsZero reports whether the Secret carries no password specification.
func (s Secret) IsZero() bool {
	return !s.isMap && s.single == ""
}

// Keyring is a validated, normalized view of a Secret: one current sealing
// key plus the full candidate list for unsealing.
type Keyring struct {
	current    Key
	candidates []Key
}

// New validates secret and normalizes it into a Keyring.
//
// Validation is synchronous and happens before any cookie I/O: an empty
// specification, a non-positive rotation id, or any password shorter than
// [MinPasswordBytes] fails here.
func New(secret Secret) (*Keyring, error) {
	if secret.IsZero() {
		return nil, ErrMissingPassword
	}

	if !secret.isMap {
		if len(secret.single) < MinPasswordBytes {
			return nil, ErrPasswordTooShort
		}
		current := Key{ID: 1, Password: secret.single}
		return &Keyring{current: current, candidates: []Key{current}}, nil
	}

	if len(secret.rotation) == 0 {
		return nil, ErrMissingPassword
	}

	candidates := make([]Key, 0, len(secret.rotation))
	for id, password := range secret.rotation {
		if id <= 0 {
			return nil, ErrSecretID
		}
		if len(password) < MinPasswordBytes {
			return nil, ErrPasswordTooShort
		}
		candidates = append(candidates, Key{ID: id, Password: password})
	}

	// Current first, then retired keys newest to oldest.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID > candidates[j].ID
	})

	return &Keyring{current: candidates[0], candidates: candidates}, nil
}

// Current returns the key used for sealing new tokens: the highest id.
func (k *Keyring) Current() Key {
	return k.current
}

// Candidates returns every acceptable verification key, current first. The
// returned slice is a copy.
func (k *Keyring) Candidates() []Key {
	out := make([]Key, len(k.candidates))
	copy(out, k.candidates)
	return out
}

// Lookup returns the key with the given rotation id, if configured.
func (k *Keyring) Lookup(id int) (Key, bool) {
	for _, key := range k.candidates {
		if key.ID == id {
			return key, true
		}
	}
	return Key{}, false
}
