package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	minIterations        = 1024
	minSaltLength        = 16
	keyLength            = 32
	gcmNonceLength       = 12
	minPasswordBytes     = 32
	formatID             = "sealed"
	formatVersionCurrent = 2
)

var (
	// ErrTokenInvalid is returned for every token that fails to unseal:
	// malformed encoding, truncated fields, authentication failure, or a
	// password that does not match. The cause is deliberately not
	// distinguishable.
	ErrTokenInvalid = errors.New("invalid sealed token")
	// ErrPasswordTooShort is returned when the sealing password is shorter
	// than 32 bytes.
	ErrPasswordTooShort = errors.New("sealing password must be at least 32 bytes")
)

// Config bounds the key-derivation work factor of the sealer.
//
// Config instances are intended to be set once during initialization and then
// treated as immutable.
type Config struct {
	// Iterations is the PBKDF2 iteration count. Minimum 1024.
	Iterations int
	// SaltLength is the per-token salt size in bytes. Minimum 16.
	SaltLength int
}

// DefaultConfig returns the sealer configuration used when callers pass the
// zero Config.
func DefaultConfig() Config {
	return Config{
		Iterations: 4096,
		SaltLength: 16,
	}
}

// Sealer seals and unseals byte payloads under password-derived AES-256-GCM.
// A Sealer is stateless and safe for concurrent use.
type Sealer struct {
	config Config
}

// New validates cfg and returns a Sealer. A zero cfg selects [DefaultConfig].
func New(cfg Config) (*Sealer, error) {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if cfg.Iterations < minIterations {
		return nil, fmt.Errorf("seal: iterations must be at least %d", minIterations)
	}
	if cfg.SaltLength < minSaltLength {
		return nil, fmt.Errorf("seal: salt length must be at least %d bytes", minSaltLength)
	}

	return &Sealer{config: cfg}, nil
}

// Seal encrypts payload under password and returns the sealed token text.
//
// Seal never inspects the payload; serialization policy belongs to the caller.
func (s *Sealer) Seal(payload []byte, password string) (string, error) {
	if len(password) < minPasswordBytes {
		return "", ErrPasswordTooShort
	}

	salt := make([]byte, s.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	aead, err := s.aead(password, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcmNonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := aead.Seal(nil, nonce, payload, nil)

	return fmt.Sprintf(
		"$%s$v=%d$i=%d$%s$%s$%s",
		formatID,
		formatVersionCurrent,
		s.config.Iterations,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(nonce),
		base64.StdEncoding.EncodeToString(ciphertext),
	), nil
}

// Unseal authenticates and decrypts a token produced by [Sealer.Seal] with the
// same password. Every failure mode returns [ErrTokenInvalid].
func (s *Sealer) Unseal(token string, password string) ([]byte, error) {
	if len(password) < minPasswordBytes {
		return nil, ErrPasswordTooShort
	}

	parsed, err := parseToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	key := pbkdf2.Key([]byte(password), parsed.salt, parsed.iterations, keyLength, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	payload, err := aead.Open(nil, parsed.nonce, parsed.ciphertext, nil)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return payload, nil
}

func (s *Sealer) aead(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, s.config.Iterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

type parsedToken struct {
	iterations int
	salt       []byte
	nonce      []byte
	ciphertext []byte
}

func parseToken(token string) (parsedToken, error) {
	var parsed parsedToken

	parts := strings.Split(token, "$")
	if len(parts) != 7 || parts[0] != "" || parts[1] != formatID {
		return parsed, errors.New("malformed token")
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return parsed, errors.New("malformed version field")
	}
	v, err := strconv.Atoi(version)
	if err != nil || v != formatVersionCurrent {
		return parsed, errors.New("unsupported token version")
	}

	iterations, ok := strings.CutPrefix(parts[3], "i=")
	if !ok {
		return parsed, errors.New("malformed iterations field")
	}
	parsed.iterations, err = strconv.Atoi(iterations)
	if err != nil || parsed.iterations < minIterations {
		return parsed, errors.New("invalid iteration count")
	}

	if parsed.salt, err = base64.StdEncoding.DecodeString(parts[4]); err != nil {
		return parsed, err
	}
	if len(parsed.salt) < minSaltLength {
		return parsed, errors.New("salt too short")
	}

	if parsed.nonce, err = base64.StdEncoding.DecodeString(parts[5]); err != nil {
		return parsed, err
	}
	if len(parsed.nonce) != gcmNonceLength {
		return parsed, errors.New("invalid nonce size")
	}

	if parsed.ciphertext, err = base64.StdEncoding.DecodeString(parts[6]); err != nil {
		return parsed, err
	}

	return parsed, nil
}
