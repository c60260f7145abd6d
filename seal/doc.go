// Package seal implements the authenticated-encryption primitive that turns an
// opaque byte payload into a tamper-evident text token bound to a password.
//
// # Token format
//
// Tokens use a PHC-style dollar-delimited text encoding:
//
//	$sealed$v=2$i=<iterations>$<salt>$<nonce>$<ciphertext>
//
// Salt, nonce, and ciphertext are standard base64. The encryption key is derived
// from the password with PBKDF2-SHA256 over a random per-token salt, and the
// payload is encrypted with AES-256-GCM under a random nonce. Only format
// version 2 is accepted; the version field exists so a future algorithm change
// can coexist with outstanding tokens.
//
// # Architecture boundaries
//
// This package knows nothing about sessions, cookies, ttl, or key rotation. It
// seals bytes and unseals bytes. Rotation and freshness policy live in the
// keyring and ironsession packages.
//
// # What this package must NOT do
//
//   - Import ironsession or any of its subpackages (no upward imports).
//   - Distinguish tamper from wrong-password in its error surface: every
//     verification failure is [ErrTokenInvalid].
//   - Log or retain passwords, derived keys, or plaintext.
package seal
