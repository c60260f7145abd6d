// Package keyring resolves a configured password specification into the
// secret used for sealing and the ordered candidate set used for unsealing.
//
// A [Secret] is either a single password or a rotation map of small positive
// integer ids to passwords. The highest id is "current": new tokens are sealed
// with it, while every configured password remains a valid unseal candidate.
// That is what makes passive key rotation work — an operator adds a new id,
// outstanding cookies keep verifying under the retired id, and every cookie
// written from then on uses the new secret.
//
// # Architecture boundaries
//
// The keyring validates and orders secrets. It performs no cryptography and no
// cookie I/O; those belong to the seal and ironsession packages.
package keyring
