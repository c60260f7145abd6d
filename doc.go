// Package ironsession provides stateless HTTP session management backed
// entirely by an encrypted, authenticated cookie.
//
// No server-side session store exists: the full session state round-trips
// through the client on every request as a sealed token. The package stamps
// session data with freshness metadata, rotates sealing secrets without
// invalidating outstanding cookies, degrades silently from absent, tampered,
// or expired cookies, and assembles Set-Cookie headers under size and
// ordering constraints.
//
// # Architecture boundaries
//
// ironsession is the public surface. It exposes [Session], [Options],
// [SealData]/[UnsealData], the audit and metrics types, and the transport
// adapter interfaces. The cryptographic primitive lives in the seal
// subpackage and secret rotation in the keyring subpackage; neither knows
// about cookies or HTTP.
//
// # Error discipline
//
// Conditions expected under normal client behavior — a missing cookie, a
// cookie that fails verification under every candidate secret, a stale
// envelope — are never errors. They resolve to a blank session so ordinary
// end users keep making progress. Errors are reserved for configuration
// mistakes (bad password, missing cookie name), usage mistakes (nil
// request/response), oversized cookies, and writes after the response has
// been flushed.
//
// # What this package must NOT do
//
//   - Keep any per-session state between requests.
//   - Retry or roll back header writes; propagation is the caller's job.
//   - Log; observability flows through [AuditSink] and [Metrics].
package ironsession
