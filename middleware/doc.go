// Package middleware wires ironsession into net/http handler chains.
//
// [Sessions] constructs one session handle per request, exposes it through
// the request context, and arms the response-sent latch so that Save and
// Destroy calls after the first body write fail with
// ironsession.ErrResponseSent instead of silently losing the cookie.
//
// # Architecture boundaries
//
// This package contains HTTP plumbing only. Session semantics, cookie
// assembly, and error policy live in ironsession.
package middleware
