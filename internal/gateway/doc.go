// Package gateway is the single shared outbound request channel to the
// Salim backend.
//
// A [Gateway] owns the authoritative request/response policy: bearer
// credential attachment read from the bound [SessionSource] at dispatch
// time, single-flight credential renewal with exactly one re-issue on an
// unauthorized reply, and the demo-mode short-circuit that resolves
// requests from a static fixture table without touching the network.
//
// Feature helpers are grouped by tag across auth.go, banking.go, and
// features.go; each is a thin typed envelope over the shared policy and
// carries no business logic. Error values defined in errors.go are mapped
// from HTTP status codes by mapHTTPError so that callers can use
// [errors.Is] for transport-agnostic error handling.
package gateway
