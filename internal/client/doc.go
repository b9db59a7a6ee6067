// Package client assembles the dashboard client runtime.
//
// It wires configuration, the durable store, the HTTP gateway, the session
// store, the bank-link coordinator and the terminal UI into a single
// process lifecycle.
package client
