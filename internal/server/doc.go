// Package server wires and runs the application's HTTP server together with
// its background workers.
//
// It handles startup, signal handling and graceful shutdown: on SIGINT,
// SIGTERM or SIGQUIT in-flight requests are drained and workers are stopped
// before Run returns.
package server
