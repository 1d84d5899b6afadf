package server

import "context"

// Server defines the lifecycle contract of the application server.
//
// Implementations block in [Server.RunServer] until ctx is cancelled, a
// termination signal arrives or serving fails, and release their resources
// before returning.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer(ctx context.Context) error
}
