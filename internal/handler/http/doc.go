// Package http implements the HTTP transport layer of the site backend.
//
// It exposes route wiring, request handlers, and middleware for the REST
// API. Request tracing, access logging, metrics, response compression and
// caller identification are handled here before requests are delegated to
// the service layer. Authorization decisions stay in the services.
package http
