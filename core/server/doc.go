// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from Config: listen port,
// API key for the auth middleware and the request body limit for CSV
// uploads.
package server
