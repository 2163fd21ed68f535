// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure: the listen port and the API key that protects the
// scouting endpoints.
package server
