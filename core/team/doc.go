// Package team holds the home-team configuration and the slug rule shared by the
// cache layout, the sync orchestrator and the HTTP routes.
package team
