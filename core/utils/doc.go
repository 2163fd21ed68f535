// Package utils provides common utility functions for the scouting-hub application.
// It includes helpers for loose type conversion of spreadsheet cells, accent folding,
// and other shared logic that doesn't fit into domain-specific packages.
package utils
