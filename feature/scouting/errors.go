package scouting

import "errors"

var (
	// ErrPlayerNotFound is returned when no reconciled player has the slug.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrReportNotFound is returned when the team report is not cached.
	ErrReportNotFound = errors.New("team report not found")
	// ErrImageNotFound is returned when the players folder holds no such image.
	ErrImageNotFound = errors.New("image not found")
)
