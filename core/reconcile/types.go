package reconcile

import (
	"context"

	"scouting-hub/core/roster"
)

// Asset is a discovered file offered to the matcher.
type Asset struct {
	// Name is the file name, e.g. "diaz_zarzuela_francisco.png".
	Name string `json:"name"`

	// Path is where the file can be read: a cache path or a remote id.
	Path string `json:"path"`
}

// Player is one reconciled output unit: an image asset joined to zero or one
// roster record.
type Player struct {
	// Slug is derived from the asset file name and unique within one result.
	Slug string `json:"slug"`

	// Given and Surnames are the display name parts.
	Given    string `json:"name"`
	Surnames string `json:"surnames"`
	FullName string `json:"full_name"`
	Team     string `json:"team"`

	// Jersey is 0 for players without a roster row.
	Jersey  int     `json:"number"`
	Points  int     `json:"points"`
	Minutes float64 `json:"minutes"`
	Games   int     `json:"games_played"`

	Position *string `json:"position,omitempty"`
	Height   *string `json:"height,omitempty"`
	Age      *int    `json:"age,omitempty"`

	// ImageURL is a validated external photo URL, or "".
	ImageURL string `json:"image_url"`

	// ImageFile and ImagePath locate the asset this player was built from.
	ImageFile string `json:"image_filename"`
	ImagePath string `json:"image_path"`

	// ReportPath is a per-player pdf found next to the image, if any.
	ReportPath string `json:"report_path,omitempty"`

	// Matched is false for placeholders.
	Matched bool `json:"matched"`

	// RecordIndex is the Index of the claimed roster record, -1 for placeholders.
	RecordIndex int `json:"-"`
}

// URLValidator filters external image URLs. core/probe.Prober implements it.
type URLValidator interface {
	SafeURL(ctx context.Context, rawURL string) string
}

// Options tune one reconciliation pass.
type Options struct {
	// Team overrides the team name of every output player when set.
	Team string

	// Images validates roster photo URLs. Nil drops every external URL.
	Images URLValidator
}

func fromRecord(rec roster.Record) Player {
	name := rec.Name()
	return Player{
		Given:       name.Given,
		Surnames:    name.Surname,
		FullName:    rec.FullName,
		Team:        rec.Team,
		Jersey:      rec.Jersey,
		Points:      rec.Points,
		Minutes:     rec.Minutes,
		Games:       rec.Games,
		Position:    rec.Position,
		Height:      rec.Height,
		Age:         rec.Age,
		Matched:     true,
		RecordIndex: rec.Index,
	}
}
