package team

// Config holds the club the dashboard is built around.
type Config struct {
	// Name is the display name of the home team. It must match the team's
	// folder name in remote storage (case-insensitive) and the EQUIPO column
	// of the roster spreadsheet (contains-match).
	Name string `mapstructure:"name" default:"LUJISA GUADALAJARA BASKET"`
}

// Slug returns the filesystem slug of the configured team.
func (c Config) Slug() string {
	return Slug(c.Name)
}
