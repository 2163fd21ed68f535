package roster

// Config holds configuration for the roster spreadsheet.
type Config struct {
	// Path is the .xlsx or .csv file holding one row per player.
	Path string `mapstructure:"path" default:"./data/jugadores.xlsx"`
}
