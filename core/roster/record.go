package roster

// Column headers, after normalization.
const (
	ColPlayer   = "JUGADOR"
	ColTeam     = "EQUIPO"
	ColJersey   = "DORSAL"
	ColPoints   = "PUNTOS"
	ColMinutes  = "MINUTOS JUGADOS"
	ColGames    = "PJ"
	ColImage    = "IMAGEN"
	ColPosition = "POSICION"
	ColHeight   = "ALTURA"
	ColAge      = "EDAD"
)

// Record is one spreadsheet row describing a player.
type Record struct {
	// Index is the position of the row in the table, used as roster order.
	Index int `json:"index"`

	// FullName is either "SURNAME, Given" or "I. Surname".
	FullName string `json:"full_name"`

	// Team is the team column, as written in the sheet.
	Team string `json:"team"`

	// Jersey is the shirt number; 0 means unknown.
	Jersey int `json:"jersey"`

	Points  int     `json:"points"`
	Minutes float64 `json:"minutes"`
	Games   int     `json:"games_played"`

	// ImageURL is an optional external photo URL, not yet validated.
	ImageURL string `json:"image_url,omitempty"`

	// Optional columns; nil when the column is absent or the cell empty.
	Position *string `json:"position,omitempty"`
	Height   *string `json:"height,omitempty"`
	Age      *int    `json:"age,omitempty"`
}

// Name returns the parsed surname and given part of FullName.
func (r Record) Name() Name {
	return ParseName(r.FullName)
}
