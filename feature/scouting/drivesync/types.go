package drivesync

import (
	"context"
	"time"

	"scouting-hub/core/database"
	"scouting-hub/core/reconcile"
	"scouting-hub/core/storage"
)

// State is a step of one sync pass.
type State string

const (
	StateIdle                 State = "idle"
	StateResolvingTeamFolder  State = "resolving_team_folder"
	StateResolvingAssetFolder State = "resolving_asset_folder"
	StateEnumeratingAssets    State = "enumerating_assets"
	StateReconcilingMatches   State = "reconciling_matches"
	StateDone                 State = "done"
	StateDegraded             State = "degraded"
)

// Scope selects the roster rows offered to the matcher.
type Scope string

const (
	// ScopeTeam uses the rows whose team column contains the team name.
	ScopeTeam Scope = "team"
	// ScopeAll uses every row of the sheet.
	ScopeAll Scope = "all"
)

// ParseScope maps "all" to ScopeAll and anything else to ScopeTeam.
func ParseScope(s string) Scope {
	if Scope(s) == ScopeAll {
		return ScopeAll
	}
	return ScopeTeam
}

// PlayerFolders are the accepted names of the players sub-folder.
var PlayerFolders = []string{"jugadores", "players"}

// Store is the remote side of a sync pass. *storage.AssetStore implements it.
type Store interface {
	IsAvailable() bool
	Root() string
	ListChildren(ctx context.Context, folderID string, kinds ...storage.Kind) ([]storage.Entry, error)
	FindFolder(ctx context.Context, parentID string, names ...string) (storage.Entry, error)
	FetchBytes(ctx context.Context, id string) ([]byte, error)
}

// Result is the outcome of one sync pass. It is shared between callers of a
// joined flight and must not be modified.
type Result struct {
	Team     string `json:"team"`
	TeamSlug string `json:"team_slug"`

	// State is the final state, StateDone or StateDegraded.
	State State `json:"state"`

	// Trace lists the states visited, in order.
	Trace []State `json:"trace"`

	// Success is true when the pass produced a report or at least one asset.
	Success bool `json:"success"`
	Forced  bool `json:"forced"`

	ReportPath  string `json:"report_path,omitempty"`
	ReportPages int    `json:"report_pages"`

	// Assets maps the lowercase file name of every players-folder asset
	// materialized this pass to its cache path.
	Assets map[string]string `json:"assets"`

	Players []reconcile.Player `json:"players"`

	Downloaded int      `json:"downloaded"`
	Cached     int      `json:"cached"`
	Failed     int      `json:"failed"`
	Warnings   []string `json:"warnings"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// TeamInfo describes one team folder of the remote root.
type TeamInfo struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	FolderID string `json:"folder_id,omitempty"`
}

// Status summarizes what is known locally about a team.
type Status struct {
	Team           string            `json:"team"`
	TeamSlug       string            `json:"team_slug"`
	StoreAvailable bool              `json:"store_available"`
	Synced         bool              `json:"synced"`
	ReportCached   bool              `json:"report_cached"`
	ReportPath     string            `json:"report_path,omitempty"`
	ImageCount     int               `json:"image_count"`
	CacheDir       string            `json:"cache_dir"`
	LastRun        *database.SyncRun `json:"last_run,omitempty"`
}

func (r *Result) enter(s State) {
	r.State = s
	r.Trace = append(r.Trace, s)
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
