package drivesync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"scouting-hub/core/cache"
	"scouting-hub/core/database"
	"scouting-hub/core/logger"
	"scouting-hub/core/reconcile"
	"scouting-hub/core/roster"
	"scouting-hub/core/storage"
	"scouting-hub/core/team"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	syncPassesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scouting_sync_passes_total",
		Help: "Sync passes by final state.",
	}, []string{"state"})
	downloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scouting_sync_downloads_total",
		Help: "Files downloaded from remote storage.",
	})
	downloadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scouting_sync_download_failures_total",
		Help: "Downloads or cache writes that failed.",
	})
)

// Config wires an Orchestrator.
type Config struct {
	// RosterPath is the spreadsheet read on every reconciliation.
	RosterPath string
	// Images validates external photo URLs; nil drops them.
	Images reconcile.URLValidator
	// Journal records every pass; nil disables recording.
	Journal *database.Journal
}

const folderCacheSize = 256

type folderIDs struct {
	team    string
	players string
}

// Orchestrator drives sync passes from the remote store into the local cache
// and reconciles the cached assets with the roster. One Orchestrator lives for
// the whole process.
type Orchestrator struct {
	store      Store
	cache      *cache.Cache
	rosterPath string
	images     reconcile.URLValidator
	journal    *database.Journal
	logger     *zap.Logger

	// Folder ids never expire; size bounds the number of teams.
	folders *expirable.LRU[string, folderIDs]

	mu      sync.Mutex
	synced  map[string]bool
	flights singleflight.Group
}

// New creates an orchestrator.
func New(store Store, c *cache.Cache, cfg Config, logger *zap.Logger) *Orchestrator {
	journal := cfg.Journal
	if journal == nil {
		journal = database.NewJournal(nil)
	}
	return &Orchestrator{
		store:      store,
		cache:      c,
		rosterPath: cfg.RosterPath,
		images:     cfg.Images,
		journal:    journal,
		logger:     logger,
		folders:    expirable.NewLRU[string, folderIDs](folderCacheSize, nil, 0),
		synced:     make(map[string]bool),
	}
}

// Sync runs one pass for team. Concurrent passes for the same team and force
// flag share one flight. Sync never fails: problems end the pass in
// StateDegraded with warnings.
func (o *Orchestrator) Sync(ctx context.Context, teamName string, force bool) *Result {
	slug := team.Slug(teamName)
	o.markSynced(slug)

	key := slug
	if force {
		key += "|force"
	}

	v, _, _ := o.flights.Do(key, func() (any, error) {
		return o.run(ctx, teamName, slug, force), nil
	})
	return v.(*Result)
}

// EnsureSynced runs a non-forced pass the first time a team is seen and
// returns nil afterwards, whatever the outcome of that first pass.
func (o *Orchestrator) EnsureSynced(ctx context.Context, teamName string) *Result {
	slug := team.Slug(teamName)

	o.mu.Lock()
	done := o.synced[slug]
	o.synced[slug] = true
	o.mu.Unlock()

	if done {
		return nil
	}
	return o.Sync(ctx, teamName, false)
}

// ForceSync purges the team cache and runs a forced pass.
func (o *Orchestrator) ForceSync(ctx context.Context, teamName string) *Result {
	slug := team.Slug(teamName)
	if err := o.cache.Purge(slug); err != nil {
		o.logger.Warn("Failed to purge team cache", zap.String("team_slug", slug), zap.Error(err))
	}
	return o.Sync(ctx, teamName, true)
}

func (o *Orchestrator) markSynced(slug string) {
	o.mu.Lock()
	o.synced[slug] = true
	o.mu.Unlock()
}

// Synced reports whether a pass was attempted for team in this process.
func (o *Orchestrator) Synced(teamName string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.synced[team.Slug(teamName)]
}

func (o *Orchestrator) run(ctx context.Context, teamName, slug string, force bool) *Result {
	l := logger.WithTeam(o.logger, teamName, slug)
	res := &Result{
		Team:      teamName,
		TeamSlug:  slug,
		Forced:    force,
		Assets:    make(map[string]string),
		StartedAt: time.Now(),
	}
	res.enter(StateIdle)

	l.Info("Sync started", zap.Bool("force", force))
	o.pass(ctx, l, res)

	if res.State == StateDegraded {
		// Serve whatever the cache already holds
		res.Players = o.fromCache(ctx, l, teamName, slug, ScopeTeam)
	}

	res.Success = res.ReportPath != "" || len(res.Assets) > 0
	res.Duration = time.Since(res.StartedAt)
	syncPassesTotal.WithLabelValues(string(res.State)).Inc()

	l.Info("Sync finished",
		zap.String("state", string(res.State)),
		zap.Bool("success", res.Success),
		zap.Int("downloaded", res.Downloaded),
		zap.Int("cached", res.Cached),
		zap.Int("failed", res.Failed),
		zap.Duration("duration", res.Duration))

	o.record(ctx, l, res)
	return res
}

func (o *Orchestrator) pass(ctx context.Context, l *zap.Logger, res *Result) {
	res.enter(StateResolvingTeamFolder)
	if !o.store.IsAvailable() {
		res.warn("remote storage unavailable, serving cached data")
		res.enter(StateDegraded)
		return
	}

	teamID, err := o.teamFolder(ctx, res.Team, res.TeamSlug)
	if err != nil {
		l.Warn("Team folder not resolved", zap.Error(err))
		res.warn(fmt.Sprintf("team folder %q not found", res.Team))
		res.enter(StateDegraded)
		return
	}

	// The team report always precedes player assets
	o.syncReport(ctx, l, res, teamID)

	res.enter(StateResolvingAssetFolder)
	playersID, err := o.playersFolder(ctx, res.TeamSlug, teamID)
	if err != nil {
		l.Warn("Players folder not resolved", zap.Error(err))
		res.warn("players folder not found")
		res.enter(StateDegraded)
		return
	}

	res.enter(StateEnumeratingAssets)
	entries, err := o.store.ListChildren(ctx, playersID, storage.KindPDF, storage.KindImage)
	if err != nil {
		l.Warn("Players folder listing failed", zap.Error(err))
		res.warn("players folder listing failed")
		res.enter(StateDegraded)
		return
	}

	var assets []reconcile.Asset
	for _, entry := range entries {
		name := strings.ToLower(entry.Name)
		path := o.cache.PathFor(res.TeamSlug, cache.CategoryPlayers, name)
		if o.materialize(ctx, l, res, entry, path) {
			res.Assets[name] = path
			assets = append(assets, reconcile.Asset{Name: name, Path: path})
		}
	}

	res.enter(StateReconcilingMatches)
	res.Players = o.reconcile(ctx, l, res.Team, assets, ScopeTeam)
	res.enter(StateDone)
}

// syncReport materializes the team report. A valid cached copy short-circuits
// the remote listing.
func (o *Orchestrator) syncReport(ctx context.Context, l *zap.Logger, res *Result, teamID string) {
	path := o.cache.PathFor(res.TeamSlug, "", res.TeamSlug+".pdf")

	if !res.Forced && o.cache.IsValid(path) {
		res.Cached++
		o.setReport(l, res, path)
		return
	}

	pdfs, err := o.store.ListChildren(ctx, teamID, storage.KindPDF)
	if err != nil {
		l.Warn("Team folder listing failed", zap.Error(err))
		res.warn("team report listing failed")
		return
	}

	entry, ok := pickReport(pdfs, res.TeamSlug)
	if !ok {
		res.warn("team report not found")
		return
	}

	if o.materialize(ctx, l, res, entry, path) {
		o.setReport(l, res, path)
	}
}

func (o *Orchestrator) setReport(l *zap.Logger, res *Result, path string) {
	res.ReportPath = path
	pages, err := CountPages(path)
	if err != nil {
		l.Warn("Team report is not a readable pdf", zap.String("path", path), zap.Error(err))
		res.warn("team report is not a readable pdf")
		return
	}
	res.ReportPages = pages
}

// materialize makes path hold entry, downloading unless a valid copy exists.
func (o *Orchestrator) materialize(ctx context.Context, l *zap.Logger, res *Result, entry storage.Entry, path string) bool {
	if !res.Forced && o.cache.IsValid(path) {
		res.Cached++
		return true
	}

	data, err := o.store.FetchBytes(ctx, entry.ID)
	if err != nil {
		l.Warn("Download failed", zap.String("file", entry.Name), zap.Error(err))
		res.warn(fmt.Sprintf("download failed: %s", entry.Name))
		res.Failed++
		downloadFailuresTotal.Inc()
		return false
	}
	if err := o.cache.Write(path, data); err != nil {
		l.Warn("Cache write failed", zap.String("file", entry.Name), zap.Error(err))
		res.warn(fmt.Sprintf("cache write failed: %s", entry.Name))
		res.Failed++
		downloadFailuresTotal.Inc()
		return false
	}

	res.Downloaded++
	downloadsTotal.Inc()
	return true
}

// pickReport prefers "<slug>.pdf", then a name holding the slug, "informe"
// or "report", then any pdf.
func pickReport(pdfs []storage.Entry, slug string) (storage.Entry, bool) {
	want := slug + ".pdf"
	for _, f := range pdfs {
		if strings.ToLower(f.Name) == want {
			return f, true
		}
	}
	for _, f := range pdfs {
		name := strings.ToLower(f.Name)
		if strings.Contains(name, slug) || strings.Contains(name, "informe") || strings.Contains(name, "report") {
			return f, true
		}
	}
	if len(pdfs) > 0 {
		return pdfs[0], true
	}
	return storage.Entry{}, false
}

func (o *Orchestrator) teamFolder(ctx context.Context, teamName, slug string) (string, error) {
	if ids, ok := o.folders.Get(slug); ok && ids.team != "" {
		return ids.team, nil
	}

	folder, err := o.store.FindFolder(ctx, o.store.Root(), teamName)
	if err != nil {
		return "", err
	}

	ids, _ := o.folders.Get(slug)
	ids.team = folder.ID
	o.folders.Add(slug, ids)
	return folder.ID, nil
}

func (o *Orchestrator) playersFolder(ctx context.Context, slug, teamID string) (string, error) {
	ids, _ := o.folders.Get(slug)
	if ids.players != "" && ids.team == teamID {
		return ids.players, nil
	}

	folder, err := o.store.FindFolder(ctx, teamID, PlayerFolders...)
	if err != nil {
		return "", err
	}

	o.folders.Add(slug, folderIDs{team: teamID, players: folder.ID})
	return folder.ID, nil
}

// Players reconciles the cached assets of a team with the roster. When the
// cache holds no assets and the team was never synced in this process, a
// non-forced pass is run first. An empty players folder stays empty until a
// forced refresh.
func (o *Orchestrator) Players(ctx context.Context, teamName string, scope Scope) []reconcile.Player {
	slug := team.Slug(teamName)
	l := logger.WithTeam(o.logger, teamName, slug)

	entries, err := o.cache.ListValidEntries(slug, cache.CategoryPlayers)
	if err != nil {
		l.Warn("Cache listing failed", zap.Error(err))
	}
	if len(entries) == 0 && o.store.IsAvailable() {
		res := o.EnsureSynced(ctx, teamName)
		if res != nil && scope == ScopeTeam && res.State == StateDone {
			return res.Players
		}
	}
	return o.fromCache(ctx, l, teamName, slug, scope)
}

func (o *Orchestrator) fromCache(ctx context.Context, l *zap.Logger, teamName, slug string, scope Scope) []reconcile.Player {
	entries, err := o.cache.ListValidEntries(slug, cache.CategoryPlayers)
	if err != nil {
		l.Warn("Cache listing failed", zap.Error(err))
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	assets := make([]reconcile.Asset, 0, len(names))
	for _, name := range names {
		assets = append(assets, reconcile.Asset{Name: name, Path: entries[name]})
	}
	return o.reconcile(ctx, l, teamName, assets, scope)
}

func (o *Orchestrator) reconcile(ctx context.Context, l *zap.Logger, teamName string, assets []reconcile.Asset, scope Scope) []reconcile.Player {
	table, err := roster.Load(o.rosterPath, "")
	switch {
	case errors.Is(err, roster.ErrNotFound):
		l.Warn("Roster not found, using built-in roster", zap.String("path", o.rosterPath))
		table = roster.Fallback(teamName)
	case err != nil:
		l.Warn("Roster unreadable", zap.Error(err))
	}

	opts := reconcile.Options{Images: o.images}
	records := table.All()
	if scope == ScopeTeam {
		opts.Team = teamName
		records = table.RecordsForTeam(teamName)
	}

	players := reconcile.Reconcile(ctx, assets, records, opts)
	for i := range players {
		if players[i].Team == "" {
			players[i].Team = teamName
		}
	}
	return players
}

func (o *Orchestrator) record(ctx context.Context, l *zap.Logger, res *Result) {
	run := &database.SyncRun{
		TeamSlug:   res.TeamSlug,
		Team:       res.Team,
		State:      string(res.State),
		Success:    res.Success,
		Forced:     res.Forced,
		Downloaded: res.Downloaded,
		Cached:     res.Cached,
		Failed:     res.Failed,
		Warnings:   strings.Join(res.Warnings, "\n"),
		StartedAt:  res.StartedAt,
		DurationMs: res.Duration.Milliseconds(),
	}
	if err := o.journal.Record(ctx, run); err != nil {
		l.Warn("Failed to record sync run", zap.Error(err))
	}
}

// Teams lists the team folders of the remote root, sorted by name. Without
// remote storage the cached team directories are listed instead.
func (o *Orchestrator) Teams(ctx context.Context) ([]TeamInfo, error) {
	if !o.store.IsAvailable() {
		return o.cachedTeams()
	}

	folders, err := o.store.ListChildren(ctx, o.store.Root(), storage.KindFolder)
	if err != nil {
		o.logger.Warn("Team listing failed, using cache", zap.Error(err))
		return o.cachedTeams()
	}

	teams := make([]TeamInfo, 0, len(folders))
	for _, f := range folders {
		slug := team.Slug(f.Name)
		if ids, ok := o.folders.Get(slug); !ok || ids.team != f.ID {
			o.folders.Add(slug, folderIDs{team: f.ID})
		}
		teams = append(teams, TeamInfo{Name: f.Name, Slug: slug, FolderID: f.ID})
	}

	sort.Slice(teams, func(i, j int) bool {
		return strings.ToLower(teams[i].Name) < strings.ToLower(teams[j].Name)
	})
	return teams, nil
}

func (o *Orchestrator) cachedTeams() ([]TeamInfo, error) {
	slugs, err := o.cache.Teams()
	if err != nil {
		return nil, err
	}
	teams := make([]TeamInfo, 0, len(slugs))
	for _, slug := range slugs {
		teams = append(teams, TeamInfo{Name: slug, Slug: slug})
	}
	return teams, nil
}

// CachedReport returns the cached team report path, whatever its age.
func (o *Orchestrator) CachedReport(teamName string) (string, bool) {
	slug := team.Slug(teamName)
	path := o.cache.PathFor(slug, "", slug+".pdf")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// CachedImage returns the cached path of a players-folder file.
func (o *Orchestrator) CachedImage(teamName, fileName string) (string, bool) {
	slug := team.Slug(teamName)
	entries, err := o.cache.ListValidEntries(slug, cache.CategoryPlayers)
	if err != nil {
		return "", false
	}
	path, ok := entries[strings.ToLower(fileName)]
	return path, ok
}

// Status reports the local state of a team.
func (o *Orchestrator) Status(ctx context.Context, teamName string) Status {
	slug := team.Slug(teamName)
	st := Status{
		Team:           teamName,
		TeamSlug:       slug,
		StoreAvailable: o.store.IsAvailable(),
		Synced:         o.Synced(teamName),
		CacheDir:       o.cache.Dir(),
	}

	if path, ok := o.CachedReport(teamName); ok {
		st.ReportCached = true
		st.ReportPath = path
	}

	if entries, err := o.cache.ListValidEntries(slug, cache.CategoryPlayers); err == nil {
		for name := range entries {
			if kind, ok := storage.KindOf(name); ok && kind == storage.KindImage {
				st.ImageCount++
			}
		}
	}

	last, err := o.journal.Last(ctx, slug)
	if err != nil {
		o.logger.Warn("Failed to read sync journal", zap.String("team_slug", slug), zap.Error(err))
	}
	st.LastRun = last
	return st
}
