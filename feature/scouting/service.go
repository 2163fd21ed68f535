package scouting

import (
	"context"
	"fmt"
	"strings"

	"scouting-hub/core/cache"
	"scouting-hub/core/reconcile"
	"scouting-hub/core/storage"
	"scouting-hub/core/team"
	"scouting-hub/feature/scouting/drivesync"

	"go.uber.org/zap"
)

// Service serves reconciled scouting data. It replaces the process-wide
// singletons of a dashboard with one explicit value.
type Service struct {
	sync        *drivesync.Orchestrator
	cache       *cache.Cache
	defaultTeam string
	logger      *zap.Logger
}

// NewService creates a new scouting service. defaultTeam is used whenever a
// caller names no team.
func NewService(o *drivesync.Orchestrator, c *cache.Cache, defaultTeam string, logger *zap.Logger) *Service {
	return &Service{
		sync:        o,
		cache:       c,
		defaultTeam: defaultTeam,
		logger:      logger,
	}
}

// DefaultTeam returns the configured team name.
func (s *Service) DefaultTeam() string {
	return s.defaultTeam
}

// Teams lists the known teams.
func (s *Service) Teams(ctx context.Context) ([]drivesync.TeamInfo, error) {
	return s.sync.Teams(ctx)
}

// Players returns the reconciled players of a team. The first request for a
// team triggers a sync pass; force purges the cache and downloads again.
func (s *Service) Players(ctx context.Context, teamName string, scope drivesync.Scope, force bool) []reconcile.Player {
	teamName = s.resolve(ctx, teamName)
	if force {
		s.sync.ForceSync(ctx, teamName)
	} else {
		s.sync.EnsureSynced(ctx, teamName)
	}
	return s.sync.Players(ctx, teamName, scope)
}

// Player returns one player of the team scope by slug or image file name.
func (s *Service) Player(ctx context.Context, teamName, slug string) (reconcile.Player, error) {
	want := strings.ToLower(slug)
	for _, p := range s.Players(ctx, teamName, drivesync.ScopeTeam, false) {
		if p.Slug == want || strings.EqualFold(p.ImageFile, slug) {
			return p, nil
		}
	}
	return reconcile.Player{}, fmt.Errorf("%s: %w", slug, ErrPlayerNotFound)
}

// Report returns the cached team report path.
func (s *Service) Report(ctx context.Context, teamName string) (string, error) {
	teamName = s.resolve(ctx, teamName)
	s.sync.EnsureSynced(ctx, teamName)

	path, ok := s.sync.CachedReport(teamName)
	if !ok {
		return "", fmt.Errorf("%s: %w", teamName, ErrReportNotFound)
	}
	return path, nil
}

// PlayerImage returns the cached path of a players-folder image.
func (s *Service) PlayerImage(ctx context.Context, teamName, fileName string) (string, error) {
	if kind, ok := storage.KindOf(fileName); !ok || kind != storage.KindImage {
		return "", fmt.Errorf("%s: %w", fileName, ErrImageNotFound)
	}

	teamName = s.resolve(ctx, teamName)
	s.sync.EnsureSynced(ctx, teamName)

	path, ok := s.sync.CachedImage(teamName, fileName)
	if !ok {
		return "", fmt.Errorf("%s: %w", fileName, ErrImageNotFound)
	}
	return path, nil
}

// Sync runs a pass for the team. force purges the team cache first.
func (s *Service) Sync(ctx context.Context, teamName string, force bool) *drivesync.Result {
	teamName = s.resolve(ctx, teamName)
	if force {
		return s.sync.ForceSync(ctx, teamName)
	}
	return s.sync.Sync(ctx, teamName, false)
}

// Purge deletes the cached files of a team.
func (s *Service) Purge(ctx context.Context, teamName string) error {
	teamName = s.resolve(ctx, teamName)
	slug := team.Slug(teamName)
	if err := s.cache.Purge(slug); err != nil {
		return err
	}
	s.logger.Info("Team cache purged", zap.String("team", teamName), zap.String("team_slug", slug))
	return nil
}

// Status reports what is cached for the team.
func (s *Service) Status(ctx context.Context, teamName string) drivesync.Status {
	return s.sync.Status(ctx, s.resolve(ctx, teamName))
}

// resolve maps "" and "default" to the default team and a slug to the name
// of the matching remote folder. Unknown values are returned unchanged.
func (s *Service) resolve(ctx context.Context, teamName string) string {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" || strings.EqualFold(teamName, "default") {
		return s.defaultTeam
	}
	slug := team.Slug(teamName)
	if slug == team.Slug(s.defaultTeam) {
		return s.defaultTeam
	}
	if slug != teamName {
		return teamName
	}

	teams, err := s.sync.Teams(ctx)
	if err != nil {
		return teamName
	}
	for _, t := range teams {
		if t.Slug == slug {
			return t.Name
		}
	}
	return teamName
}
