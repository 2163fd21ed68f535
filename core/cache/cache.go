package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// CategoryPlayers is the directory holding player images of a team.
const CategoryPlayers = "jugadores"

const tmpSuffix = ".tmp"

// ErrCorrupted is returned by ListValidEntries after a directory was purged
// for holding non-lowercase names.
var ErrCorrupted = errors.New("cache directory corrupted")

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scouting_cache_hits_total",
		Help: "Cached files found valid.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scouting_cache_misses_total",
		Help: "Cached files missing or expired.",
	})
	cacheSelfHealTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scouting_cache_self_heal_total",
		Help: "Category directories purged for violating the lowercase naming rule.",
	})
)

// Entry describes one file of the cache.
type Entry struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Expired  bool      `json:"expired"`
}

// Cache is a directory tree of materialized remote files: <dir>/<team>/[category/]<file>.
// It is shared between processes without locking; writes are atomic renames.
type Cache struct {
	dir    string
	expiry time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// New creates the cache root if needed.
func New(cfg Config, logger *zap.Logger) (*Cache, error) {
	hours := cfg.ExpiryHours
	if hours <= 0 {
		hours = 24
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", cfg.Dir, err)
	}
	return &Cache{
		dir:    cfg.Dir,
		expiry: time.Duration(hours) * time.Hour,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

// Expiry returns the expiry window.
func (c *Cache) Expiry() time.Duration {
	return c.expiry
}

// PathFor returns the location of filename. The file name is always
// lowercased; an empty category addresses the team directory itself.
func (c *Cache) PathFor(teamSlug, category, filename string) string {
	name := strings.ToLower(filepath.Base(filename))
	if category == "" {
		return filepath.Join(c.dir, teamSlug, name)
	}
	return filepath.Join(c.dir, teamSlug, category, name)
}

// IsValid reports whether path exists and is younger than the expiry window.
func (c *Cache) IsValid(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		cacheMissesTotal.Inc()
		return false
	}
	if c.now().Sub(info.ModTime()) >= c.expiry {
		cacheMissesTotal.Inc()
		return false
	}
	cacheHitsTotal.Inc()
	return true
}

// Write stores data at path, creating parent directories. The content is
// written to a unique temp file first and renamed into place.
func (c *Cache) Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	tmpPath := path + "." + uuid.NewString() + tmpSuffix
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// ListValidEntries maps file name to path for every file of a category
// directory, stale ones included. If any file name is not lowercase the whole
// directory is deleted and an empty mapping is returned with ErrCorrupted.
func (c *Cache) ListValidEntries(teamSlug, category string) (map[string]string, error) {
	dir := filepath.Join(c.dir, teamSlug, category)
	result := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return result, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), tmpSuffix) {
			continue
		}
		name := entry.Name()
		if name != strings.ToLower(name) {
			c.logger.Warn("Cache directory has non-lowercase entries, purging",
				zap.String("dir", dir),
				zap.String("offender", name))
			cacheSelfHealTotal.Inc()
			if err := resetDir(dir); err != nil {
				return map[string]string{}, err
			}
			return map[string]string{}, fmt.Errorf("%s: %w", dir, ErrCorrupted)
		}
		result[name] = filepath.Join(dir, name)
	}

	return result, nil
}

// Purge deletes every cached category of a team.
func (c *Cache) Purge(teamSlug string) error {
	dir := filepath.Join(c.dir, teamSlug)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to purge %s: %w", dir, err)
	}
	return nil
}

// Teams lists the team directories of the cache, sorted.
func (c *Cache) Teams() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.dir, err)
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			out = append(out, entry.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Stat describes the cached files of a team category.
func (c *Cache) Stat(teamSlug, category string) ([]Entry, error) {
	dir := filepath.Join(c.dir, teamSlug, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var out []Entry
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), tmpSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{
			Name:     entry.Name(),
			Path:     filepath.Join(dir, entry.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
			Expired:  c.now().Sub(info.ModTime()) >= c.expiry,
		})
	}
	return out, nil
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to purge %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to recreate %s: %w", dir, err)
	}
	return nil
}
