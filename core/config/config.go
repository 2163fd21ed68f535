package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"scouting-hub/core/cache"
	"scouting-hub/core/database"
	"scouting-hub/core/logger"
	"scouting-hub/core/probe"
	"scouting-hub/core/roster"
	"scouting-hub/core/server"
	"scouting-hub/core/storage"
	"scouting-hub/core/team"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Team is the club whose roster is shown by default.
	Team team.Config `mapstructure:"team"`
	// Storage holds configuration for the remote asset store (S3 compatible).
	Storage storage.Config `mapstructure:"storage"`
	// Cache holds configuration for the local asset cache.
	Cache cache.Config `mapstructure:"cache"`
	// Roster holds configuration for the player spreadsheet.
	Roster roster.Config `mapstructure:"roster"`
	// Probe holds configuration for external image URL validation.
	Probe probe.Config `mapstructure:"probe"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the sync journal database.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig reads <path>/.env (when present) over the process environment
// and builds the configuration. Keys are SECTION_KEY, e.g. CACHE_EXPIRY_HOURS.
func LoadConfig(path string) (*Config, error) {
	envPath := filepath.Join(path, ".env")
	// A missing .env is normal outside development
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// cache.expiry_hours <- CACHE_EXPIRY_HOURS
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the sync pipeline cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Team.Name) == "" {
		errs = append(errs, errors.New("team.name is empty"))
	}
	if strings.TrimSpace(c.Cache.Dir) == "" {
		errs = append(errs, errors.New("cache.dir is empty"))
	}
	if c.Cache.ExpiryHours <= 0 {
		errs = append(errs, fmt.Errorf("cache.expiry_hours must be positive, got %d", c.Cache.ExpiryHours))
	}
	switch strings.ToLower(filepath.Ext(c.Roster.Path)) {
	case ".xlsx", ".xlsm", ".csv":
	default:
		errs = append(errs, fmt.Errorf("roster.path %q: expected .xlsx, .xlsm or .csv", c.Roster.Path))
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Errorf("database.driver %q: expected sqlite or mysql", c.Database.Driver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
