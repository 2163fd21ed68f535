package cache

// Config holds configuration for the on-disk asset cache.
type Config struct {
	// Dir is the cache root; one sub-directory per team slug.
	Dir string `mapstructure:"dir" default:"./data/cache/drive"`
	// ExpiryHours is the age after which a cached file is stale.
	ExpiryHours int `mapstructure:"expiry_hours" default:"24"`
}
