package probe

// Config holds configuration for external image URL validation.
type Config struct {
	// TimeoutSeconds bounds one probe request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"4"`
	// TTLMinutes is how long a probe result is remembered per URL.
	TTLMinutes int `mapstructure:"ttl_minutes" default:"60"`
	// MaxEntries caps the number of remembered URLs.
	MaxEntries int `mapstructure:"max_entries" default:"512"`
}
