package storage

// Config holds configuration for the remote storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication (secrets source).
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication (secrets source).
	SecretKey string `mapstructure:"secret_key" default:""`
	// CredentialsFile is the local JSON credentials file used when no secrets are set.
	CredentialsFile string `mapstructure:"credentials_file" default:"credentials/storage_credentials.json"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding the scouting folder tree.
	Bucket string `mapstructure:"bucket" default:"scouting"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// RootFolder is the folder id (key prefix) that contains one folder per team.
	RootFolder string `mapstructure:"root_folder" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// DownloadTimeoutSeconds bounds a single full-file download.
	DownloadTimeoutSeconds int `mapstructure:"download_timeout_seconds" default:"120"`
}
