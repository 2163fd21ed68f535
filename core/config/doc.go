// Package config provides configuration management for the scouting hub.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (godotenv). Defaults come from the `default` struct tags of each
// section, registered recursively so AutomaticEnv can resolve every key.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Team: the home team display name
//   - Storage: remote asset store endpoint, credentials, bucket and root folder
//   - Cache: local cache directory and expiry window
//   - Roster: spreadsheet path
//   - Probe: image URL probe timeout and result TTL
//   - Log: logging level and format
//   - Database: sync journal database
//
// Environment keys are the upper-cased dotted keys with "_": STORAGE_BUCKET,
// CACHE_EXPIRY_HOURS, TEAM_NAME.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Cache.Dir)
package config
