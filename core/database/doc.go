// Package database handles the optional database connection and the sync journal.
//
// It wraps GORM and configures either SQLite (default, a local file) or MySQL from
// the application configuration.
//
// # Journal
//
// Every synchronization pass is recorded as a SyncRun row so the last sync time and
// outcome survive restarts. Without a database the Journal is a no-op and the
// dashboard keeps working.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Journal disabled", zap.Error(err))
//	}
//	journal := database.NewJournal(db)
package database
