package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// SyncRun is one recorded synchronization pass.
type SyncRun struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TeamSlug   string    `gorm:"size:191;index" json:"team_slug"`
	Team       string    `gorm:"size:255" json:"team"`
	State      string    `gorm:"size:32" json:"state"`
	Success    bool      `json:"success"`
	Forced     bool      `json:"forced"`
	Downloaded int       `json:"downloaded"`
	Cached     int       `json:"cached"`
	Failed     int       `json:"failed"`
	Warnings   string    `gorm:"type:text" json:"warnings,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
}

// TableName pins the table name.
func (SyncRun) TableName() string {
	return "sync_runs"
}

// Journal persists sync runs. A journal without a database drops every write
// and reports no history.
type Journal struct {
	db *gorm.DB
}

// NewJournal wraps db. A nil db yields a no-op journal.
func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// Migrate creates or updates the journal table.
func (j *Journal) Migrate() error {
	if j.db == nil {
		return nil
	}
	return j.db.AutoMigrate(&SyncRun{})
}

// Enabled reports whether runs are persisted.
func (j *Journal) Enabled() bool {
	return j.db != nil
}

// Record stores run.
func (j *Journal) Record(ctx context.Context, run *SyncRun) error {
	if j.db == nil {
		return nil
	}
	return j.db.WithContext(ctx).Create(run).Error
}

// Last returns the latest run of a team, or nil when there is none.
func (j *Journal) Last(ctx context.Context, teamSlug string) (*SyncRun, error) {
	if j.db == nil {
		return nil, nil
	}

	var run SyncRun
	err := j.db.WithContext(ctx).
		Where("team_slug = ?", teamSlug).
		Order("started_at DESC").
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
