package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionPending             SessionStatus = "pending"
	SessionRunning             SessionStatus = "running"
	SessionCompleted           SessionStatus = "completed"
	SessionCompletedWithErrors SessionStatus = "completed_with_errors"
	SessionFailed              SessionStatus = "failed"
)

// IsTerminal reports whether no further mutation of the session is allowed.
func (s SessionStatus) IsTerminal() bool {
	switch s {
	case SessionCompleted, SessionCompletedWithErrors, SessionFailed:
		return true
	default:
		return false
	}
}

// MaxLogEntries caps the per-session log; oldest entries are discarded first.
const MaxLogEntries = 500

type LogEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Level       string    `json:"level"`
	Message     string    `json:"message"`
	ConductorID string    `json:"conductor_id,omitempty"`
}

const (
	LogInfo    = "info"
	LogWarning = "warning"
	LogError   = "error"
)

// CarnetSession is the durable progress record for one batch-generation run.
type CarnetSession struct {
	ID           uuid.UUID
	Status       SessionStatus
	Total        int
	Processed    int
	SuccessCount int
	ErrorCount   int
	LogEntries   []LogEntry
	ArchivePath  sql.NullString
	ErrorMessage sql.NullString
	StartedAt    sql.NullTime
	CompletedAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
