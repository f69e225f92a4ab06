package carnet

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"coopuertos-backend/internal/models"
)

// SessionStore persists progress-record snapshots.
type SessionStore interface {
	UpdateSession(s *models.CarnetSession) error
}

// Tracker is the single writer for one session's progress record. All
// mutation goes through its mutex; once the session reaches a terminal
// state every further mutation is a no-op. Each mutation persists a
// snapshot so pollers survive a process restart.
type Tracker struct {
	mu      sync.Mutex
	store   SessionStore
	session *models.CarnetSession
}

func NewTracker(store SessionStore, session *models.CarnetSession) *Tracker {
	return &Tracker{store: store, session: session}
}

// Start moves pending -> running and fixes the total.
func (t *Tracker) Start(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session.Status.IsTerminal() {
		return
	}

	t.session.Status = models.SessionRunning
	t.session.Total = total
	t.session.StartedAt = sql.NullTime{Time: time.Now(), Valid: true}
	t.appendLog(models.LogInfo, "", "generación iniciada")
	t.persist()
}

// ItemSuccess records one rendered card.
func (t *Tracker) ItemSuccess(conductorID, message string) {
	t.itemDone(conductorID, message, true)
}

// ItemError records one failed card; the batch continues.
func (t *Tracker) ItemError(conductorID, message string) {
	t.itemDone(conductorID, message, false)
}

func (t *Tracker) itemDone(conductorID, message string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session.Status.IsTerminal() {
		return
	}
	if t.session.Processed >= t.session.Total {
		return
	}

	t.session.Processed++
	if ok {
		t.session.SuccessCount++
		t.appendLog(models.LogInfo, conductorID, message)
	} else {
		t.session.ErrorCount++
		t.appendLog(models.LogError, conductorID, message)
	}
	t.persist()
}

// Warn appends a log entry without touching the counters.
func (t *Tracker) Warn(conductorID, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session.Status.IsTerminal() {
		return
	}

	t.appendLog(models.LogWarning, conductorID, message)
	t.persist()
}

// Complete records the archive and closes the session as completed or
// completed_with_errors depending on the error count.
func (t *Tracker) Complete(archivePath string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session.Status.IsTerminal() {
		return
	}

	if t.session.ErrorCount == 0 {
		t.session.Status = models.SessionCompleted
	} else {
		t.session.Status = models.SessionCompletedWithErrors
	}
	t.session.ArchivePath = sql.NullString{String: archivePath, Valid: true}
	t.session.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}
	t.appendLog(models.LogInfo, "", "generación finalizada")
	t.persist()
}

// Fail closes the session as failed with a human-readable reason.
func (t *Tracker) Fail(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session.Status.IsTerminal() {
		return
	}

	t.session.Status = models.SessionFailed
	t.session.ErrorMessage = sql.NullString{String: message, Valid: true}
	t.session.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}
	t.appendLog(models.LogError, "", message)
	t.persist()
}

// Snapshot returns a copy of the current record.
func (t *Tracker) Snapshot() models.CarnetSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copySession()
}

// appendLog keeps at most MaxLogEntries entries, discarding the oldest.
// Callers hold the mutex.
func (t *Tracker) appendLog(level, conductorID, message string) {
	t.session.LogEntries = append(t.session.LogEntries, models.LogEntry{
		Timestamp:   time.Now(),
		Level:       level,
		Message:     message,
		ConductorID: conductorID,
	})
	if n := len(t.session.LogEntries); n > models.MaxLogEntries {
		t.session.LogEntries = t.session.LogEntries[n-models.MaxLogEntries:]
	}
}

func (t *Tracker) persist() {
	snapshot := t.copySession()
	if err := t.store.UpdateSession(&snapshot); err != nil {
		log.Printf("Warning: failed to persist session %s: %v", t.session.ID, err)
	}
}

func (t *Tracker) copySession() models.CarnetSession {
	s := *t.session
	s.LogEntries = make([]models.LogEntry, len(t.session.LogEntries))
	copy(s.LogEntries, t.session.LogEntries)
	return s
}
