package carnet

import (
	"time"

	"coopuertos-backend/internal/models"
)

// Elapsed is how long the session has been (or was) running. Derived on
// read, never stored.
func Elapsed(s *models.CarnetSession, now time.Time) time.Duration {
	if !s.StartedAt.Valid {
		return 0
	}
	end := now
	if s.CompletedAt.Valid {
		end = s.CompletedAt.Time
	}
	if end.Before(s.StartedAt.Time) {
		return 0
	}
	return end.Sub(s.StartedAt.Time)
}

// EstimatedRemaining extrapolates from the per-item average so far; zero
// when nothing has been processed yet or the session is done.
func EstimatedRemaining(s *models.CarnetSession, now time.Time) time.Duration {
	if s.Processed <= 0 || s.Status.IsTerminal() {
		return 0
	}
	elapsed := Elapsed(s, now)
	perItem := elapsed / time.Duration(s.Processed)
	return perItem * time.Duration(s.Total-s.Processed)
}
