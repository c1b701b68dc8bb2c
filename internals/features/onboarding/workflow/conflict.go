package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConflictDetector answers whether a candidate session window would
// double-book a trainer.
type ConflictDetector struct {
	sessions SessionRepo
}

func NewConflictDetector(sessions SessionRepo) *ConflictDetector {
	return &ConflictDetector{sessions: sessions}
}

// HasConflict reports an overlap with any active session of the trainer on
// the same date. Windows are half-open: existing.start < candidate.end AND
// existing.end > candidate.start, so back-to-back sessions touching at an
// endpoint do not conflict. excludeID skips the session being rescheduled.
func (d *ConflictDetector) HasConflict(ctx context.Context, trainerID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (bool, error) {
	return d.sessions.HasOverlap(ctx, trainerID, date, startTime, endTime, excludeID)
}

// Check wraps HasConflict into the hard business rule: overlap fails with
// ErrSessionOverlap instead of silently adjusting the schedule.
func (d *ConflictDetector) Check(ctx context.Context, trainerID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) error {
	conflict, err := d.HasConflict(ctx, trainerID, date, startTime, endTime, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrSessionOverlap
	}
	return nil
}

// Overlaps is the pure interval predicate used by in-memory
// implementations and kept here so SQL and Go agree on the rule.
func Overlaps(existingStart, existingEnd, candidateStart, candidateEnd string) bool {
	return existingStart < candidateEnd && existingEnd > candidateStart
}
