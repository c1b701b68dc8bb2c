package workflow

import (
	"context"
	"math"

	sessmodel "onboardku_backend/internals/features/onboarding/sessions/model"
	stagemodel "onboardku_backend/internals/features/onboarding/stages/model"

	"github.com/google/uuid"
)

// ProgressAggregator rolls per-session completion up into stage and
// assignment percentages and drives the upward completion cascade
// (session → stage → assignment → request).
type ProgressAggregator struct {
	clock Clock
}

func NewProgressAggregator(clock Clock) *ProgressAggregator {
	return &ProgressAggregator{clock: clock}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// StageProgressPercent is completed/active * 100 for one stage of one
// assignment, two decimals. Zero active sessions yield 0.0.
func (p *ProgressAggregator) StageProgressPercent(ctx context.Context, store Store, assignmentID, stageID uuid.UUID) (float64, error) {
	active, completed, err := store.Sessions().CountByStage(ctx, assignmentID, stageID)
	if err != nil {
		return 0, err
	}
	if active == 0 {
		return 0.0, nil
	}
	return round2(float64(completed) / float64(active) * 100), nil
}

// AssignmentOverallProgress is the arithmetic mean of the assignment's
// stage-progress percentages; 0.0 when the assignment has no rows.
func (p *ProgressAggregator) AssignmentOverallProgress(ctx context.Context, store Store, assignmentID uuid.UUID) (float64, error) {
	rows, err := store.StageProgress().ListByAssignment(ctx, assignmentID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0.0, nil
	}
	var sum float64
	for _, row := range rows {
		sum += row.ProgressPercentage
	}
	return round2(sum / float64(len(rows))), nil
}

// CascadeOnSessionComplete recomputes the owning stage's percentage, marks
// the stage completed when its last active session completes, then checks
// whether the whole assignment (and its request) is done. Must run inside
// the same transaction as the session mutation.
func (p *ProgressAggregator) CascadeOnSessionComplete(ctx context.Context, tx Store, session *sessmodel.TrainingSessionModel) error {
	sp, err := tx.StageProgress().FindByAssignmentAndStage(ctx, session.AssignmentID, session.StageID)
	if err != nil {
		return err
	}
	if sp == nil {
		return nil
	}

	active, completed, err := tx.Sessions().CountByStage(ctx, session.AssignmentID, session.StageID)
	if err != nil {
		return err
	}
	if active == 0 {
		sp.ProgressPercentage = 0.0
	} else {
		sp.ProgressPercentage = round2(float64(completed) / float64(active) * 100)
	}

	if active > 0 && completed >= active && !IsTerminalStageStatus(sp.Status) {
		now := p.clock.Now()
		sp.Status = StageStatusCompleted
		sp.ProgressPercentage = 100.00
		sp.CompletedAt = &now
	}
	if err := tx.StageProgress().Save(ctx, sp); err != nil {
		return err
	}

	return p.completeAssignmentIfDone(ctx, tx, session.AssignmentID)
}

// CascadeOnStageSkip applies the same upward checks after an explicit skip,
// without a session completion event.
func (p *ProgressAggregator) CascadeOnStageSkip(ctx context.Context, tx Store, sp *stagemodel.StageProgressModel) error {
	return p.completeAssignmentIfDone(ctx, tx, sp.AssignmentID)
}

// completeAssignmentIfDone transitions the assignment (and then the
// request) to completed once every stage row is terminal. Terminal cascade
// targets are never regressed: anything not in_progress is left alone.
func (p *ProgressAggregator) completeAssignmentIfDone(ctx context.Context, tx Store, assignmentID uuid.UUID) error {
	done, err := tx.StageProgress().AllTerminal(ctx, assignmentID)
	if err != nil {
		return err
	}
	if !done {
		return nil
	}

	assignment, err := tx.Assignments().FindByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if assignment.Status != AssignmentStatusInProgress {
		return nil
	}

	now := p.clock.Now()
	assignment.Status = AssignmentStatusCompleted
	assignment.CompletedAt = &now
	if err := tx.Assignments().Save(ctx, assignment); err != nil {
		return err
	}

	request, err := tx.Requests().FindByID(ctx, assignment.OnboardingRequestID)
	if err != nil {
		return err
	}
	if request.Status != RequestStatusInProgress {
		return nil
	}
	endDate := now
	request.Status = RequestStatusCompleted
	request.ActualEndDate = &endDate
	return tx.Requests().Save(ctx, request)
}
