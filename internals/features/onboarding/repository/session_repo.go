package repository

import (
	"context"
	"time"

	sessmodel "onboardku_backend/internals/features/onboarding/sessions/model"
	"onboardku_backend/internals/features/onboarding/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepo struct{ s *Store }

func (r sessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*sessmodel.TrainingSessionModel, error) {
	var row sessmodel.TrainingSessionModel
	if err := r.s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err, workflow.ErrSessionNotFound)
	}
	return &row, nil
}

func (r sessionRepo) Create(ctx context.Context, s *sessmodel.TrainingSessionModel) error {
	return r.s.db.WithContext(ctx).Create(s).Error
}

func (r sessionRepo) Save(ctx context.Context, s *sessmodel.TrainingSessionModel) error {
	return r.s.db.WithContext(ctx).Save(s).Error
}

// HasOverlap checks the trainer's calendar across every assignment. The
// window is half-open, so back-to-back sessions never collide; cancelled
// and rescheduled sessions release the slot.
func (r sessionRepo) HasOverlap(ctx context.Context, trainerID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (bool, error) {
	q := r.s.db.WithContext(ctx).
		Model(&sessmodel.TrainingSessionModel{}).
		Joins("JOIN training_assignments ON training_assignments.id = training_sessions.assignment_id").
		Where("training_assignments.deleted_at IS NULL").
		Where("training_assignments.trainer_id = ?", trainerID).
		Where("training_sessions.scheduled_date = ?", date.Format("2006-01-02")).
		Where("training_sessions.status NOT IN ?",
			[]string{workflow.SessionStatusCancelled, workflow.SessionStatusRescheduled}).
		Where("training_sessions.scheduled_start_time < ? AND training_sessions.scheduled_end_time > ?",
			endTime, startTime)
	if excludeID != nil {
		q = q.Where("training_sessions.id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r sessionRepo) CountByStage(ctx context.Context, assignmentID, stageID uuid.UUID) (int64, int64, error) {
	// Session() forks the shared conditions so the two counts stay independent.
	base := r.s.db.WithContext(ctx).
		Model(&sessmodel.TrainingSessionModel{}).
		Where("assignment_id = ? AND stage_id = ?", assignmentID, stageID)

	var active int64
	if err := base.Session(&gorm.Session{}).
		Where("status NOT IN ?", []string{workflow.SessionStatusCancelled, workflow.SessionStatusRescheduled}).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}

	var completed int64
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", workflow.SessionStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return active, completed, nil
}

func (r sessionRepo) ListScheduledByRequest(ctx context.Context, requestID uuid.UUID) ([]sessmodel.TrainingSessionModel, error) {
	var rows []sessmodel.TrainingSessionModel
	err := r.s.db.WithContext(ctx).
		Joins("JOIN training_assignments ON training_assignments.id = training_sessions.assignment_id").
		Where("training_assignments.deleted_at IS NULL").
		Where("training_assignments.onboarding_request_id = ?", requestID).
		Where("training_sessions.status = ?", workflow.SessionStatusScheduled).
		Find(&rows).Error
	return rows, err
}
