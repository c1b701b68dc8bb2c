package repository

import (
	"context"
	"errors"

	stagemodel "onboardku_backend/internals/features/onboarding/stages/model"
	"onboardku_backend/internals/features/onboarding/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stageRepo struct{ s *Store }

func (r stageRepo) ListActiveBySystem(ctx context.Context, systemID uuid.UUID) ([]stagemodel.OnboardingStageModel, error) {
	var rows []stagemodel.OnboardingStageModel
	err := r.s.db.WithContext(ctx).
		Where("system_id = ? AND is_active = ?", systemID, true).
		Order("sequence_order ASC").
		Find(&rows).Error
	return rows, err
}

type stageProgressRepo struct{ s *Store }

func (r stageProgressRepo) FindByID(ctx context.Context, id uuid.UUID) (*stagemodel.StageProgressModel, error) {
	var row stagemodel.StageProgressModel
	if err := r.s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err, workflow.ErrStageNotFound)
	}
	return &row, nil
}

func (r stageProgressRepo) FindByAssignmentAndStage(ctx context.Context, assignmentID, stageID uuid.UUID) (*stagemodel.StageProgressModel, error) {
	var row stagemodel.StageProgressModel
	err := r.s.db.WithContext(ctx).
		Where("assignment_id = ? AND stage_id = ?", assignmentID, stageID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r stageProgressRepo) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]stagemodel.StageProgressModel, error) {
	var rows []stagemodel.StageProgressModel
	err := r.s.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Find(&rows).Error
	return rows, err
}

func (r stageProgressRepo) BulkCreate(ctx context.Context, rows []stagemodel.StageProgressModel) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		if isUniqueViolation(err, "uq_stage_progress_assignment_stage") {
			return workflow.ErrConcurrentModification
		}
		return err
	}
	return nil
}

func (r stageProgressRepo) Save(ctx context.Context, sp *stagemodel.StageProgressModel) error {
	return r.s.db.WithContext(ctx).Save(sp).Error
}

func (r stageProgressRepo) AllTerminal(ctx context.Context, assignmentID uuid.UUID) (bool, error) {
	var open int64
	err := r.s.db.WithContext(ctx).
		Model(&stagemodel.StageProgressModel{}).
		Where("assignment_id = ? AND status NOT IN ?",
			assignmentID,
			[]string{workflow.StageStatusCompleted, workflow.StageStatusSkipped}).
		Count(&open).Error
	if err != nil {
		return false, err
	}
	return open == 0, nil
}
