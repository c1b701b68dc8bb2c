package repository

import (
	"context"
	"errors"

	asgmodel "onboardku_backend/internals/features/onboarding/assignments/model"
	"onboardku_backend/internals/features/onboarding/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type assignmentRepo struct{ s *Store }

// FindByID locks the row FOR UPDATE inside a transaction so concurrent
// accept/reject/start calls serialize on the assignment.
func (r assignmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*asgmodel.TrainingAssignmentModel, error) {
	q := r.s.db.WithContext(ctx)
	if r.s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row asgmodel.TrainingAssignmentModel
	if err := q.First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err, workflow.ErrAssignmentNotFound)
	}
	return &row, nil
}

func (r assignmentRepo) Create(ctx context.Context, a *asgmodel.TrainingAssignmentModel) error {
	return r.s.db.WithContext(ctx).Create(a).Error
}

func (r assignmentRepo) Save(ctx context.Context, a *asgmodel.TrainingAssignmentModel) error {
	return r.s.db.WithContext(ctx).Save(a).Error
}

func (r assignmentRepo) FindActiveByRequest(ctx context.Context, requestID uuid.UUID) (*asgmodel.TrainingAssignmentModel, error) {
	var row asgmodel.TrainingAssignmentModel
	err := r.s.db.WithContext(ctx).
		Where("onboarding_request_id = ? AND status NOT IN ?",
			requestID,
			[]string{workflow.AssignmentStatusCompleted, workflow.AssignmentStatusRejected}).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
