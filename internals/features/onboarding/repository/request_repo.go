package repository

import (
	"context"
	"fmt"

	reqmodel "onboardku_backend/internals/features/onboarding/requests/model"
	"onboardku_backend/internals/features/onboarding/workflow"

	"github.com/google/uuid"
)

type requestRepo struct{ s *Store }

func (r requestRepo) FindByID(ctx context.Context, id uuid.UUID) (*reqmodel.OnboardingRequestModel, error) {
	var row reqmodel.OnboardingRequestModel
	if err := r.s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err, workflow.ErrRequestNotFound)
	}
	return &row, nil
}

func (r requestRepo) Create(ctx context.Context, req *reqmodel.OnboardingRequestModel) error {
	if err := r.s.db.WithContext(ctx).Create(req).Error; err != nil {
		if isUniqueViolation(err, "") {
			// Two creators raced on the same generated code. The
			// orchestrator retries with a fresh sequence.
			return workflow.ErrCodeCollision
		}
		return err
	}
	return nil
}

func (r requestRepo) Save(ctx context.Context, req *reqmodel.OnboardingRequestModel) error {
	return r.s.db.WithContext(ctx).Save(req).Error
}

func (r requestRepo) MaxCodeForYear(ctx context.Context, year int) (string, error) {
	var code string
	err := r.s.db.WithContext(ctx).
		Model(&reqmodel.OnboardingRequestModel{}).
		Where("request_code LIKE ?", fmt.Sprintf("REQ-%d-%%", year)).
		Select("COALESCE(MAX(request_code), '')").
		Scan(&code).Error
	if err != nil {
		return "", err
	}
	return code, nil
}
