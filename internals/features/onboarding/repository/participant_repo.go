package repository

import (
	"context"
	"errors"

	clientmodel "onboardku_backend/internals/features/clients/model"
	sessmodel "onboardku_backend/internals/features/onboarding/sessions/model"
	"onboardku_backend/internals/features/onboarding/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* ===== attendees ===== */

type attendeeRepo struct{ s *Store }

func (r attendeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*sessmodel.SessionAttendeeModel, error) {
	var row sessmodel.SessionAttendeeModel
	if err := r.s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err, workflow.ErrAttendeeNotFound)
	}
	return &row, nil
}

func (r attendeeRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]sessmodel.SessionAttendeeModel, error) {
	var rows []sessmodel.SessionAttendeeModel
	err := r.s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&rows).Error
	return rows, err
}

// BulkCreate tolerates duplicate contact IDs in the invite list: the
// (session_id, client_contact_id) unique index absorbs them.
func (r attendeeRepo) BulkCreate(ctx context.Context, rows []sessmodel.SessionAttendeeModel) error {
	if len(rows) == 0 {
		return nil
	}
	return r.s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (r attendeeRepo) Save(ctx context.Context, a *sessmodel.SessionAttendeeModel) error {
	return r.s.db.WithContext(ctx).Save(a).Error
}

func (r attendeeRepo) CancelPendingBySessions(ctx context.Context, sessionIDs []uuid.UUID) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	return r.s.db.WithContext(ctx).
		Model(&sessmodel.SessionAttendeeModel{}).
		Where("session_id IN ? AND attendance_status IN ?",
			sessionIDs,
			[]string{workflow.AttendanceStatusInvited, workflow.AttendanceStatusConfirmed}).
		Update("attendance_status", workflow.AttendanceStatusCancelled).Error
}

/* ===== students ===== */

type studentRepo struct{ s *Store }

func (r studentRepo) BulkCreate(ctx context.Context, rows []sessmodel.SessionStudentModel) error {
	if len(rows) == 0 {
		return nil
	}
	return r.s.db.WithContext(ctx).Create(&rows).Error
}

/* ===== clients ===== */

type clientRepo struct{ s *Store }

func (r clientRepo) CompanyName(ctx context.Context, clientID uuid.UUID) (string, error) {
	var name string
	err := r.s.db.WithContext(ctx).
		Model(&clientmodel.ClientModel{}).
		Where("id = ?", clientID).
		Select("company_name").
		Scan(&name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && name == "") {
		return "client", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}
