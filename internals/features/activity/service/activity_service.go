package service

import (
	"context"

	actmodel "onboardku_backend/internals/features/activity/model"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityService appends to the audit trail. It satisfies the workflow
// ActivityRecorder port.
type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

func (s *ActivityService) Record(ctx context.Context, actorID uuid.UUID, action, description string, metadata map[string]any) error {
	row := actmodel.UserActivityLogModel{
		Action: action,
	}
	if actorID != uuid.Nil {
		id := actorID
		row.UserID = &id
	}
	if description != "" {
		row.Description = &description
	}
	if len(metadata) > 0 {
		raw, err := sonic.Marshal(metadata)
		if err != nil {
			return err
		}
		row.Metadata = datatypes.JSON(raw)
	}
	return s.DB.WithContext(ctx).Create(&row).Error
}

func (s *ActivityService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]actmodel.UserActivityLogModel, int64, error) {
	q := s.DB.WithContext(ctx).
		Model(&actmodel.UserActivityLogModel{}).
		Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []actmodel.UserActivityLogModel
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}
