package service

import (
	"context"
	"time"

	notifmodel "onboardku_backend/internals/features/notifications/model"
	"onboardku_backend/internals/features/onboarding/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService writes and reads in-app notifications. It satisfies
// the workflow Notifier port, so workflow operations never import gorm.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (s *NotificationService) Notify(ctx context.Context, userIDs []uuid.UUID, notifType, title, message string, related *workflow.RelatedEntity) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]notifmodel.NotificationModel, 0, len(userIDs))
	for _, userID := range userIDs {
		id := userID
		row := notifmodel.NotificationModel{
			UserID:  &id,
			Type:    notifType,
			Title:   title,
			Message: message,
		}
		if related != nil {
			entityType := related.Type
			entityID := related.ID
			row.RelatedEntityType = &entityType
			row.RelatedEntityID = &entityID
		}
		rows = append(rows, row)
	}
	return s.DB.WithContext(ctx).Create(&rows).Error
}

func (s *NotificationService) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]notifmodel.NotificationModel, int64, error) {
	q := s.DB.WithContext(ctx).
		Model(&notifmodel.NotificationModel{}).
		Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []notifmodel.NotificationModel
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&notifmodel.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead is scoped to the owner so one user can never read another's
// notifications away.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	now := time.Now()
	res := s.DB.WithContext(ctx).
		Model(&notifmodel.NotificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]any{"is_read": true, "read_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	now := time.Now()
	res := s.DB.WithContext(ctx).
		Model(&notifmodel.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": now})
	return res.RowsAffected, res.Error
}
