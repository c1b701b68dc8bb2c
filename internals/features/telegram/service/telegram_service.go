package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"onboardku_backend/internals/configs"
	clientmodel "onboardku_backend/internals/features/clients/model"
	sessmodel "onboardku_backend/internals/features/onboarding/sessions/model"
	"onboardku_backend/internals/features/onboarding/workflow"
	tgmodel "onboardku_backend/internals/features/telegram/model"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TelegramService delivers session lifecycle messages to client contacts
// through the Bot API. Every outbound message is recorded first, so a dead
// bot token degrades to rows stuck in pending instead of lost messages.
type TelegramService struct {
	DB     *gorm.DB
	client *http.Client
}

func NewTelegramService(db *gorm.DB) *TelegramService {
	return &TelegramService{
		DB:     db,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *TelegramService) SendSessionMessage(ctx context.Context, session *sessmodel.TrainingSessionModel, messageType string) error {
	statuses := []string{workflow.AttendanceStatusInvited, workflow.AttendanceStatusConfirmed}
	if messageType == workflow.MessageSessionCancelled {
		// Cancellation flips attendees to cancelled before this runs; they
		// still need to hear about it.
		statuses = append(statuses, workflow.AttendanceStatusCancelled)
	}
	contacts, err := s.sessionContacts(ctx, session.ID, statuses)
	if err != nil {
		return err
	}
	content := buildSessionMessage(session, messageType)

	for _, contact := range contacts {
		row := tgmodel.TelegramMessageModel{
			ClientContactID:  contact.ID,
			MessageType:      messageType,
			MessageContent:   content,
			DeliveryStatus:   tgmodel.DeliveryStatusPending,
			RelatedSessionID: &session.ID,
		}
		if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}

		if contact.TelegramChatID == nil || configs.TelegramBotToken == "" {
			continue
		}
		s.dispatch(&row, *contact.TelegramChatID)
	}
	return nil
}

// dispatch hands the row to the bot API in the background. The request
// context is already past commit here and must not gate delivery, so the
// goroutine runs on a detached context; the outcome lands on the row.
func (s *TelegramService) dispatch(row *tgmodel.TelegramMessageModel, chatID string) {
	go s.deliver(context.Background(), row, chatID)
}

// sessionContacts resolves the invited/confirmed attendees of the session
// to their client contacts.
func (s *TelegramService) sessionContacts(ctx context.Context, sessionID uuid.UUID, statuses []string) ([]clientmodel.ClientContactModel, error) {
	var contacts []clientmodel.ClientContactModel
	err := s.DB.WithContext(ctx).
		Model(&clientmodel.ClientContactModel{}).
		Joins("JOIN session_attendees ON session_attendees.client_contact_id = client_contacts.id").
		Where("session_attendees.deleted_at IS NULL").
		Where("session_attendees.session_id = ?", sessionID).
		Where("session_attendees.attendance_status IN ?", statuses).
		Where("client_contacts.is_active = ?", true).
		Find(&contacts).Error
	return contacts, err
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

// deliver posts one message and records the outcome on the row. Failures
// are stored, logged, and swallowed.
func (s *TelegramService) deliver(ctx context.Context, row *tgmodel.TelegramMessageModel, chatID string) {
	payload, err := sonic.Marshal(sendMessageRequest{ChatID: chatID, Text: row.MessageContent})
	if err != nil {
		s.markFailed(ctx, row, err.Error())
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", configs.TelegramAPIBase, configs.TelegramBotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		s.markFailed(ctx, row, err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.markFailed(ctx, row, err.Error())
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var out sendMessageResponse
	if err := sonic.Unmarshal(body, &out); err != nil || !out.OK {
		desc := out.Description
		if desc == "" {
			desc = fmt.Sprintf("telegram responded %d", resp.StatusCode)
		}
		s.markFailed(ctx, row, desc)
		return
	}

	now := time.Now()
	messageID := fmt.Sprintf("%d", out.Result.MessageID)
	if err := s.DB.WithContext(ctx).Model(row).Updates(map[string]any{
		"delivery_status":     tgmodel.DeliveryStatusSent,
		"telegram_message_id": messageID,
		"sent_at":             now,
	}).Error; err != nil {
		log.Printf("[TELEGRAM] failed to mark message %s sent: %v", row.ID, err)
	}
}

func (s *TelegramService) markFailed(ctx context.Context, row *tgmodel.TelegramMessageModel, reason string) {
	log.Printf("[TELEGRAM] delivery to contact %s failed: %s", row.ClientContactID, reason)
	if err := s.DB.WithContext(ctx).Model(row).Updates(map[string]any{
		"delivery_status": tgmodel.DeliveryStatusFailed,
		"error_message":   reason,
	}).Error; err != nil {
		log.Printf("[TELEGRAM] failed to mark message %s failed: %v", row.ID, err)
	}
}

func buildSessionMessage(session *sessmodel.TrainingSessionModel, messageType string) string {
	var b strings.Builder
	switch messageType {
	case workflow.MessageSessionScheduled:
		b.WriteString("📅 Training Session Scheduled\n\n")
	case workflow.MessageSessionRescheduled:
		b.WriteString("🔄 Training Session Rescheduled\n\n")
	case workflow.MessageSessionCancelled:
		b.WriteString("❌ Training Session Cancelled\n\n")
	case workflow.MessageSessionReminder:
		b.WriteString("⏰ Training Session Reminder\n\n")
	default:
		b.WriteString("📌 Training Session Update\n\n")
	}

	fmt.Fprintf(&b, "%s\n", session.SessionTitle)
	fmt.Fprintf(&b, "Date: %s\n", session.ScheduledDate.Format("Monday, 02 Jan 2006"))
	fmt.Fprintf(&b, "Time: %s - %s\n", session.ScheduledStartTime, session.ScheduledEndTime)

	if session.LocationType == "online" {
		if session.MeetingLink != nil && *session.MeetingLink != "" {
			fmt.Fprintf(&b, "Meeting link: %s\n", *session.MeetingLink)
		} else {
			b.WriteString("Location: online\n")
		}
	} else if session.PhysicalLocation != nil && *session.PhysicalLocation != "" {
		fmt.Fprintf(&b, "Location: %s\n", *session.PhysicalLocation)
	}

	if messageType == workflow.MessageSessionCancelled && session.CancellationReason != nil {
		fmt.Fprintf(&b, "\nReason: %s", *session.CancellationReason)
	}
	if messageType == workflow.MessageSessionRescheduled && session.RescheduleReason != nil {
		fmt.Fprintf(&b, "\nReason: %s", *session.RescheduleReason)
	}
	return b.String()
}
