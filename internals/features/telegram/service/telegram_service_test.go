package service

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"onboardku_backend/internals/configs"
	tgmodel "onboardku_backend/internals/features/telegram/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func lazyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=127.0.0.1 port=1 user=onboardku dbname=onboardku sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// Delivery runs after commit and must never hold up the caller: dispatch
// has to return while the bot API is still chewing on the request.
func TestDispatchDoesNotBlockOnDelivery(t *testing.T) {
	received := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(received)
		<-release
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":42}}`)
	}))
	defer srv.Close()
	defer close(release)

	prevBase, prevToken := configs.TelegramAPIBase, configs.TelegramBotToken
	configs.TelegramAPIBase = srv.URL
	configs.TelegramBotToken = "test-token"
	defer func() {
		configs.TelegramAPIBase, configs.TelegramBotToken = prevBase, prevToken
	}()

	svc := NewTelegramService(lazyDB(t))
	row := &tgmodel.TelegramMessageModel{
		MessageContent: "test message",
		DeliveryStatus: tgmodel.DeliveryStatusPending,
	}

	done := make(chan struct{})
	go func() {
		svc.dispatch(row, "12345")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("dispatch blocked until delivery finished")
	}

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("message never reached the bot API")
	}
}
