package workflow

import (
	"context"
	"testing"

	reqmodel "onboardku_backend/internals/features/onboarding/requests/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRequestWithCode(s *memStore, code string) {
	id := uuid.New()
	s.requests[id] = reqmodel.OnboardingRequestModel{
		ID:              id,
		RequestCode:     code,
		ClientID:        uuid.New(),
		SystemID:        uuid.New(),
		CreatedByUserID: uuid.New(),
		Status:          RequestStatusPending,
		Priority:        "medium",
	}
}

func TestNextCode(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh year starts at 0001", func(t *testing.T) {
		store := newMemStore()
		g := NewRequestCodeGenerator(store.Requests())

		code, err := g.NextCode(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, "REQ-2026-0001", code)
	})

	t.Run("increments highest existing sequence", func(t *testing.T) {
		store := newMemStore()
		seedRequestWithCode(store, "REQ-2026-0001")
		seedRequestWithCode(store, "REQ-2026-0007")
		seedRequestWithCode(store, "REQ-2026-0003")

		g := NewRequestCodeGenerator(store.Requests())
		code, err := g.NextCode(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, "REQ-2026-0008", code)
	})

	t.Run("sequence is year-scoped", func(t *testing.T) {
		store := newMemStore()
		seedRequestWithCode(store, "REQ-2025-0042")

		g := NewRequestCodeGenerator(store.Requests())
		code, err := g.NextCode(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, "REQ-2026-0001", code)

		code, err = g.NextCode(ctx, 2025)
		require.NoError(t, err)
		assert.Equal(t, "REQ-2025-0043", code)
	})

	t.Run("pads to four digits past 9999 gracefully", func(t *testing.T) {
		store := newMemStore()
		seedRequestWithCode(store, "REQ-2026-9999")

		g := NewRequestCodeGenerator(store.Requests())
		code, err := g.NextCode(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, "REQ-2026-10000", code)
	})
}
