package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/domain"
	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/service"
	autherror "github.com/SupermaxiMarket/pme-freelance-assistant/internal/errors"
)

func TestAuthenticate(t *testing.T) {
	t.Run("fails without auth header", func(t *testing.T) {
		f := newFixture(t, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("fails with malformed header", func(t *testing.T) {
		f := newFixture(t, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "BearerMissingSpace")
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("fails with invalid or expired token", func(t *testing.T) {
		f := newFixture(t, nil)

		f.tokens.EXPECT().VerifyAccessToken("bad-token").Return(nil, autherror.ErrInvalidToken)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("fails when the user no longer exists", func(t *testing.T) {
		f := newFixture(t, nil)

		claims := &service.JWTCustomClaims{UserID: "ghost"}
		f.tokens.EXPECT().VerifyAccessToken("orphaned-token").Return(claims, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer orphaned-token")
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("succeeds and binds the user to the request", func(t *testing.T) {
		f := newFixture(t, nil)

		user := &domain.User{
			ID:           "user-123",
			Name:         "Alice",
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$should-never-appear",
		}

		claims := &service.JWTCustomClaims{UserID: user.ID}
		f.tokens.EXPECT().VerifyAccessToken("valid-token").Return(claims, nil)
		// Once for the gate, once for the profile fetch.
		f.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil).Times(2)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := map[string]any{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		profile, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, user.Email, profile["email"])
		assert.NotContains(t, profile, "password")
		assert.NotContains(t, profile, "passwordHash")
	})
}

func TestRequirePremium(t *testing.T) {
	// Mount a probe route behind both gates, the way a premium feature
	// module would.
	setup := func(t *testing.T, user *domain.User) *handlerFixture {
		f := newFixture(t, nil)

		claims := &service.JWTCustomClaims{UserID: user.ID}
		f.tokens.EXPECT().VerifyAccessToken("valid-token").Return(claims, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil).Times(2)

		return f
	}

	t.Run("rejects non-premium users", func(t *testing.T) {
		user := &domain.User{ID: "user-123", IsPremium: false}
		f := setup(t, user)
		f.app.Get("/premium-probe", f.authHandler.Authenticate, f.authHandler.RequirePremium,
			func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/premium-probe", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("passes premium users through", func(t *testing.T) {
		user := &domain.User{ID: "user-456", IsPremium: true}
		f := setup(t, user)
		f.app.Get("/premium-probe", f.authHandler.Authenticate, f.authHandler.RequirePremium,
			func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/premium-probe", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
