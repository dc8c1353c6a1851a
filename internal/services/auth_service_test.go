package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"review-backend/internal/config"
	"review-backend/internal/models"
	"review-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() (AuthService, *fakeUserRepo, *fakeMailer) {
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	cfg := config.AuthConfig{
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		ConfirmationTTL: time.Hour,
	}
	return NewAuthService(users, mailer, cfg, testLogger()), users, mailer
}

// sentCode pulls the confirmation code back out of the last mail body.
func sentCode(t *testing.T, mailer *fakeMailer) string {
	t.Helper()
	require.NotEmpty(t, mailer.sent)
	body := mailer.sent[len(mailer.sent)-1].Body
	idx := strings.LastIndex(body, ": ")
	require.GreaterOrEqual(t, idx, 0)
	return body[idx+2:]
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and mails a code", func(t *testing.T) {
		svc, users, mailer := newTestAuthService()

		err := svc.SignUp(ctx, "capote", "capote@example.com")
		require.NoError(t, err)

		user, err := users.FindByUsername(ctx, "capote")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Equal(t, "capote@example.com", user.Email)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "capote@example.com", mailer.sent[0].To)
		assert.NotEmpty(t, sentCode(t, mailer))
	})

	t.Run("rejects reserved username", func(t *testing.T) {
		svc, _, mailer := newTestAuthService()

		err := svc.SignUp(ctx, "me", "me@example.com")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Contains(t, appErr.Fields, "username")
		assert.Empty(t, mailer.sent)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		require.NoError(t, svc.SignUp(ctx, "capote", "capote@example.com"))

		err := svc.SignUp(ctx, "capote", "other@example.com")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "username")
	})

	t.Run("rejects taken email", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		require.NoError(t, svc.SignUp(ctx, "capote", "capote@example.com"))

		err := svc.SignUp(ctx, "other", "capote@example.com")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "email")
	})

	t.Run("resends code for matching pair", func(t *testing.T) {
		svc, users, mailer := newTestAuthService()
		require.NoError(t, svc.SignUp(ctx, "capote", "capote@example.com"))
		require.NoError(t, svc.SignUp(ctx, "capote", "capote@example.com"))

		assert.Len(t, mailer.sent, 2)

		all, total, err := users.FindAll(ctx, 1, 10, "")
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, all, 1)
	})
}

func TestAuthService_IssueToken(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges a valid code for a token", func(t *testing.T) {
		svc, _, mailer := newTestAuthService()
		require.NoError(t, svc.SignUp(ctx, "capote", "capote@example.com"))

		token, err := svc.IssueToken(ctx, "capote", sentCode(t, mailer))
		require.NoError(t, err)

		claims, err := ParseAccessToken("test-secret", token)
		require.NoError(t, err)
		assert.Equal(t, "capote", claims.Username)
		assert.Equal(t, models.RoleUser, claims.Role)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		_, err := svc.IssueToken(ctx, "ghost", "whatever")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("rejects an invalid code", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		require.NoError(t, svc.SignUp(ctx, "capote", "capote@example.com"))

		_, err := svc.IssueToken(ctx, "capote", "123-deadbeef")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("a code cannot be used twice", func(t *testing.T) {
		svc, _, mailer := newTestAuthService()
		require.NoError(t, svc.SignUp(ctx, "capote", "capote@example.com"))

		code := sentCode(t, mailer)
		_, err := svc.IssueToken(ctx, "capote", code)
		require.NoError(t, err)

		_, err = svc.IssueToken(ctx, "capote", code)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("a racing exchange consumes a code only once", func(t *testing.T) {
		svc, users, mailer := newTestAuthService()
		require.NoError(t, svc.SignUp(ctx, "capote", "capote@example.com"))
		code := sentCode(t, mailer)

		// A competing exchange wins between verification and the
		// conditional consume write.
		users.beforeBump = func() {
			users.beforeBump = nil
			for id, u := range users.users {
				u.CodeVersion++
				users.users[id] = u
			}
		}

		_, err := svc.IssueToken(ctx, "capote", code)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("consuming one code invalidates the rest", func(t *testing.T) {
		svc, _, mailer := newTestAuthService()
		require.NoError(t, svc.SignUp(ctx, "capote", "capote@example.com"))
		first := sentCode(t, mailer)

		require.NoError(t, svc.SignUp(ctx, "capote", "capote@example.com"))
		second := sentCode(t, mailer)

		// Both codes carry the same code version, so the earlier one
		// stays valid until either is consumed.
		_, err := svc.IssueToken(ctx, "capote", first)
		require.NoError(t, err)

		_, err = svc.IssueToken(ctx, "capote", second)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}

func TestAccessToken_Roundtrip(t *testing.T) {
	user := &models.User{
		ID:       uuid.New(),
		Username: "mod",
		Email:    "mod@example.com",
		Role:     models.RoleModerator,
	}

	token, err := NewAccessToken("secret", user, time.Hour)
	require.NoError(t, err)

	claims, err := ParseAccessToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "mod", claims.Username)
	assert.Equal(t, models.RoleModerator, claims.Role)
}

func TestAccessToken_RejectsWrongSecret(t *testing.T) {
	user := testUser()

	token, err := NewAccessToken("secret", user, time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken("different", token)
	assert.Error(t, err)
}

func TestAccessToken_RejectsExpired(t *testing.T) {
	user := testUser()

	token, err := NewAccessToken("secret", user, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", token)
	assert.Error(t, err)
}
