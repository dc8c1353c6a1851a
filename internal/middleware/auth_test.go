package middleware

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"review-backend/internal/models"
	"review-backend/internal/permissions"
	"review-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) BumpCodeVersion(_ context.Context, id uuid.UUID, fromVersion int) (bool, error) {
	u, ok := r.users[id]
	if !ok || u.CodeVersion != fromVersion {
		return false, nil
	}
	u.CodeVersion++
	return true, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.users[id], nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindAll(_ context.Context, page, limit int, search string) ([]models.User, int64, error) {
	return nil, 0, nil
}

func newTestApp(t *testing.T) (*fiber.App, *stubUserRepo) {
	t.Helper()

	repo := &stubUserRepo{users: make(map[uuid.UUID]*models.User)}
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New()
	app.Use(Authenticate(testSecret, repo, log))

	app.Get("/whoami", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Username)
	})
	app.Get("/public", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/admin", RequirePermission(permissions.CanManageUsers), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app, repo
}

func addUser(t *testing.T, repo *stubUserRepo, role string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Username: "u-" + role,
		Email:    role + "@example.com",
		Role:     role,
	}
	repo.users[user.ID] = user

	token, err := services.NewAccessToken(testSecret, user, time.Hour)
	require.NoError(t, err)
	return user, token
}

func get(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	res, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body)
}

func TestAuthenticate(t *testing.T) {
	t.Run("anonymous requests pass through", func(t *testing.T) {
		app, _ := newTestApp(t)
		status, _ := get(t, app, "/public", "")
		assert.Equal(t, fiber.StatusOK, status)
	})

	t.Run("valid token resolves the user", func(t *testing.T) {
		app, repo := newTestApp(t)
		user, token := addUser(t, repo, models.RoleUser)

		status, body := get(t, app, "/whoami", token)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, user.Username, body)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		app, _ := newTestApp(t)

		req := httptest.NewRequest("GET", "/public", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Token abc")
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		app, _ := newTestApp(t)
		status, _ := get(t, app, "/public", "not.a.jwt")
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("token for a deleted user is rejected", func(t *testing.T) {
		app, repo := newTestApp(t)
		user, token := addUser(t, repo, models.RoleUser)
		delete(repo.users, user.ID)

		status, _ := get(t, app, "/whoami", token)
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})
}

func TestRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := get(t, app, "/whoami", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRequirePermission(t *testing.T) {
	t.Run("anonymous is unauthorized", func(t *testing.T) {
		app, _ := newTestApp(t)
		status, _ := get(t, app, "/admin", "")
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		app, repo := newTestApp(t)
		_, token := addUser(t, repo, models.RoleUser)

		status, _ := get(t, app, "/admin", token)
		assert.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run("admin is allowed", func(t *testing.T) {
		app, repo := newTestApp(t)
		_, token := addUser(t, repo, models.RoleAdmin)

		status, _ := get(t, app, "/admin", token)
		assert.Equal(t, fiber.StatusOK, status)
	})

	t.Run("role change applies on the next request", func(t *testing.T) {
		app, repo := newTestApp(t)
		user, token := addUser(t, repo, models.RoleUser)

		status, _ := get(t, app, "/admin", token)
		assert.Equal(t, fiber.StatusForbidden, status)

		user.Role = models.RoleAdmin
		status, _ = get(t, app, "/admin", token)
		assert.Equal(t, fiber.StatusOK, status)
	})
}
