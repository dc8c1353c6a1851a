package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	signUpErr  error
	token      string
	tokenErr   error
	lastSignUp [2]string
}

func (s *stubAuthService) SignUp(_ context.Context, username, email string) error {
	s.lastSignUp = [2]string{username, email}
	return s.signUpErr
}

func (s *stubAuthService) IssueToken(_ context.Context, username, code string) (string, error) {
	if s.tokenErr != nil {
		return "", s.tokenErr
	}
	return s.token, nil
}

func newAuthTestApp(svc *stubAuthService) *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New()
	h := NewAuthHandler(svc, log)
	app.Post("/auth/signup", h.SignUp)
	app.Post("/auth/token", h.Token)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	res, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return res.StatusCode, out
}

func TestAuthHandler_SignUp(t *testing.T) {
	t.Run("echoes the registered pair", func(t *testing.T) {
		svc := &stubAuthService{}
		app := newAuthTestApp(svc)

		status, body := postJSON(t, app, "/auth/signup",
			`{"username":"capote","email":"capote@example.com"}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "capote", body["username"])
		assert.Equal(t, "capote@example.com", body["email"])
		assert.Equal(t, [2]string{"capote", "capote@example.com"}, svc.lastSignUp)
	})

	t.Run("invalid payload returns field errors", func(t *testing.T) {
		app := newAuthTestApp(&stubAuthService{})

		status, body := postJSON(t, app, "/auth/signup",
			`{"username":"has space","email":"nope"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body, "username")
		assert.Contains(t, body, "email")
	})

	t.Run("service errors pass through", func(t *testing.T) {
		svc := &stubAuthService{
			signUpErr: utils.NewFieldValidationError(map[string][]string{
				"username": {"a user with that username already exists"},
			}),
		}
		app := newAuthTestApp(svc)

		status, body := postJSON(t, app, "/auth/signup",
			`{"username":"capote","email":"capote@example.com"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body, "username")
	})
}

func TestAuthHandler_Token(t *testing.T) {
	t.Run("returns the token", func(t *testing.T) {
		app := newAuthTestApp(&stubAuthService{token: "signed.jwt.here"})

		status, body := postJSON(t, app, "/auth/token",
			`{"username":"capote","confirmation_code":"123-abc"}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "signed.jwt.here", body["token"])
		assert.Equal(t, "capote", body["username"])
	})

	t.Run("missing code is a validation error", func(t *testing.T) {
		app := newAuthTestApp(&stubAuthService{})

		status, body := postJSON(t, app, "/auth/token", `{"username":"capote"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body, "confirmation_code")
	})

	t.Run("unknown user maps to 404", func(t *testing.T) {
		app := newAuthTestApp(&stubAuthService{
			tokenErr: utils.NewNotFoundError("user not found"),
		})

		status, body := postJSON(t, app, "/auth/token",
			`{"username":"ghost","confirmation_code":"123-abc"}`)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "user not found", body["detail"])
	})

	t.Run("bad code maps to 400", func(t *testing.T) {
		app := newAuthTestApp(&stubAuthService{
			tokenErr: utils.NewValidationError("invalid confirmation code"),
		})

		status, body := postJSON(t, app, "/auth/token",
			`{"username":"capote","confirmation_code":"nope"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "invalid confirmation code", body["detail"])
	})
}
