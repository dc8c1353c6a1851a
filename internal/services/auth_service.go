package services

import (
	"context"
	"fmt"
	"time"

	"review-backend/internal/config"
	"review-backend/internal/models"
	"review-backend/internal/repository"
	"review-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReservedUsername cannot be registered; it is the self-service path
// segment under /users/.
const ReservedUsername = "me"

type AuthService interface {
	// SignUp registers or re-confirms a (username, email) pair and
	// mails a fresh confirmation code.
	SignUp(ctx context.Context, username, email string) error
	// IssueToken exchanges a valid confirmation code for a signed
	// access token, consuming the code.
	IssueToken(ctx context.Context, username, code string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	mailer Mailer
	signer *CodeSigner
	cfg    config.AuthConfig
	logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, mailer Mailer, cfg config.AuthConfig, logger *logrus.Logger) AuthService {
	return &authService{
		users:  users,
		mailer: mailer,
		signer: NewCodeSigner(cfg.JWTSecret, cfg.ConfirmationTTL),
		cfg:    cfg,
		logger: logger,
	}
}

func (s *authService) SignUp(ctx context.Context, username, email string) error {
	if username == ReservedUsername {
		return utils.NewFieldValidationError(map[string][]string{
			"username": {"this username is reserved"},
		})
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	switch {
	case user != nil && user.Email != email:
		return utils.NewFieldValidationError(map[string][]string{
			"username": {"a user with that username already exists"},
		})
	case user == nil:
		existing, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to look up email: %w", err)
		}
		if existing != nil {
			return utils.NewFieldValidationError(map[string][]string{
				"email": {"a user with that email already exists"},
			})
		}

		user = &models.User{
			ID:       uuid.New(),
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.WithField("username", username).Info("User signed up")
	}

	code := s.signer.Generate(user)
	body := fmt.Sprintf("Your confirmation code: %s", code)
	if err := s.mailer.Send(user.Email, "Confirmation code", body); err != nil {
		return fmt.Errorf("failed to send confirmation code: %w", err)
	}

	return nil
}

func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", utils.NewNotFoundError("user not found")
	}

	if !s.signer.Verify(user, code) {
		return "", utils.NewValidationError("invalid confirmation code")
	}

	// Consume: every code issued before this point stops verifying.
	// The conditional write keeps a code single use when two exchanges
	// race on the same version.
	consumed, err := s.users.BumpCodeVersion(ctx, user.ID, user.CodeVersion)
	if err != nil {
		return "", fmt.Errorf("failed to consume confirmation code: %w", err)
	}
	if !consumed {
		return "", utils.NewValidationError("invalid confirmation code")
	}

	token, err := NewAccessToken(s.cfg.JWTSecret, user, s.cfg.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	s.logger.WithField("username", username).Info("Access token issued")
	return token, nil
}

// Claims is the access-token payload: user identity plus the standard
// registered claims. Verification is stateless.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func NewAccessToken(secret string, user *models.User, ttl time.Duration) (string, error) {
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseAccessToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
