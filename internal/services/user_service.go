package services

import (
	"context"
	"fmt"

	"review-backend/internal/models"
	"review-backend/internal/repository"
	"review-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

type UserService interface {
	List(ctx context.Context, page, limit int, search string) ([]models.User, int64, error)
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, patch UserPatch) (*models.User, error)
	UpdateByID(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error)
	Delete(ctx context.Context, username string) error
}

type userService struct {
	repo   repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, logger *logrus.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger,
	}
}

func (s *userService) List(ctx context.Context, page, limit int, search string) ([]models.User, int64, error) {
	return s.repo.FindAll(ctx, page, limit, search)
}

func (s *userService) Create(ctx context.Context, user *models.User) error {
	if user.Username == ReservedUsername {
		return utils.NewFieldValidationError(map[string][]string{
			"username": {"this username is reserved"},
		})
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if !models.ValidRole(user.Role) {
		return utils.NewFieldValidationError(map[string][]string{
			"role": {"must be one of: user, moderator, admin"},
		})
	}

	if err := s.ensureUnique(ctx, user.Username, user.Email, uuid.Nil); err != nil {
		return err
	}

	user.ID = uuid.New()
	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"username": user.Username,
		"role":     user.Role,
	}).Info("User created")
	return nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewNotFoundError("user not found")
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, patch UserPatch) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, patch)
}

func (s *userService) UpdateByID(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewNotFoundError("user not found")
	}
	return s.apply(ctx, user, patch)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, user.ID)
}

func (s *userService) apply(ctx context.Context, user *models.User, patch UserPatch) (*models.User, error) {
	newUsername := user.Username
	newEmail := user.Email

	if patch.Username != nil {
		if *patch.Username == ReservedUsername {
			return nil, utils.NewFieldValidationError(map[string][]string{
				"username": {"this username is reserved"},
			})
		}
		newUsername = *patch.Username
	}
	if patch.Email != nil {
		newEmail = *patch.Email
	}

	if newUsername != user.Username || newEmail != user.Email {
		if err := s.ensureUnique(ctx, newUsername, newEmail, user.ID); err != nil {
			return nil, err
		}
	}

	user.Username = newUsername
	user.Email = newEmail
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Role != nil {
		if !models.ValidRole(*patch.Role) {
			return nil, utils.NewFieldValidationError(map[string][]string{
				"role": {"must be one of: user, moderator, admin"},
			})
		}
		user.Role = *patch.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ensureUnique rejects a username or email already held by a different
// user. self is the user being updated, uuid.Nil on create.
func (s *userService) ensureUnique(ctx context.Context, username, email string, self uuid.UUID) error {
	byUsername, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if byUsername != nil && byUsername.ID != self {
		return utils.NewFieldValidationError(map[string][]string{
			"username": {"a user with that username already exists"},
		})
	}

	byEmail, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if byEmail != nil && byEmail.ID != self {
		return utils.NewFieldValidationError(map[string][]string{
			"email": {"a user with that email already exists"},
		})
	}
	return nil
}
