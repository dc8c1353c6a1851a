package services

import (
	"context"
	"errors"
	"fmt"

	"review-backend/internal/models"
	"review-backend/internal/permissions"
	"review-backend/internal/repository"
	"review-backend/internal/utils"

	"github.com/sirupsen/logrus"
)

// ReviewPatch is the author-editable subset; author and pub_date are
// server-assigned and never move.
type ReviewPatch struct {
	Text  *string
	Score *int
}

type ReviewService interface {
	List(ctx context.Context, titleID uint, page, limit int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, id uint) (*models.Review, error)
	Create(ctx context.Context, titleID uint, author *models.User, text string, score int) (*models.Review, error)
	Update(ctx context.Context, titleID, id uint, actor *models.User, patch ReviewPatch) (*models.Review, error)
	Delete(ctx context.Context, titleID, id uint, actor *models.User) error
}

type reviewService struct {
	repo   repository.ReviewRepository
	titles repository.TitleRepository
	logger *logrus.Logger
}

func NewReviewService(repo repository.ReviewRepository, titles repository.TitleRepository, logger *logrus.Logger) ReviewService {
	return &reviewService{
		repo:   repo,
		titles: titles,
		logger: logger,
	}
}

func (s *reviewService) List(ctx context.Context, titleID uint, page, limit int) ([]models.Review, int64, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.repo.FindAllByTitle(ctx, titleID, page, limit)
}

func (s *reviewService) Get(ctx context.Context, titleID, id uint) (*models.Review, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := s.repo.FindByID(ctx, titleID, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, utils.NewNotFoundError("review not found")
	}
	return review, nil
}

func (s *reviewService) Create(ctx context.Context, titleID uint, author *models.User, text string, score int) (*models.Review, error) {
	if err := validateScore(score); err != nil {
		return nil, err
	}
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByAuthorAndTitle(ctx, author.ID, titleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		return nil, utils.NewValidationError("you have already reviewed this title")
	}

	review := &models.Review{
		AuthorID: author.ID,
		Author:   author,
		TitleID:  titleID,
		Text:     text,
		Score:    score,
	}

	// The unique index still backstops a concurrent duplicate here.
	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, utils.NewValidationError("you have already reviewed this title")
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"title_id": titleID,
		"author":   author.Username,
	}).Info("Review created")
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, titleID, id uint, actor *models.User, patch ReviewPatch) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, id)
	if err != nil {
		return nil, err
	}

	if !permissions.CanModifyFeedback(actor.Role, review.AuthorID == actor.ID) {
		return nil, utils.NewForbiddenError("you cannot modify this review")
	}

	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		if err := validateScore(*patch.Score); err != nil {
			return nil, err
		}
		review.Score = *patch.Score
	}

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, id uint, actor *models.User) error {
	review, err := s.Get(ctx, titleID, id)
	if err != nil {
		return err
	}

	if !permissions.CanModifyFeedback(actor.Role, review.AuthorID == actor.ID) {
		return utils.NewForbiddenError("you cannot delete this review")
	}

	return s.repo.Delete(ctx, id)
}

func (s *reviewService) ensureTitle(ctx context.Context, titleID uint) error {
	title, err := s.titles.FindByID(ctx, titleID)
	if err != nil {
		return err
	}
	if title == nil {
		return utils.NewNotFoundError("title not found")
	}
	return nil
}

func validateScore(score int) error {
	if score < models.MinScore || score > models.MaxScore {
		return utils.NewFieldValidationError(map[string][]string{
			"score": {fmt.Sprintf("score must be between %d and %d", models.MinScore, models.MaxScore)},
		})
	}
	return nil
}
