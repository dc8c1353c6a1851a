package services

import (
	"context"
	"fmt"

	"review-backend/internal/models"
	"review-backend/internal/permissions"
	"review-backend/internal/repository"
	"review-backend/internal/utils"

	"github.com/sirupsen/logrus"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID uint, page, limit int) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, id uint) (*models.Comment, error)
	Create(ctx context.Context, titleID, reviewID uint, author *models.User, text string) (*models.Comment, error)
	Update(ctx context.Context, titleID, reviewID, id uint, actor *models.User, text string) (*models.Comment, error)
	Delete(ctx context.Context, titleID, reviewID, id uint, actor *models.User) error
}

type commentService struct {
	repo    repository.CommentRepository
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
	logger  *logrus.Logger
}

func NewCommentService(repo repository.CommentRepository, reviews repository.ReviewRepository, titles repository.TitleRepository, logger *logrus.Logger) CommentService {
	return &commentService{
		repo:    repo,
		reviews: reviews,
		titles:  titles,
		logger:  logger,
	}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID uint, page, limit int) ([]models.Comment, int64, error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.repo.FindAllByReview(ctx, reviewID, page, limit)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, id uint) (*models.Comment, error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.repo.FindByID(ctx, reviewID, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, utils.NewNotFoundError("comment not found")
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID uint, author *models.User, text string) (*models.Comment, error) {
	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		AuthorID: author.ID,
		Author:   author,
		ReviewID: review.ID,
		Text:     text,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"review_id": reviewID,
		"author":    author.Username,
	}).Info("Comment created")
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, id uint, actor *models.User, text string) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}

	if !permissions.CanModifyFeedback(actor.Role, comment.AuthorID == actor.ID) {
		return nil, utils.NewForbiddenError("you cannot modify this comment")
	}

	comment.Text = text
	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, id uint, actor *models.User) error {
	comment, err := s.Get(ctx, titleID, reviewID, id)
	if err != nil {
		return err
	}

	if !permissions.CanModifyFeedback(actor.Role, comment.AuthorID == actor.ID) {
		return utils.NewForbiddenError("you cannot delete this comment")
	}

	return s.repo.Delete(ctx, id)
}

// resolveReview checks the nested path: the title must exist and the
// review must belong to it, otherwise the resource is not found.
func (s *commentService) resolveReview(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	title, err := s.titles.FindByID(ctx, titleID)
	if err != nil {
		return nil, err
	}
	if title == nil {
		return nil, utils.NewNotFoundError("title not found")
	}

	review, err := s.reviews.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, utils.NewNotFoundError("review not found")
	}
	return review, nil
}
