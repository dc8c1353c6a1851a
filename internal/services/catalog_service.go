package services

import (
	"context"
	"fmt"

	"review-backend/internal/models"
	"review-backend/internal/repository"
	"review-backend/internal/utils"

	"github.com/sirupsen/logrus"
)

// CatalogService covers the two slug-keyed lookup collections,
// categories and genres: list, create and delete only.
type CatalogService interface {
	ListCategories(ctx context.Context, page, limit int, search string) ([]models.Category, int64, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, slug string) error

	ListGenres(ctx context.Context, page, limit int, search string) ([]models.Genre, int64, error)
	CreateGenre(ctx context.Context, genre *models.Genre) error
	DeleteGenre(ctx context.Context, slug string) error
}

type catalogService struct {
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	logger     *logrus.Logger
}

func NewCatalogService(categories repository.CategoryRepository, genres repository.GenreRepository, logger *logrus.Logger) CatalogService {
	return &catalogService{
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

func (s *catalogService) ListCategories(ctx context.Context, page, limit int, search string) ([]models.Category, int64, error) {
	return s.categories.FindAll(ctx, page, limit, search)
}

func (s *catalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	existing, err := s.categories.FindBySlug(ctx, category.Slug)
	if err != nil {
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if existing != nil {
		return utils.NewFieldValidationError(map[string][]string{
			"slug": {"a category with that slug already exists"},
		})
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.WithField("slug", category.Slug).Info("Category created")
	return nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, slug string) error {
	deleted, err := s.categories.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !deleted {
		return utils.NewNotFoundError("category not found")
	}
	return nil
}

func (s *catalogService) ListGenres(ctx context.Context, page, limit int, search string) ([]models.Genre, int64, error) {
	return s.genres.FindAll(ctx, page, limit, search)
}

func (s *catalogService) CreateGenre(ctx context.Context, genre *models.Genre) error {
	existing, err := s.genres.FindBySlug(ctx, genre.Slug)
	if err != nil {
		return fmt.Errorf("failed to look up genre: %w", err)
	}
	if existing != nil {
		return utils.NewFieldValidationError(map[string][]string{
			"slug": {"a genre with that slug already exists"},
		})
	}

	if err := s.genres.Create(ctx, genre); err != nil {
		return fmt.Errorf("failed to create genre: %w", err)
	}

	s.logger.WithField("slug", genre.Slug).Info("Genre created")
	return nil
}

func (s *catalogService) DeleteGenre(ctx context.Context, slug string) error {
	deleted, err := s.genres.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	if !deleted {
		return utils.NewNotFoundError("genre not found")
	}
	return nil
}
