package services

import (
	"context"
	"fmt"
	"time"

	"review-backend/internal/models"
	"review-backend/internal/repository"
	"review-backend/internal/utils"

	"github.com/sirupsen/logrus"
)

// TitleInput is the write shape: category and genres arrive as slug
// references and are resolved against the catalog.
type TitleInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
	CoverURL     string
}

// TitlePatch is the partial-update shape; nil fields are untouched.
type TitlePatch struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
	CoverURL     *string
}

// CoverStorage removes stored cover objects. Satisfied by MinIOService.
type CoverStorage interface {
	DeleteCover(coverURL string) error
}

type TitleService interface {
	List(ctx context.Context, page, limit int, filter repository.TitleFilter) ([]models.Title, map[uint]float64, int64, error)
	Get(ctx context.Context, id uint) (*models.Title, *float64, error)
	Create(ctx context.Context, input TitleInput) (*models.Title, error)
	Update(ctx context.Context, id uint, patch TitlePatch) (*models.Title, *float64, error)
	Delete(ctx context.Context, id uint) error
}

type titleService struct {
	repo       repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	covers     CoverStorage
	logger     *logrus.Logger
}

func NewTitleService(repo repository.TitleRepository, categories repository.CategoryRepository, genres repository.GenreRepository, logger *logrus.Logger) TitleService {
	return &titleService{
		repo:       repo,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

func (s *titleService) SetCoverStorage(covers CoverStorage) {
	s.covers = covers
}

func (s *titleService) List(ctx context.Context, page, limit int, filter repository.TitleFilter) ([]models.Title, map[uint]float64, int64, error) {
	titles, total, err := s.repo.FindAll(ctx, page, limit, filter)
	if err != nil {
		return nil, nil, 0, err
	}

	ids := make([]uint, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}

	ratings, err := s.repo.Ratings(ctx, ids)
	if err != nil {
		return nil, nil, 0, err
	}

	return titles, ratings, total, nil
}

func (s *titleService) Get(ctx context.Context, id uint) (*models.Title, *float64, error) {
	title, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if title == nil {
		return nil, nil, utils.NewNotFoundError("title not found")
	}

	rating, err := s.ratingFor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return title, rating, nil
}

func (s *titleService) Create(ctx context.Context, input TitleInput) (*models.Title, error) {
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		CoverURL:    input.CoverURL,
	}

	if err := s.resolveCategory(ctx, input.CategorySlug, title); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, input.GenreSlugs)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.repo.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("failed to create title: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":   title.ID,
		"name": title.Name,
	}).Info("Title created")
	return title, nil
}

func (s *titleService) Update(ctx context.Context, id uint, patch TitlePatch) (*models.Title, *float64, error) {
	title, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if title == nil {
		return nil, nil, utils.NewNotFoundError("title not found")
	}

	if patch.Name != nil {
		title.Name = *patch.Name
	}
	if patch.Year != nil {
		if err := validateYear(*patch.Year); err != nil {
			return nil, nil, err
		}
		title.Year = *patch.Year
	}
	if patch.Description != nil {
		title.Description = *patch.Description
	}
	if patch.CategorySlug != nil {
		if err := s.resolveCategory(ctx, *patch.CategorySlug, title); err != nil {
			return nil, nil, err
		}
	}
	if patch.GenreSlugs != nil {
		genres, err := s.resolveGenres(ctx, *patch.GenreSlugs)
		if err != nil {
			return nil, nil, err
		}
		title.Genres = genres
	}
	oldCover := ""
	if patch.CoverURL != nil && *patch.CoverURL != title.CoverURL {
		oldCover = title.CoverURL
		title.CoverURL = *patch.CoverURL
	}

	if err := s.repo.Update(ctx, title); err != nil {
		return nil, nil, fmt.Errorf("failed to update title: %w", err)
	}

	// The replaced object is dropped only once the row is saved.
	s.dropCover(oldCover)

	rating, err := s.ratingFor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return title, rating, nil
}

func (s *titleService) Delete(ctx context.Context, id uint) error {
	title, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if title == nil {
		return utils.NewNotFoundError("title not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete title: %w", err)
	}

	s.dropCover(title.CoverURL)
	return nil
}

func (s *titleService) ratingFor(ctx context.Context, id uint) (*float64, error) {
	ratings, err := s.repo.Ratings(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	if r, ok := ratings[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string, title *models.Title) error {
	if slug == "" {
		title.CategoryID = nil
		title.Category = nil
		return nil
	}

	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if category == nil {
		return utils.NewFieldValidationError(map[string][]string{
			"category": {fmt.Sprintf("unknown category slug %q", slug)},
		})
	}

	title.CategoryID = &category.ID
	title.Category = category
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return []models.Genre{}, nil
	}

	genres, err := s.genres.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to look up genres: %w", err)
	}

	found := make(map[string]bool, len(genres))
	for _, g := range genres {
		found[g.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, utils.NewFieldValidationError(map[string][]string{
				"genre": {fmt.Sprintf("unknown genre slug %q", slug)},
			})
		}
	}

	return genres, nil
}

func (s *titleService) dropCover(coverURL string) {
	if s.covers == nil || coverURL == "" {
		return
	}
	if err := s.covers.DeleteCover(coverURL); err != nil {
		s.logger.WithError(err).Warn("Failed to delete old cover object")
	}
}

func validateYear(year int) error {
	if year > time.Now().Year() {
		return utils.NewFieldValidationError(map[string][]string{
			"year": {"year must not be in the future"},
		})
	}
	return nil
}
