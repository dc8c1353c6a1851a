package repository

import (
	"context"
	"errors"
	"time"

	"review-backend/internal/database"
	"review-backend/internal/models"

	"gorm.io/gorm"
)

// TitleFilter carries the supported list filters; zero values mean
// "not filtered".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Title, error)
	FindAll(ctx context.Context, page, limit int, filter TitleFilter) ([]models.Title, int64, error)
	// Ratings returns the average review score per title for the given
	// ids; titles without reviews are absent from the map.
	Ratings(ctx context.Context, titleIDs []uint) (map[uint]float64, error)
}

type titleRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewTitleRepository(db *database.Database) TitleRepository {
	return &titleRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *titleRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres").Save(title).Error; err != nil {
			return err
		}
		// Save upserts associations but never removes stale ones.
		return tx.Model(title).Association("Genres").Replace(title.Genres)
	})
}

func (r *titleRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Delete(&models.Title{}, id).Error
}

func (r *titleRepository) FindByID(ctx context.Context, id uint) (*models.Title, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var title models.Title
	err := r.db.WithContext(ctx).Preload("Category").Preload("Genres").First(&title, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) FindAll(ctx context.Context, page, limit int, filter TitleFilter) ([]models.Title, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var titles []models.Title
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Title{})

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != 0 {
		query = query.Where("titles.year = ?", filter.Year)
	}

	if err := query.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Distinct().Preload("Category").Preload("Genres").
		Order("titles.name ASC").
		Offset(offset).Limit(limit).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (r *titleRepository) Ratings(ctx context.Context, titleIDs []uint) (map[uint]float64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	ratings := make(map[uint]float64, len(titleIDs))
	if len(titleIDs) == 0 {
		return ratings, nil
	}

	type row struct {
		TitleID uint
		Avg     float64
	}
	var rows []row

	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("title_id, AVG(score) as avg").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		ratings[rw.TitleID] = rw.Avg
	}
	return ratings, nil
}
