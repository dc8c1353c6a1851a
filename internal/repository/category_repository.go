package repository

import (
	"context"
	"errors"
	"time"

	"review-backend/internal/database"
	"review-backend/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindAll(ctx context.Context, page, limit int, search string) ([]models.Category, int64, error)
}

type categoryRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewCategoryRepository(db *database.Database) CategoryRepository {
	return &categoryRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *categoryRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Category{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var category models.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, page, limit int, search string) ([]models.Category, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var categories []models.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Category{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}
