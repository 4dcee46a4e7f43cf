package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tenuestore/tenue-backend/pkg/db/models"
)

// ListFilter narrows a catalog listing. Nil pointers leave a dimension open.
type ListFilter struct {
	ActiveOnly bool
	Featured   *bool
	CategoryID *uuid.UUID
}

// Repository persists catalog products. Lookups and mutations addressing a
// missing id return gorm.ErrRecordNotFound.
type Repository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// List returns matching products, newest first.
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	// ListAll returns the whole catalog, oldest first.
	ListAll(ctx context.Context) ([]models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a product repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create writes every column. The model carries no gorm default for the
// flags, so an explicit false is stored as false.
func (r *repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Select("*").Create(product).Error
}

func (r *repository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name_ar":        product.NameAr,
			"name_fr":        product.NameFr,
			"description_ar": product.DescriptionAr,
			"description_fr": product.DescriptionFr,
			"rent_price":     product.RentPrice,
			"sale_price":     product.SalePrice,
			"images":         product.Images,
			"sizes":          product.Sizes,
			"colors":         product.Colors,
			"category_id":    product.CategoryID,
			"is_active":      product.IsActive,
			"is_featured":    product.IsFeatured,
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
