package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tenuestore/tenue-backend/pkg/db/models"
)

// Repository reads and writes the single store_settings row.
type Repository interface {
	// Get returns gorm.ErrRecordNotFound until the first Upsert.
	Get(ctx context.Context) (*models.StoreSettings, error)
	Upsert(ctx context.Context, settings *models.StoreSettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*models.StoreSettings, error) {
	var row models.StoreSettings
	if err := r.db.WithContext(ctx).Where("key = ?", models.StoreSettingsKey).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Upsert(ctx context.Context, settings *models.StoreSettings) error {
	settings.Key = models.StoreSettingsKey
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"delivery_price", "wilaya_prices", "pixel_ids", "updated_at"}),
		}).
		Create(settings).Error
}
