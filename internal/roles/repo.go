package roles

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tenuestore/tenue-backend/pkg/db/models"
)

// Repository stores at most one role per external user id.
type Repository interface {
	// Get returns gorm.ErrRecordNotFound for users without a row.
	Get(ctx context.Context, userID string) (*models.UserRole, error)
	Upsert(ctx context.Context, role *models.UserRole) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, userID string) (*models.UserRole, error) {
	var row models.UserRole
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Upsert(ctx context.Context, role *models.UserRole) error {
	role.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(role).Error
}
