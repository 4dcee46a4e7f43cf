package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tenuestore/tenue-backend/pkg/db/models"
	"github.com/tenuestore/tenue-backend/pkg/enums"
)

// Repository defines persistence operations for the orders table. Lookups
// addressing a missing id return gorm.ErrRecordNotFound.
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// ListInRange returns orders created within [from, to], newest first. A
	// non-positive limit returns every match.
	ListInRange(ctx context.Context, from, to time.Time, limit int) ([]models.Order, error)
	ListByStatus(ctx context.Context, status enums.OrderStatus, limit int) ([]models.Order, error)
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	UpdateSyncStatus(ctx context.Context, id uuid.UUID, status enums.SyncStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByPhoneSince(ctx context.Context, phone string, since time.Time) (int64, error)
}

// SheetPusher mirrors a freshly created order into the spreadsheet.
type SheetPusher interface {
	PushNew(ctx context.Context, order models.Order) enums.SyncStatus
}
