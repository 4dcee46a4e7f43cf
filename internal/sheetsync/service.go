package sheetsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tenuestore/tenue-backend/pkg/db"
	"github.com/tenuestore/tenue-backend/pkg/db/models"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
	"github.com/tenuestore/tenue-backend/pkg/metrics"
	"github.com/tenuestore/tenue-backend/pkg/sheets"
)

const (
	triggerSubmit = "submit"
	triggerResync = "resync"
)

// Appender writes one row to the spreadsheet.
type Appender interface {
	AppendRow(ctx context.Context, row []string) error
}

// OrderStore is the slice of the orders repository the sync needs.
type OrderStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateSyncStatus(ctx context.Context, id uuid.UUID, status enums.SyncStatus) error
}

// Service mirrors orders into the spreadsheet and records the outcome on the
// order's sync status. Push failures never propagate to the caller.
type Service interface {
	PushNew(ctx context.Context, order models.Order) enums.SyncStatus
	Resync(ctx context.Context, id uuid.UUID) (enums.SyncStatus, error)
}

type service struct {
	store    OrderStore
	appender Appender
	logg     *logger.Logger
	metrics  *metrics.SheetSyncMetrics
	loc      *time.Location
	now      func() time.Time
}

// NewService builds the sync service. A nil appender means credentials are
// missing: every push is skipped and marked failed.
func NewService(store OrderStore, appender Appender, logg *logger.Logger, m *metrics.SheetSyncMetrics, loc *time.Location) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("order store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		store:    store,
		appender: appender,
		logg:     logg,
		metrics:  m,
		loc:      loc,
		now:      time.Now,
	}, nil
}

// PushNew stamps the row with the push time.
func (s *service) PushNew(ctx context.Context, order models.Order) enums.SyncStatus {
	ctx = s.logg.WithFields(ctx, map[string]any{"order_id": order.ID.String(), "trigger": triggerSubmit})
	status := s.push(ctx, order, s.now(), triggerSubmit)
	if err := s.store.UpdateSyncStatus(ctx, order.ID, status); err != nil {
		s.logg.Error(ctx, "sheet_sync.status_update_failed", err)
	}
	return status
}

// Resync re-reads the order and pushes it again, stamped with its stored
// creation time.
func (s *service) Resync(ctx context.Context, id uuid.UUID) (enums.SyncStatus, error) {
	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"order_id": id.String(), "trigger": triggerResync})
	status := s.push(ctx, *order, order.CreatedAt, triggerResync)
	if err := s.store.UpdateSyncStatus(ctx, id, status); err != nil {
		if db.IsNotFound(err) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sync status")
	}
	return status, nil
}

func (s *service) push(ctx context.Context, order models.Order, at time.Time, trigger string) enums.SyncStatus {
	if s.appender == nil {
		s.metrics.Observe(metrics.SyncResultSkipped, trigger, 0)
		s.logg.Warn(ctx, "sheet_sync.skipped_not_configured")
		return enums.SyncStatusFailed
	}

	started := s.now()
	err := s.appender.AppendRow(ctx, BuildRow(order, at, s.loc))
	elapsed := s.now().Sub(started)

	switch {
	case errors.Is(err, sheets.ErrNotConfigured):
		s.metrics.Observe(metrics.SyncResultSkipped, trigger, 0)
		s.logg.Warn(ctx, "sheet_sync.skipped_not_configured")
		return enums.SyncStatusFailed
	case err != nil:
		s.metrics.Observe(metrics.SyncResultFailed, trigger, elapsed)
		s.logg.Error(ctx, "sheet_sync.append_failed", err)
		return enums.SyncStatusFailed
	}

	s.metrics.Observe(metrics.SyncResultSuccess, trigger, elapsed)
	s.logg.Info(ctx, "sheet_sync.appended")
	return enums.SyncStatusSuccess
}
