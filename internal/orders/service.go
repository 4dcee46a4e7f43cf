package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tenuestore/tenue-backend/pkg/db"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
	"github.com/tenuestore/tenue-backend/pkg/metrics"
	"github.com/tenuestore/tenue-backend/pkg/pagination"
)

// Service exposes order intake for the storefront and order management for
// the back office.
type Service interface {
	Submit(ctx context.Context, input SubmitOrderInput) (*SubmitResult, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, input ListOrdersInput) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Drain blocks until dispatched sheet pushes finish or ctx ends.
	Drain(ctx context.Context) error
}

// Config tunes the intake gate and listing defaults.
type Config struct {
	Gate             GateConfig
	DefaultListLimit int
	PushTimeout      time.Duration
}

type service struct {
	repo     Repository
	pusher   SheetPusher
	logg     *logger.Logger
	metrics  *metrics.OrderIntakeMetrics
	gate     GateConfig
	limit    int
	timeout  time.Duration
	now      func() time.Time
	dispatch func(func())
	inflight sync.WaitGroup
}

// NewService builds the orders service. Sheet pushes after a submission run
// on their own goroutine.
func NewService(repo Repository, pusher SheetPusher, logg *logger.Logger, m *metrics.OrderIntakeMetrics, cfg Config) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if pusher == nil {
		return nil, fmt.Errorf("sheet pusher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.Gate.PhoneLimit <= 0 || cfg.Gate.PhoneWindow <= 0 {
		return nil, fmt.Errorf("phone rate limit must be positive")
	}
	timeout := cfg.PushTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	svc := &service{
		repo:    repo,
		pusher:  pusher,
		logg:    logg,
		metrics: m,
		gate:    cfg.Gate,
		limit:   pagination.NormalizeLimit(0, cfg.DefaultListLimit),
		timeout: timeout,
		now:     time.Now,
	}
	svc.dispatch = svc.goTracked
	return svc, nil
}

func (s *service) goTracked(fn func()) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		fn()
	}()
}

// Drain waits for in-flight sheet pushes. Pushes still running when ctx ends
// keep their pending sync status and can be resynced later.
func (s *service) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *service) Submit(ctx context.Context, input SubmitOrderInput) (*SubmitResult, error) {
	now := s.now()

	order, rej := checkSubmission(input, now, s.gate.MinFillTime)
	if rej == nil {
		var err error
		rej, err = s.checkPhoneWindow(ctx, order.Phone, now)
		if err != nil {
			return nil, err
		}
	}
	if rej != nil {
		s.metrics.Rejected(rej.reason)
		s.logg.Warn(s.logg.WithField(ctx, "reason", rej.reason), "order.rejected")
		return nil, rej.err
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	s.metrics.Accepted()

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(ctx, "order.created")

	created := *order
	pushCtx := context.WithoutCancel(ctx)
	s.dispatch(func() {
		pushCtx, cancel := context.WithTimeout(pushCtx, s.timeout)
		defer cancel()
		s.pusher.PushNew(pushCtx, created)
	})

	return &SubmitResult{OrderID: order.ID}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "load order")
	}
	dto := FromModel(*order)
	return &dto, nil
}

// List applies the range query first and filters by status afterwards, so a
// ranged listing with a status can return fewer rows than the limit.
func (s *service) List(ctx context.Context, input ListOrdersInput) ([]OrderDTO, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	if (input.From == nil) != (input.To == nil) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "from and to must be provided together")
	}
	limit := pagination.NormalizeLimit(input.Limit, s.limit)

	if input.From != nil {
		rng := pagination.RangeFromMillis(*input.From, *input.To)
		if !rng.Valid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not be before from")
		}
		page, err := s.repo.ListInRange(ctx, rng.From, rng.To, limit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
		}
		if input.Status == nil {
			return fromModels(page), nil
		}
		filtered := page[:0]
		for _, o := range page {
			if o.Status == *input.Status {
				filtered = append(filtered, o)
			}
		}
		return fromModels(filtered), nil
	}

	if input.Status != nil {
		list, err := s.repo.ListByStatus(ctx, *input.Status, limit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
		}
		return fromModels(list), nil
	}

	list, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return fromModels(list), nil
}

// UpdateStatus assigns any of the six statuses regardless of the current one.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return mapRepoError(err, "update order status")
	}
	ctx = s.logg.WithFields(s.logg.WithOrderID(ctx, id.String()), map[string]any{"status": string(status)})
	s.logg.Info(ctx, "order.status_updated")
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "delete order")
	}
	s.logg.Info(s.logg.WithOrderID(ctx, id.String()), "order.deleted")
	return nil
}

func mapRepoError(err error, action string) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
