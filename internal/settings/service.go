package settings

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tenuestore/tenue-backend/pkg/db"
	"github.com/tenuestore/tenue-backend/pkg/db/models"
	dbtypes "github.com/tenuestore/tenue-backend/pkg/db/types"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

// SettingsDTO is the public view of the store settings. UpdatedAt is nil
// while the defaults are in effect.
type SettingsDTO struct {
	DeliveryPrice float64            `json:"deliveryPrice"`
	WilayaPrices  map[string]float64 `json:"wilayaPrices"`
	PixelIDs      []string           `json:"pixelIds"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty"`
}

// UpsertInput replaces the whole settings record.
type UpsertInput struct {
	DeliveryPrice float64
	WilayaPrices  map[string]float64
	PixelIDs      []string
}

// DeliveryQuote is the price the checkout form shows for a wilaya.
type DeliveryQuote struct {
	WilayaCode string  `json:"wilayaCode"`
	Price      float64 `json:"price"`
	Override   bool    `json:"override"`
}

type Service interface {
	Get(ctx context.Context) (*SettingsDTO, error)
	Upsert(ctx context.Context, input UpsertInput) (*SettingsDTO, error)
	DeliveryPriceFor(ctx context.Context, wilayaCode string) (*DeliveryQuote, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) Get(ctx context.Context) (*SettingsDTO, error) {
	row, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return toDTO(row), nil
}

func (s *service) Upsert(ctx context.Context, input UpsertInput) (*SettingsDTO, error) {
	if !validPrice(input.DeliveryPrice) {
		return nil, fieldError("deliveryPrice", "delivery price must be a non-negative number")
	}

	prices := make(dbtypes.PriceMap, len(input.WilayaPrices))
	for code, price := range input.WilayaPrices {
		code = strings.TrimSpace(code)
		if code == "" {
			return nil, fieldError("wilayaPrices", "wilaya code must not be empty")
		}
		if !validPrice(price) {
			return nil, fieldError("wilayaPrices", fmt.Sprintf("delivery price for wilaya %s must be a non-negative number", code))
		}
		prices[code] = decimal.NewFromFloat(price)
	}

	row := &models.StoreSettings{
		Key:           models.StoreSettingsKey,
		DeliveryPrice: decimal.NewFromFloat(input.DeliveryPrice),
		WilayaPrices:  prices,
		PixelIDs:      cleanPixelIDs(input.PixelIDs),
		UpdatedAt:     s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save settings")
	}
	s.logg.Info(s.logg.WithField(ctx, "wilaya_overrides", len(prices)), "settings.updated")
	return toDTO(row), nil
}

func (s *service) DeliveryPriceFor(ctx context.Context, wilayaCode string) (*DeliveryQuote, error) {
	code := strings.TrimSpace(wilayaCode)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wilaya code is required")
	}
	row, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if price, ok := row.WilayaPrices[code]; ok {
		return &DeliveryQuote{WilayaCode: code, Price: price.InexactFloat64(), Override: true}, nil
	}
	return &DeliveryQuote{WilayaCode: code, Price: row.DeliveryPrice.InexactFloat64()}, nil
}

// load returns the stored row or zero defaults when none exists yet.
func (s *service) load(ctx context.Context) (*models.StoreSettings, error) {
	row, err := s.repo.Get(ctx)
	if err == nil {
		return row, nil
	}
	if db.IsNotFound(err) {
		return &models.StoreSettings{
			Key:          models.StoreSettingsKey,
			WilayaPrices: dbtypes.PriceMap{},
			PixelIDs:     dbtypes.StringList{},
		}, nil
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
}

func toDTO(row *models.StoreSettings) *SettingsDTO {
	prices := make(map[string]float64, len(row.WilayaPrices))
	for code, price := range row.WilayaPrices {
		prices[code] = price.InexactFloat64()
	}
	pixels := []string(row.PixelIDs)
	if pixels == nil {
		pixels = []string{}
	}
	dto := &SettingsDTO{
		DeliveryPrice: row.DeliveryPrice.InexactFloat64(),
		WilayaPrices:  prices,
		PixelIDs:      pixels,
	}
	if !row.UpdatedAt.IsZero() {
		updated := row.UpdatedAt.UTC()
		dto.UpdatedAt = &updated
	}
	return dto
}

func cleanPixelIDs(ids []string) dbtypes.StringList {
	seen := make(map[string]struct{}, len(ids))
	out := make(dbtypes.StringList, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func validPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func fieldError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]string{"field": field})
}
