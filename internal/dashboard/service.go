package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tenuestore/tenue-backend/pkg/db/models"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/pagination"
)

// OrderReader loads every order created inside a range. A non-positive limit
// means no limit.
type OrderReader interface {
	ListInRange(ctx context.Context, from, to time.Time, limit int) ([]models.Order, error)
}

// ProductReader loads the whole catalog, oldest first.
type ProductReader interface {
	ListAll(ctx context.Context) ([]models.Product, error)
}

// Stats summarises orders for a time range using current catalog prices.
type Stats struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	CancelledOrders   int     `json:"cancelledOrders"`
	VerifiedOrders    int     `json:"verifiedOrders"`
}

type Service interface {
	Stats(ctx context.Context, fromMillis, toMillis int64) (*Stats, error)
}

type service struct {
	orders   OrderReader
	products ProductReader
}

func NewService(orders OrderReader, products ProductReader) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order reader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{orders: orders, products: products}, nil
}

func (s *service) Stats(ctx context.Context, fromMillis, toMillis int64) (*Stats, error) {
	rng := pagination.RangeFromMillis(fromMillis, toMillis)
	if !rng.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not be before from")
	}

	orders, err := s.orders.ListInRange(ctx, rng.From, rng.To, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders for stats")
	}
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products for stats")
	}

	return aggregate(orders, priceIndex(products)), nil
}

// priceIndex maps both localized names to the effective price. When two
// products share a name the later one wins.
func priceIndex(products []models.Product) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(products)*2)
	for _, p := range products {
		price := p.EffectivePrice()
		if p.NameAr != "" {
			prices[p.NameAr] = price
		}
		if p.NameFr != "" {
			prices[p.NameFr] = price
		}
	}
	return prices
}

func aggregate(orders []models.Order, prices map[string]decimal.Decimal) *Stats {
	revenue := decimal.Zero
	stats := &Stats{TotalOrders: len(orders)}

	for _, o := range orders {
		if o.Status == enums.OrderStatusCancelled {
			stats.CancelledOrders++
			continue
		}
		if o.Status == enums.OrderStatusConfirmed {
			stats.VerifiedOrders++
		}
		// unknown products count as zero
		unit := prices[o.ProductName]
		revenue = revenue.Add(unit.Mul(decimal.NewFromInt(int64(o.Quantity)))).Add(o.DeliveryPrice)
	}

	stats.TotalRevenue = revenue.Round(2).InexactFloat64()
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = revenue.DivRound(decimal.NewFromInt(int64(stats.TotalOrders)), 2).InexactFloat64()
	}
	return stats
}
