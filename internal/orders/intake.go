package orders

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/tenuestore/tenue-backend/pkg/db/models"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
)

var mobilePhoneRe = regexp.MustCompile(`^0[567][0-9]{8}$`)

const (
	minNameLen    = 3
	maxNameLen    = 50
	minCityLen    = 2
	maxCityLen    = 50
	minQuantity   = 1
	maxQuantity   = 10
	defaultSource = "website"

	// maxDeliveryPrice is the largest value a numeric(12,2) column holds.
	maxDeliveryPrice = 9999999999.99
)

// GateConfig holds the anti-abuse thresholds.
type GateConfig struct {
	MinFillTime time.Duration
	PhoneWindow time.Duration
	PhoneLimit  int
}

// rejection carries the public error plus a stable reason for logs and metrics.
type rejection struct {
	reason string
	err    *pkgerrors.Error
}

func reject(reason, message string) *rejection {
	return &rejection{reason: reason, err: pkgerrors.New(pkgerrors.CodeValidation, message)}
}

func rejectField(reason, field, message string) *rejection {
	r := reject(reason, message)
	r.err = r.err.WithDetails(map[string]string{"field": field})
	return r
}

// checkSubmission runs the storage-free checks in order and returns the first
// failure. On success it returns the order ready to persist.
func checkSubmission(input SubmitOrderInput, now time.Time, minFill time.Duration) (*models.Order, *rejection) {
	if strings.TrimSpace(input.Honeypot) != "" {
		return nil, reject("honeypot", "invalid request")
	}

	if input.FormStartedAt <= 0 || now.Sub(time.UnixMilli(input.FormStartedAt)) < minFill {
		return nil, reject("too_fast", "submission too fast")
	}

	name := strings.TrimSpace(input.CustomerName)
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return nil, rejectField("name", "customerName", "name must be between 3 and 50 characters")
	}

	phone := input.Phone
	if !mobilePhoneRe.MatchString(phone) {
		return nil, rejectField("phone", "phone", "invalid phone number")
	}

	city := strings.TrimSpace(input.City)
	if n := utf8.RuneCountInString(city); n < minCityLen || n > maxCityLen {
		return nil, rejectField("city", "city", "city must be between 2 and 50 characters")
	}

	if math.IsNaN(input.DeliveryPrice) || math.IsInf(input.DeliveryPrice, 0) || input.DeliveryPrice < 0 || input.DeliveryPrice > maxDeliveryPrice {
		return nil, rejectField("delivery_price", "deliveryPrice", "invalid delivery price")
	}

	q := input.Quantity
	if math.IsNaN(q) || math.IsInf(q, 0) || q != math.Trunc(q) || q < minQuantity || q > maxQuantity {
		return nil, rejectField("quantity", "quantity", "quantity must be an integer between 1 and 10")
	}

	place, err := enums.ParseDeliveryPlace(strings.TrimSpace(input.DeliveryPlace))
	if err != nil {
		return nil, rejectField("delivery_place", "deliveryPlace", "invalid delivery place")
	}

	lang, err := enums.ParseLanguage(strings.TrimSpace(input.Language))
	if err != nil {
		return nil, rejectField("language", "language", "invalid language")
	}

	product := strings.TrimSpace(input.ProductName)
	if product == "" {
		return nil, rejectField("product", "productName", "product name is required")
	}

	wilaya := strings.TrimSpace(input.WilayaCode)
	if wilaya == "" {
		return nil, rejectField("wilaya", "wilayaCode", "wilaya is required")
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = defaultSource
	}

	return &models.Order{
		ProductName:   product,
		Size:          optionalText(input.Size),
		Color:         optionalText(input.Color),
		Quantity:      int(q),
		CustomerName:  name,
		Phone:         phone,
		WilayaCode:    wilaya,
		WilayaName:    optionalText(input.WilayaName),
		City:          city,
		DeliveryPlace: place,
		DeliveryPrice: decimal.NewFromFloat(input.DeliveryPrice),
		Language:      lang,
		Source:        source,
		Status:        enums.OrderStatusPending,
		SyncStatus:    enums.SyncStatusPending,
		CreatedAt:     now.UTC(),
	}, nil
}

// checkPhoneWindow counts recent orders for the phone; the caller persists
// only when this passes. Two concurrent submissions can both pass.
func (s *service) checkPhoneWindow(ctx context.Context, phone string, now time.Time) (*rejection, error) {
	count, err := s.repo.CountByPhoneSince(ctx, phone, now.Add(-s.gate.PhoneWindow))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count recent orders")
	}
	if count >= int64(s.gate.PhoneLimit) {
		return reject("phone_rate_limit", "too many attempts, try again later"), nil
	}
	return nil, nil
}

func optionalText(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
