package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/tenuestore/tenue-backend/pkg/db/models"
	"github.com/tenuestore/tenue-backend/pkg/enums"
)

// SubmitOrderInput is the raw storefront payload. Quantity and delivery price
// stay floats so non-integers and non-finite values reach the gate instead of
// failing JSON decoding.
type SubmitOrderInput struct {
	ProductName   string
	Size          *string
	Color         *string
	Quantity      float64
	CustomerName  string
	Phone         string
	WilayaCode    string
	WilayaName    *string
	City          string
	DeliveryPlace string
	DeliveryPrice float64
	Language      string
	Source        string
	Honeypot      string
	FormStartedAt int64
}

// SubmitResult is returned once the order is persisted.
type SubmitResult struct {
	OrderID uuid.UUID
}

// ListOrdersInput filters the admin listing. From and To are epoch millis and
// must be given together.
type ListOrdersInput struct {
	From   *int64
	To     *int64
	Status *enums.OrderStatus
	Limit  int
}

// OrderDTO is the admin view of an order.
type OrderDTO struct {
	ID            uuid.UUID           `json:"id"`
	ProductName   string              `json:"productName"`
	Size          *string             `json:"size,omitempty"`
	Color         *string             `json:"color,omitempty"`
	Quantity      int                 `json:"quantity"`
	CustomerName  string              `json:"customerName"`
	Phone         string              `json:"phone"`
	WilayaCode    string              `json:"wilayaCode"`
	WilayaName    *string             `json:"wilayaName,omitempty"`
	City          string              `json:"city"`
	DeliveryPlace enums.DeliveryPlace `json:"deliveryPlace"`
	DeliveryPrice float64             `json:"deliveryPrice"`
	Language      enums.Language      `json:"language"`
	Source        string              `json:"source"`
	Status        enums.OrderStatus   `json:"status"`
	SyncStatus    enums.SyncStatus    `json:"syncStatus"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// FromModel maps the persisted order into its API shape.
func FromModel(o models.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID,
		ProductName:   o.ProductName,
		Size:          o.Size,
		Color:         o.Color,
		Quantity:      o.Quantity,
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		WilayaCode:    o.WilayaCode,
		WilayaName:    o.WilayaName,
		City:          o.City,
		DeliveryPlace: o.DeliveryPlace,
		DeliveryPrice: o.DeliveryPrice.InexactFloat64(),
		Language:      o.Language,
		Source:        o.Source,
		Status:        o.Status,
		SyncStatus:    o.SyncStatus,
		CreatedAt:     o.CreatedAt.UTC(),
	}
}

func fromModels(list []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, FromModel(o))
	}
	return out
}
