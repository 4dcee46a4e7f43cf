package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tenuestore/tenue-backend/pkg/enums"
)

// Order is a storefront purchase or rental request. Each submission is a new
// row; duplicates are never merged.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	ProductName   string              `gorm:"column:product_name;not null"`
	Size          *string             `gorm:"column:size"`
	Color         *string             `gorm:"column:color"`
	Quantity      int                 `gorm:"column:quantity;not null"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	Phone         string              `gorm:"column:phone;not null;index:idx_orders_phone_created_at,priority:1"`
	WilayaCode    string              `gorm:"column:wilaya_code;not null"`
	WilayaName    *string             `gorm:"column:wilaya_name"`
	City          string              `gorm:"column:city;not null"`
	DeliveryPlace enums.DeliveryPlace `gorm:"column:delivery_place;type:delivery_place;not null"`
	DeliveryPrice decimal.Decimal     `gorm:"column:delivery_price;type:numeric(12,2);not null;default:0"`
	Language      enums.Language      `gorm:"column:language;type:order_language;not null"`
	Source        string              `gorm:"column:source;not null;default:''"`
	Status        enums.OrderStatus   `gorm:"column:status;type:order_status;not null;default:'pending';index"`
	SyncStatus    enums.SyncStatus    `gorm:"column:sync_status;type:sync_status;not null;default:'pending'"`
	CreatedAt     time.Time           `gorm:"column:created_at;not null;index;index:idx_orders_phone_created_at,priority:2"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

// BeforeCreate assigns the identifier and normalizes the creation time to UTC.
func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	o.CreatedAt = o.CreatedAt.UTC()
	return nil
}
