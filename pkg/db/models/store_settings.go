package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/tenuestore/tenue-backend/pkg/db/types"
)

// StoreSettingsKey is the only key ever written to store_settings.
const StoreSettingsKey = "global"

// StoreSettings holds storefront-wide delivery pricing and tracking pixels.
type StoreSettings struct {
	Key           string             `gorm:"column:key;primaryKey"`
	DeliveryPrice decimal.Decimal    `gorm:"column:delivery_price;type:numeric(12,2);not null;default:0"`
	WilayaPrices  dbtypes.PriceMap   `gorm:"column:wilaya_prices;type:jsonb;not null;default:'{}'"`
	PixelIDs      dbtypes.StringList `gorm:"column:pixel_ids;type:jsonb;not null;default:'[]'"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;not null"`
}

func (StoreSettings) TableName() string { return "store_settings" }
