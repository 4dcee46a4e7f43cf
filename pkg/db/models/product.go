package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbtypes "github.com/tenuestore/tenue-backend/pkg/db/types"
)

// Product is a rentable or sellable catalog item. Images hold raw storage
// references; URLs are resolved at read time.
type Product struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	NameAr        string             `gorm:"column:name_ar;not null"`
	NameFr        string             `gorm:"column:name_fr;not null"`
	DescriptionAr string             `gorm:"column:description_ar;not null;default:''"`
	DescriptionFr string             `gorm:"column:description_fr;not null;default:''"`
	RentPrice     decimal.Decimal    `gorm:"column:rent_price;type:numeric(12,2);not null;default:0"`
	SalePrice     *decimal.Decimal   `gorm:"column:sale_price;type:numeric(12,2)"`
	Images        dbtypes.StringList `gorm:"column:images;type:jsonb;not null;default:'[]'"`
	Sizes         dbtypes.StringList `gorm:"column:sizes;type:jsonb;not null;default:'[]'"`
	Colors        dbtypes.StringList `gorm:"column:colors;type:jsonb;not null;default:'[]'"`
	CategoryID    *uuid.UUID         `gorm:"column:category_id;type:uuid;index"`
	IsActive      bool               `gorm:"column:is_active;not null"`
	IsFeatured    bool               `gorm:"column:is_featured;not null"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// EffectivePrice returns the sale price when set, otherwise the rent price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.RentPrice
}
