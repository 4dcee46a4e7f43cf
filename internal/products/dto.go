package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/tenuestore/tenue-backend/pkg/db/models"
)

// UncategorizedName is shown when a product has no resolvable category.
const UncategorizedName = "Uncategorized"

// ProductInput is the admin payload for create and update. Prices stay
// floats until validated.
type ProductInput struct {
	NameAr        string
	NameFr        string
	DescriptionAr string
	DescriptionFr string
	RentPrice     float64
	SalePrice     *float64
	Images        []string
	Sizes         []string
	Colors        []string
	CategoryID    *uuid.UUID
	IsActive      bool
	IsFeatured    bool
}

// PublicFilter holds the storefront listing query.
type PublicFilter struct {
	Featured   *bool
	CategoryID *uuid.UUID
}

// ProductDTO is the assembled read model: raw fields plus the category name
// and resolved image URLs.
type ProductDTO struct {
	ID            uuid.UUID  `json:"id"`
	NameAr        string     `json:"nameAr"`
	NameFr        string     `json:"nameFr"`
	DescriptionAr string     `json:"descriptionAr"`
	DescriptionFr string     `json:"descriptionFr"`
	RentPrice     float64    `json:"rentPrice"`
	SalePrice     *float64   `json:"salePrice,omitempty"`
	Price         float64    `json:"price"`
	ImageRefs     []string   `json:"imageRefs"`
	Images        []string   `json:"images"`
	Sizes         []string   `json:"sizes"`
	Colors        []string   `json:"colors"`
	CategoryID    *uuid.UUID `json:"categoryId,omitempty"`
	CategoryName  string     `json:"categoryName"`
	IsActive      bool       `json:"isActive"`
	IsFeatured    bool       `json:"isFeatured"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func assemble(p models.Product, categoryName string, images []string) ProductDTO {
	var sale *float64
	if p.SalePrice != nil {
		v := p.SalePrice.InexactFloat64()
		sale = &v
	}
	return ProductDTO{
		ID:            p.ID,
		NameAr:        p.NameAr,
		NameFr:        p.NameFr,
		DescriptionAr: p.DescriptionAr,
		DescriptionFr: p.DescriptionFr,
		RentPrice:     p.RentPrice.InexactFloat64(),
		SalePrice:     sale,
		Price:         p.EffectivePrice().InexactFloat64(),
		ImageRefs:     nonNil(p.Images),
		Images:        images,
		Sizes:         nonNil(p.Sizes),
		Colors:        nonNil(p.Colors),
		CategoryID:    p.CategoryID,
		CategoryName:  categoryName,
		IsActive:      p.IsActive,
		IsFeatured:    p.IsFeatured,
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
