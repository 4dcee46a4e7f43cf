package product

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tenuestore/tenue-backend/pkg/db"
	"github.com/tenuestore/tenue-backend/pkg/db/models"
	dbtypes "github.com/tenuestore/tenue-backend/pkg/db/types"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

// Service exposes the storefront catalog and its back-office management.
type Service interface {
	ListPublic(ctx context.Context, filter PublicFilter) ([]ProductDTO, error)
	GetPublic(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListAdmin(ctx context.Context) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input ProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error)
}

type imageResolver interface {
	ResolveAll(ctx context.Context, refs []string) []string
}

type service struct {
	repo       Repository
	categories categoryLookup
	images     imageResolver
	logg       *logger.Logger
}

// NewService constructs a product service instance.
func NewService(repo Repository, categories categoryLookup, images imageResolver, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category lookup required")
	}
	if images == nil {
		return nil, fmt.Errorf("image resolver required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, categories: categories, images: images, logg: logg}, nil
}

func (s *service) ListPublic(ctx context.Context, filter PublicFilter) ([]ProductDTO, error) {
	list, err := s.repo.List(ctx, ListFilter{ActiveOnly: true, Featured: filter.Featured, CategoryID: filter.CategoryID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return s.assembleAll(ctx, list)
}

// GetPublic hides inactive products behind NOT_FOUND.
func (s *service) GetPublic(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "load product")
	}
	if !p.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.assembleOne(ctx, *p)
}

func (s *service) ListAdmin(ctx context.Context) ([]ProductDTO, error) {
	list, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return s.assembleAll(ctx, list)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "load product")
	}
	return s.assembleOne(ctx, *p)
}

func (s *service) Create(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	p, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", p.ID.String()), "product.created")
	return s.Get(ctx, p.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error) {
	p, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, mapRepoError(err, "update product")
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", id.String()), "product.updated")
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "delete product")
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", id.String()), "product.deleted")
	return nil
}

func (s *service) assembleOne(ctx context.Context, p models.Product) (*ProductDTO, error) {
	out, err := s.assembleAll(ctx, []models.Product{p})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// assembleAll joins category names with one lookup for the whole page.
func (s *service) assembleAll(ctx context.Context, list []models.Product) ([]ProductDTO, error) {
	names, err := s.categoryNames(ctx, list)
	if err != nil {
		return nil, err
	}
	out := make([]ProductDTO, 0, len(list))
	for _, p := range list {
		name := UncategorizedName
		if p.CategoryID != nil {
			if n, ok := names[*p.CategoryID]; ok {
				name = n
			}
		}
		out = append(out, assemble(p, name, s.images.ResolveAll(ctx, p.Images)))
	}
	return out, nil
}

func (s *service) categoryNames(ctx context.Context, list []models.Product) (map[uuid.UUID]string, error) {
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0)
	for _, p := range list {
		if p.CategoryID == nil {
			continue
		}
		if _, ok := seen[*p.CategoryID]; ok {
			continue
		}
		seen[*p.CategoryID] = struct{}{}
		ids = append(ids, *p.CategoryID)
	}
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load categories")
	}
	for _, c := range categories {
		if strings.TrimSpace(c.NameFr) != "" {
			names[c.ID] = c.NameFr
		}
	}
	return names, nil
}

func (s *service) buildProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	nameAr := strings.TrimSpace(input.NameAr)
	nameFr := strings.TrimSpace(input.NameFr)
	if nameAr == "" {
		return nil, fieldError("nameAr", "nameAr is required")
	}
	if nameFr == "" {
		return nil, fieldError("nameFr", "nameFr is required")
	}
	if !validPrice(input.RentPrice) {
		return nil, fieldError("rentPrice", "rent price must be a non-negative number")
	}
	var sale *decimal.Decimal
	if input.SalePrice != nil {
		if !validPrice(*input.SalePrice) {
			return nil, fieldError("salePrice", "sale price must be a non-negative number")
		}
		v := decimal.NewFromFloat(*input.SalePrice)
		sale = &v
	}

	if input.CategoryID != nil {
		found, err := s.categories.FindByIDs(ctx, []uuid.UUID{*input.CategoryID})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		if len(found) == 0 {
			return nil, fieldError("categoryId", "unknown category")
		}
	}

	return &models.Product{
		NameAr:        nameAr,
		NameFr:        nameFr,
		DescriptionAr: strings.TrimSpace(input.DescriptionAr),
		DescriptionFr: strings.TrimSpace(input.DescriptionFr),
		RentPrice:     decimal.NewFromFloat(input.RentPrice),
		SalePrice:     sale,
		Images:        cleanList(input.Images),
		Sizes:         cleanList(input.Sizes),
		Colors:        cleanList(input.Colors),
		CategoryID:    input.CategoryID,
		IsActive:      input.IsActive,
		IsFeatured:    input.IsFeatured,
	}, nil
}

func validPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func cleanList(values []string) dbtypes.StringList {
	out := make(dbtypes.StringList, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func fieldError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]string{"field": field})
}

func mapRepoError(err error, action string) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
