package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tenuestore/tenue-backend/pkg/db"
	"github.com/tenuestore/tenue-backend/pkg/db/models"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

// ImageResolver turns a stored image reference into a displayable URL.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (string, bool)
}

type Service interface {
	List(ctx context.Context) ([]CategoryDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error)
	Create(ctx context.Context, input CategoryInput) (*CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	resolver ImageResolver
	logg     *logger.Logger
}

func NewService(repo Repository, resolver ImageResolver, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("image resolver required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, resolver: resolver, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(list))
	for _, c := range list {
		out = append(out, s.toDTO(ctx, c))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "load category")
	}
	dto := s.toDTO(ctx, *category)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CategoryInput) (*CategoryDTO, error) {
	category, err := buildCategory(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	s.logg.Info(s.logg.WithField(ctx, "category_id", category.ID.String()), "category.created")
	dto := s.toDTO(ctx, *category)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*CategoryDTO, error) {
	category, err := buildCategory(input)
	if err != nil {
		return nil, err
	}
	category.ID = id
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, mapRepoError(err, "update category")
	}
	s.logg.Info(s.logg.WithField(ctx, "category_id", id.String()), "category.updated")
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "delete category")
	}
	s.logg.Info(s.logg.WithField(ctx, "category_id", id.String()), "category.deleted")
	return nil
}

func (s *service) toDTO(ctx context.Context, c models.Category) CategoryDTO {
	images := []string{}
	if c.ImageRef != nil {
		if u, ok := s.resolver.Resolve(ctx, *c.ImageRef); ok {
			images = append(images, u)
		}
	}
	return CategoryDTO{
		ID:        c.ID,
		NameAr:    c.NameAr,
		NameFr:    c.NameFr,
		ImageRef:  c.ImageRef,
		Images:    images,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func buildCategory(input CategoryInput) (*models.Category, error) {
	nameAr := strings.TrimSpace(input.NameAr)
	nameFr := strings.TrimSpace(input.NameFr)
	if nameAr == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nameAr is required")
	}
	if nameFr == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nameFr is required")
	}
	var imageRef *string
	if input.ImageRef != nil {
		if ref := strings.TrimSpace(*input.ImageRef); ref != "" {
			imageRef = &ref
		}
	}
	return &models.Category{NameAr: nameAr, NameFr: nameFr, ImageRef: imageRef}, nil
}

func mapRepoError(err error, action string) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
