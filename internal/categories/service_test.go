package categories

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tenuestore/tenue-backend/pkg/db/dbtest"
	"github.com/tenuestore/tenue-backend/pkg/db/models"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, ref string) (string, bool) {
	if strings.HasPrefix(ref, "missing/") {
		return "", false
	}
	return "https://cdn.test/" + ref, true
}

func newTestService(t *testing.T) Service {
	t.Helper()
	conn := dbtest.Open(t, &models.Category{}, &models.Product{})
	svc, err := NewService(NewRepository(conn), stubResolver{}, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func strPtr(v string) *string { return &v }

func TestServiceCreateResolvesImage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CategoryInput{NameAr: " قفاطين ", NameFr: "Caftans", ImageRef: strPtr("categories/caftans.jpg")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.NameAr != "قفاطين" {
		t.Fatalf("expected trimmed arabic name, got %q", created.NameAr)
	}
	if len(created.Images) != 1 || created.Images[0] != "https://cdn.test/categories/caftans.jpg" {
		t.Fatalf("unexpected images %v", created.Images)
	}

	noImage, err := svc.Create(ctx, CategoryInput{NameAr: "فساتين", NameFr: "Robes", ImageRef: strPtr("  ")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if noImage.ImageRef != nil || noImage.Images == nil || len(noImage.Images) != 0 {
		t.Fatalf("expected empty image list, got %+v", noImage)
	}

	broken, err := svc.Create(ctx, CategoryInput{NameAr: "برانس", NameFr: "Burnous", ImageRef: strPtr("missing/burnous.jpg")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(broken.Images) != 0 {
		t.Fatalf("unresolvable image must be dropped, got %v", broken.Images)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(list))
	}
}

func TestServiceValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CategoryInput{NameAr: "", NameFr: "Robes"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = svc.Create(ctx, CategoryInput{NameAr: "فساتين", NameFr: "  "})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CategoryInput{NameAr: "فساتين", NameFr: "Robes"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, CategoryInput{NameAr: "فساتين سهرة", NameFr: "Robes de soirée", ImageRef: strPtr("robes.jpg")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.NameFr != "Robes de soirée" || len(updated.Images) != 1 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := svc.Update(ctx, uuid.New(), CategoryInput{NameAr: "a", NameFr: "b"}); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
