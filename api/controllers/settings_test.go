package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tenuestore/tenue-backend/internal/roles"
	"github.com/tenuestore/tenue-backend/internal/settings"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
)

type stubSettings struct {
	upserted *settings.UpsertInput
}

func (s *stubSettings) Get(context.Context) (*settings.SettingsDTO, error) {
	return &settings.SettingsDTO{DeliveryPrice: 500, WilayaPrices: map[string]float64{}, PixelIDs: []string{}}, nil
}

func (s *stubSettings) Upsert(_ context.Context, input settings.UpsertInput) (*settings.SettingsDTO, error) {
	s.upserted = &input
	if input.DeliveryPrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery price must be a non-negative number")
	}
	return &settings.SettingsDTO{DeliveryPrice: input.DeliveryPrice, WilayaPrices: input.WilayaPrices, PixelIDs: input.PixelIDs}, nil
}

func (s *stubSettings) DeliveryPriceFor(_ context.Context, code string) (*settings.DeliveryQuote, error) {
	if code == "16" {
		return &settings.DeliveryQuote{WilayaCode: code, Price: 400, Override: true}, nil
	}
	return &settings.DeliveryQuote{WilayaCode: code, Price: 500}, nil
}

type stubRoleService struct {
	roles map[string]enums.UserRole
}

func (s *stubRoleService) RoleOf(_ context.Context, userID string) (enums.UserRole, error) {
	if r, ok := s.roles[userID]; ok {
		return r, nil
	}
	return enums.UserRoleUser, nil
}

func (s *stubRoleService) Get(ctx context.Context, userID string) (*roles.RoleDTO, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	role, _ := s.RoleOf(ctx, userID)
	return &roles.RoleDTO{UserID: userID, Role: role}, nil
}

func (s *stubRoleService) Set(_ context.Context, userID string, role enums.UserRole) (*roles.RoleDTO, error) {
	if userID == "db-down" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("timeout"), "save user role")
	}
	s.roles[userID] = role
	return &roles.RoleDTO{UserID: userID, Role: role}, nil
}

func TestDeliveryPriceQuote(t *testing.T) {
	rec := serve(t, http.MethodGet, "/settings/delivery-price/{wilayaCode}", "/settings/delivery-price/16", "", DeliveryPrice(&stubSettings{}, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var quote settings.DeliveryQuote
	decodeData(t, rec, &quote)
	if quote.Price != 400 || !quote.Override {
		t.Fatalf("unexpected quote %+v", quote)
	}
}

func TestAdminUpsertSettings(t *testing.T) {
	stub := &stubSettings{}
	body := `{"deliveryPrice":600,"wilayaPrices":{"16":400,"31":550},"pixelIds":["123"]}`
	rec := serve(t, http.MethodPut, "/settings", "/settings", body, AdminUpsertSettings(stub, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.upserted.WilayaPrices["31"] != 550 || len(stub.upserted.PixelIDs) != 1 {
		t.Fatalf("unexpected input %+v", stub.upserted)
	}

	rec = serve(t, http.MethodPut, "/settings", "/settings", `{"deliveryPrice":-1}`, AdminUpsertSettings(stub, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = serve(t, http.MethodGet, "/settings", "/settings", "", GetSettings(stub, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
}

func TestAdminRoles(t *testing.T) {
	stub := &stubRoleService{roles: map[string]enums.UserRole{}}

	rec := serve(t, http.MethodPut, "/roles/{userId}", "/roles/uid-7", `{"role":"moderator"}`, AdminSetRole(stub, nil))
	if rec.Code != http.StatusOK || stub.roles["uid-7"] != enums.UserRoleModerator {
		t.Fatalf("set: got %d, roles=%v", rec.Code, stub.roles)
	}

	rec = serve(t, http.MethodPut, "/roles/{userId}", "/roles/uid-7", `{"role":"owner"}`, AdminSetRole(stub, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid role: expected 400, got %d", rec.Code)
	}

	rec = serve(t, http.MethodPut, "/roles/{userId}", "/roles/db-down", `{"role":"admin"}`, AdminSetRole(stub, nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("dependency: expected 503, got %d", rec.Code)
	}

	rec = serve(t, http.MethodGet, "/roles/{userId}", "/roles/uid-8", "", AdminGetRole(stub, nil))
	var dto roles.RoleDTO
	decodeData(t, rec, &dto)
	if dto.Role != enums.UserRoleUser {
		t.Fatalf("expected default user role, got %q", dto.Role)
	}
}
