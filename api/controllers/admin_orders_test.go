package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/tenuestore/tenue-backend/internal/orders"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
)

type stubOrderManager struct {
	listInput *orders.ListOrdersInput
	updated   map[uuid.UUID]enums.OrderStatus
	deleted   []uuid.UUID
	known     map[uuid.UUID]orders.OrderDTO
}

func newStubOrderManager(known ...orders.OrderDTO) *stubOrderManager {
	s := &stubOrderManager{updated: map[uuid.UUID]enums.OrderStatus{}, known: map[uuid.UUID]orders.OrderDTO{}}
	for _, o := range known {
		s.known[o.ID] = o
	}
	return s
}

func (s *stubOrderManager) Get(_ context.Context, id uuid.UUID) (*orders.OrderDTO, error) {
	o, ok := s.known[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return &o, nil
}

func (s *stubOrderManager) List(_ context.Context, input orders.ListOrdersInput) ([]orders.OrderDTO, error) {
	s.listInput = &input
	out := make([]orders.OrderDTO, 0, len(s.known))
	for _, o := range s.known {
		out = append(out, o)
	}
	return out, nil
}

func (s *stubOrderManager) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) error {
	if _, ok := s.known[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	s.updated[id] = status
	return nil
}

func (s *stubOrderManager) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.known[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubResyncer struct {
	status enums.SyncStatus
	err    error
}

func (s stubResyncer) Resync(context.Context, uuid.UUID) (enums.SyncStatus, error) {
	return s.status, s.err
}

func TestAdminListOrdersParsesQuery(t *testing.T) {
	stub := newStubOrderManager(orders.OrderDTO{ID: uuid.New(), Status: enums.OrderStatusPending})
	rec := serve(t, http.MethodGet, "/orders", "/orders?from=1000&to=2000&status=confirmed&limit=900", "", AdminListOrders(stub, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	in := stub.listInput
	if in == nil || *in.From != 1000 || *in.To != 2000 || *in.Status != enums.OrderStatusConfirmed || in.Limit != 900 {
		t.Fatalf("unexpected input %+v", in)
	}
	var list []orders.OrderDTO
	decodeData(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("expected one order, got %d", len(list))
	}
}

func TestAdminListOrdersRejectsBadQuery(t *testing.T) {
	stub := newStubOrderManager()
	for _, target := range []string{"/orders?status=shipped", "/orders?from=abc&to=1", "/orders?limit=-1"} {
		rec := serve(t, http.MethodGet, "/orders", target, "", AdminListOrders(stub, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
	if stub.listInput != nil {
		t.Fatal("service should not be reached")
	}
}

func TestAdminOrderDetailAndMutations(t *testing.T) {
	id := uuid.New()
	stub := newStubOrderManager(orders.OrderDTO{ID: id, CustomerName: "Amina", Status: enums.OrderStatusPending})

	rec := serve(t, http.MethodGet, "/orders/{orderId}", "/orders/"+id.String(), "", AdminGetOrder(stub, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}

	rec = serve(t, http.MethodGet, "/orders/{orderId}", "/orders/"+uuid.NewString(), "", AdminGetOrder(stub, nil))
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != string(pkgerrors.CodeNotFound) {
		t.Fatalf("missing: expected 404, got %d", rec.Code)
	}

	rec = serve(t, http.MethodGet, "/orders/{orderId}", "/orders/not-a-uuid", "", AdminGetOrder(stub, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", rec.Code)
	}

	rec = serve(t, http.MethodPatch, "/orders/{orderId}/status", "/orders/"+id.String()+"/status", `{"status":"delivered"}`, AdminUpdateOrderStatus(stub, nil))
	if rec.Code != http.StatusOK || stub.updated[id] != enums.OrderStatusDelivered {
		t.Fatalf("status: got %d, updated=%v", rec.Code, stub.updated)
	}

	rec = serve(t, http.MethodPatch, "/orders/{orderId}/status", "/orders/"+id.String()+"/status", `{"status":"lost"}`, AdminUpdateOrderStatus(stub, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: expected 400, got %d", rec.Code)
	}

	rec = serve(t, http.MethodDelete, "/orders/{orderId}", "/orders/"+id.String(), "", AdminDeleteOrder(stub, nil))
	if rec.Code != http.StatusNoContent || len(stub.deleted) != 1 {
		t.Fatalf("delete: got %d, deleted=%v", rec.Code, stub.deleted)
	}
}

func TestAdminResyncOrder(t *testing.T) {
	id := uuid.New()
	rec := serve(t, http.MethodPost, "/orders/{orderId}/resync", "/orders/"+id.String()+"/resync", "", AdminResyncOrder(stubResyncer{status: enums.SyncStatusFailed}, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var data struct {
		SyncStatus string `json:"syncStatus"`
	}
	decodeData(t, rec, &data)
	if data.SyncStatus != string(enums.SyncStatusFailed) {
		t.Fatalf("unexpected sync status %q", data.SyncStatus)
	}

	rec = serve(t, http.MethodPost, "/orders/{orderId}/resync", "/orders/"+id.String()+"/resync", "", AdminResyncOrder(stubResyncer{err: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
