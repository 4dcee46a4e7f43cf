package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/tenuestore/tenue-backend/internal/orders"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
)

type stubSubmitter struct {
	got *orders.SubmitOrderInput
	err error
	id  uuid.UUID
}

func (s *stubSubmitter) Submit(_ context.Context, input orders.SubmitOrderInput) (*orders.SubmitResult, error) {
	s.got = &input
	if s.err != nil {
		return nil, s.err
	}
	return &orders.SubmitResult{OrderID: s.id}, nil
}

const validOrderBody = `{
	"productName": "Caftan Royal",
	"size": "M",
	"quantity": 2,
	"customerName": "Amina Benali",
	"phone": "0555123456",
	"wilayaCode": "16",
	"wilayaName": "Alger",
	"city": "Bab Ezzouar",
	"deliveryPlace": "home",
	"deliveryPrice": 400,
	"language": "fr",
	"source": "instagram",
	"website": "",
	"formStartedAt": 1700000000000
}`

func TestSubmitOrderCreated(t *testing.T) {
	stub := &stubSubmitter{id: uuid.New()}
	rec := serve(t, http.MethodPost, "/api/v1/orders", "/api/v1/orders", validOrderBody, SubmitOrder(stub, nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var data struct {
		OrderID string `json:"orderId"`
	}
	decodeData(t, rec, &data)
	if data.OrderID != stub.id.String() {
		t.Fatalf("unexpected order id %q", data.OrderID)
	}
	if stub.got.Quantity != 2 || stub.got.FormStartedAt != 1700000000000 || *stub.got.Size != "M" {
		t.Fatalf("payload not mapped: %+v", stub.got)
	}
	if stub.got.Color != nil {
		t.Fatalf("expected nil color, got %v", *stub.got.Color)
	}
}

func TestSubmitOrderHoneypotReachesService(t *testing.T) {
	stub := &stubSubmitter{err: pkgerrors.New(pkgerrors.CodeValidation, "invalid request")}
	body := `{"productName":"x","website":"http://spam.example","formStartedAt":1}`
	rec := serve(t, http.MethodPost, "/api/v1/orders", "/api/v1/orders", body, SubmitOrder(stub, nil))

	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != string(pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %d %s", rec.Code, rec.Body.String())
	}
	if stub.got.Honeypot != "http://spam.example" {
		t.Fatalf("honeypot not forwarded: %q", stub.got.Honeypot)
	}
}

func TestSubmitOrderMalformedBody(t *testing.T) {
	stub := &stubSubmitter{}
	for _, body := range []string{`{`, `{"quantity":"two"}`, `{"unknown":1}`} {
		rec := serve(t, http.MethodPost, "/api/v1/orders", "/api/v1/orders", body, SubmitOrder(stub, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if stub.got != nil {
		t.Fatal("service should not be reached")
	}
}
