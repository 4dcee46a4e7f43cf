package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
)

type statusBody struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed"`
}

func decode(body string) error {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dest statusBody
	return DecodeJSONBody(req, &dest)
}

func TestDecodeJSONBody(t *testing.T) {
	if err := decode(`{"status":"pending"}`); err != nil {
		t.Fatalf("expected valid body, got %v", err)
	}

	cases := map[string]string{
		"empty":     ``,
		"malformed": `{"status":`,
		"unknown":   `{"status":"pending","extra":1}`,
		"trailing":  `{"status":"pending"}{"status":"pending"}`,
		"oneof":     `{"status":"shipped"}`,
		"oversized": `{"status":"` + strings.Repeat("a", MaxBodyBytes) + `"}`,
	}
	for name, body := range cases {
		err := decode(body)
		if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestSanitizeStringKeepsRunes(t *testing.T) {
	if got := SanitizeString("  قفطان ملكي  ", 5); got != "قفطان" {
		t.Fatalf("unexpected cut %q", got)
	}
	if got := SanitizeString(" 16 ", 0); got != "16" {
		t.Fatalf("unexpected trim %q", got)
	}
}

func TestParseOptionalQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=1700000000000&featured=true&bad=x", nil)

	from, err := ParseOptionalInt64(req, "from")
	if err != nil || from == nil || *from != 1700000000000 {
		t.Fatalf("from: %v %v", from, err)
	}
	if to, err := ParseOptionalInt64(req, "to"); err != nil || to != nil {
		t.Fatalf("absent to: %v %v", to, err)
	}
	if featured, err := ParseOptionalBool(req, "featured"); err != nil || !*featured {
		t.Fatalf("featured: %v %v", featured, err)
	}
	if _, err := ParseOptionalBool(req, "bad"); err == nil {
		t.Fatal("expected bad boolean to fail")
	}
}
