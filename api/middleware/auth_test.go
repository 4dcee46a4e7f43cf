package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/tenuestore/tenue-backend/pkg/auth"
	"github.com/tenuestore/tenue-backend/pkg/config"
	"github.com/tenuestore/tenue-backend/pkg/enums"
)

type stubRoles map[string]enums.UserRole

func (s stubRoles) RoleOf(_ context.Context, userID string) (enums.UserRole, error) {
	if userID == "broken" {
		return "", errors.New("db down")
	}
	if role, ok := s[userID]; ok {
		return role, nil
	}
	return enums.UserRoleUser, nil
}

var testJWT = config.JWTConfig{Secret: "test-secret"}

func mintToken(t *testing.T, subject string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testJWT, time.Now(), subject, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func protected(roles RoleLookup, allowed ...enums.UserRole) (http.Handler, *string, *enums.UserRole) {
	var seenUser string
	var seenRole enums.UserRole
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = UserIDFromContext(r.Context())
		seenRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := Auth(testJWT, roles, nil)(RequireRole(nil, allowed...)(final))
	return h, &seenUser, &seenRole
}

func call(h http.Handler, authHeader string) int {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthAdmitsStaff(t *testing.T) {
	roles := stubRoles{"uid-admin": enums.UserRoleAdmin, "uid-mod": enums.UserRoleModerator}
	h, user, role := protected(roles, enums.UserRoleAdmin, enums.UserRoleModerator)

	if code := call(h, "Bearer "+mintToken(t, "uid-mod")); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if *user != "uid-mod" || *role != enums.UserRoleModerator {
		t.Fatalf("unexpected context %q %q", *user, *role)
	}
}

func TestAuthRejections(t *testing.T) {
	roles := stubRoles{"uid-mod": enums.UserRoleModerator}
	adminOnly, _, _ := protected(roles, enums.UserRoleAdmin)

	otherSecret, err := pkgAuth.MintAccessToken(config.JWTConfig{Secret: "other"}, time.Now(), "uid-mod", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad signature", "Bearer " + otherSecret, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"plain user", "Bearer " + mintToken(t, "uid-customer"), http.StatusForbidden},
		{"moderator on admin route", "Bearer " + mintToken(t, "uid-mod"), http.StatusForbidden},
		{"role store down", "Bearer " + mintToken(t, "broken"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code := call(adminOnly, tc.header); code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, code)
			}
		})
	}
}
