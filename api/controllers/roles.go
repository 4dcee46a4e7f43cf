package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tenuestore/tenue-backend/api/responses"
	"github.com/tenuestore/tenue-backend/api/validators"
	"github.com/tenuestore/tenue-backend/internal/roles"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

type setRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func AdminGetRole(svc roles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto, err := svc.Get(r.Context(), userIDParam(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func AdminSetRole(svc roles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setRoleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := enums.ParseUserRole(strings.TrimSpace(req.Role))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}
		dto, err := svc.Set(r.Context(), userIDParam(r), role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// External user ids are opaque strings capped at 128 bytes.
func userIDParam(r *http.Request) string {
	return validators.SanitizeString(chi.URLParam(r, "userId"), 128)
}
