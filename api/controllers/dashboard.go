package controllers

import (
	"context"
	"net/http"

	"github.com/tenuestore/tenue-backend/api/responses"
	"github.com/tenuestore/tenue-backend/api/validators"
	"github.com/tenuestore/tenue-backend/internal/dashboard"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

type statsProvider interface {
	Stats(ctx context.Context, fromMillis, toMillis int64) (*dashboard.Stats, error)
}

// DashboardStats requires both from and to as epoch milliseconds.
func DashboardStats(svc statsProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := validators.ParseOptionalInt64(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseOptionalInt64(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if from == nil || to == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "from and to are required"))
			return
		}

		stats, err := svc.Stats(r.Context(), *from, *to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
