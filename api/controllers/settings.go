package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tenuestore/tenue-backend/api/responses"
	"github.com/tenuestore/tenue-backend/api/validators"
	"github.com/tenuestore/tenue-backend/internal/settings"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

type upsertSettingsRequest struct {
	DeliveryPrice float64            `json:"deliveryPrice"`
	WilayaPrices  map[string]float64 `json:"wilayaPrices"`
	PixelIDs      []string           `json:"pixelIds"`
}

func GetSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// DeliveryPrice quotes the delivery fee the checkout form shows for a wilaya.
func DeliveryPrice(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := validators.SanitizeString(chi.URLParam(r, "wilayaCode"), 8)
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "wilaya code is required"))
			return
		}
		quote, err := svc.DeliveryPriceFor(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

func AdminUpsertSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertSettingsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Upsert(r.Context(), settings.UpsertInput{
			DeliveryPrice: req.DeliveryPrice,
			WilayaPrices:  req.WilayaPrices,
			PixelIDs:      req.PixelIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
