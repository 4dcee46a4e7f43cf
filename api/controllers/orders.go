package controllers

import (
	"context"
	"net/http"

	"github.com/tenuestore/tenue-backend/api/responses"
	"github.com/tenuestore/tenue-backend/api/validators"
	"github.com/tenuestore/tenue-backend/internal/orders"
	"github.com/tenuestore/tenue-backend/pkg/logger"
	"github.com/tenuestore/tenue-backend/pkg/types"
)

type orderSubmitter interface {
	Submit(ctx context.Context, input orders.SubmitOrderInput) (*orders.SubmitResult, error)
}

type submitOrderRequest struct {
	ProductName   string  `json:"productName"`
	Size          *string `json:"size"`
	Color         *string `json:"color"`
	Quantity      float64 `json:"quantity"`
	CustomerName  string  `json:"customerName"`
	Phone         string  `json:"phone"`
	WilayaCode    string  `json:"wilayaCode"`
	WilayaName    *string `json:"wilayaName"`
	City          string  `json:"city"`
	DeliveryPlace string  `json:"deliveryPlace"`
	DeliveryPrice float64 `json:"deliveryPrice"`
	Language      string  `json:"language"`
	Source        string  `json:"source"`
	Website       string  `json:"website"`
	FormStartedAt int64   `json:"formStartedAt"`
}

// SubmitOrder is the public checkout endpoint. Every rejection, abuse
// signals included, surfaces as a validation error.
func SubmitOrder(svc orderSubmitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), orders.SubmitOrderInput{
			ProductName:   req.ProductName,
			Size:          req.Size,
			Color:         req.Color,
			Quantity:      req.Quantity,
			CustomerName:  req.CustomerName,
			Phone:         req.Phone,
			WilayaCode:    req.WilayaCode,
			WilayaName:    req.WilayaName,
			City:          req.City,
			DeliveryPlace: req.DeliveryPlace,
			DeliveryPrice: req.DeliveryPrice,
			Language:      req.Language,
			Source:        req.Source,
			Honeypot:      req.Website,
			FormStartedAt: req.FormStartedAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, types.OrderCreated{OrderID: result.OrderID.String()})
	}
}
