package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"dukaan-be/internal/middleware"
	"dukaan-be/internal/utils"
)

type Handler struct {
	Svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{Svc: svc}
}

type createOrderRequest struct {
	OrderID  string `json:"orderId"`
	Amount   string `json:"amountMajorUnits"`
	Currency string `json:"currency"`
}

// CreateOrderHandler handles POST /checkout/orders.
func (h *Handler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	gw, err := h.Svc.CreateOrder(r.Context(), CreateOrderParams{
		OrderID:     req.OrderID,
		UserID:      userID,
		AmountMajor: req.Amount,
		Currency:    req.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAmountInvalid), errors.Is(err, ErrCurrencyUnsupported):
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrOrderAlreadyPaid):
			utils.WriteJSONError(w, err.Error(), http.StatusConflict)
		case errors.Is(err, ErrGatewayUnavailable):
			utils.WriteJSONError(w, "payment gateway unavailable", http.StatusBadGateway)
		default:
			utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(gw)
}
