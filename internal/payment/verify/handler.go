package verify

import (
	"encoding/json"
	"net/http"

	"dukaan-be/internal/logger"
	"dukaan-be/internal/order"
	"dukaan-be/internal/payment"
	"dukaan-be/internal/utils"

	"go.uber.org/zap"
)

// Handler exposes the verification callback and the failure audit endpoint.
type Handler struct {
	Verifier *Verifier
	Outcome  *OutcomeHandler
	Orders   order.Service
	Attempts payment.Repository
}

func NewHandler(v *Verifier, o *OutcomeHandler, orders order.Service, attempts payment.Repository) *Handler {
	return &Handler{Verifier: v, Outcome: o, Orders: orders, Attempts: attempts}
}

// VerifyHandler handles POST /payments/verify.
func (h *Handler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.OrderID == "" || req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.Signature == "" {
		utils.WriteJSONError(w, "missing verification fields", http.StatusBadRequest)
		return
	}

	res, attempt, err := h.Verifier.Verify(r.Context(), req)
	if err != nil {
		logger.FromCtx(r.Context()).Error("verification failed", zap.Error(err))
		utils.WriteJSONError(w, "verification unavailable", http.StatusInternalServerError)
		return
	}

	if attempt != nil {
		ord, err := h.Orders.GetOrder(r.Context(), req.OrderID)
		if err != nil {
			logger.FromCtx(r.Context()).Error("order lookup failed after verification", zap.Error(err))
			utils.WriteJSONError(w, "verification unavailable", http.StatusInternalServerError)
			return
		}
		if err := h.Outcome.Handle(r.Context(), ord, attempt); err != nil {
			logger.FromCtx(r.Context()).Error("outcome handling failed", zap.Error(err))
			utils.WriteJSONError(w, "verification unavailable", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

type failureReportRequest struct {
	OrderID        string `json:"orderId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Error          struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// FailureHandler handles POST /payments/failure, the best-effort audit sink
// for gateway-reported failures during the interactive flow.
func (h *Handler) FailureHandler(w http.ResponseWriter, r *http.Request) {
	var req failureReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	err := h.Attempts.SaveFailureEvent(r.Context(), payment.FailureReport{
		OrderID:        req.OrderID,
		GatewayOrderID: req.GatewayOrderID,
		Code:           req.Error.Code,
		Description:    req.Error.Description,
	})
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to persist failure event", zap.Error(err))
		utils.WriteJSONError(w, "failed to record failure", http.StatusInternalServerError)
		return
	}

	logger.FromCtx(r.Context()).Info("gateway failure recorded",
		zap.String("order_id", req.OrderID),
		zap.String("gateway_order_id", req.GatewayOrderID),
		zap.String("code", req.Error.Code),
	)

	w.WriteHeader(http.StatusAccepted)
}
