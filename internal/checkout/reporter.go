package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"dukaan-be/internal/logger"
	"dukaan-be/internal/payment"

	"go.uber.org/zap"
)

// HTTPReporter posts failure reports to the backend audit endpoint.
// Errors are logged and dropped; the checkout flow never sees them.
type HTTPReporter struct {
	auditURL   string
	authToken  string
	httpClient *http.Client
}

func NewHTTPReporter(auditURL, authToken string) *HTTPReporter {
	return &HTTPReporter{
		auditURL:  auditURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (p *HTTPReporter) ReportFailure(ctx context.Context, report payment.FailureReport) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", report.OrderID),
		zap.String("gateway_order_id", report.GatewayOrderID),
	)

	body := map[string]interface{}{
		"orderId":        report.OrderID,
		"gatewayOrderId": report.GatewayOrderID,
		"error": map[string]string{
			"code":        report.Code,
			"description": report.Description,
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Warn("failed to marshal failure report", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.auditURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Warn("failed to build failure report request", zap.Error(err))
		return
	}
	req.Header.Add("Content-Type", "application/json")
	if p.authToken != "" {
		req.Header.Add("Authorization", "Bearer "+p.authToken)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Warn("failure report delivery failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Warn("failure report rejected", zap.Int("status", resp.StatusCode))
	}
}
