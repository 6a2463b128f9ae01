package checkout

import (
	"context"
	"sync"

	"dukaan-be/internal/logger"
	"dukaan-be/internal/payment"

	"go.uber.org/zap"
)

// FailureReporter delivers best-effort audit reports for gateway-reported
// failures. Implementations must swallow their own errors.
type FailureReporter interface {
	ReportFailure(ctx context.Context, report payment.FailureReport)
}

// Session opens the hosted payment surface for a gateway order and resolves
// it to a single tagged Result. At most one session per order is live at a
// time, and the widget is loaded at most once per process.
type Session struct {
	loader   *Loader
	reporter FailureReporter

	displayName string
	description string

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSession(loader *Loader, reporter FailureReporter, displayName, description string) *Session {
	return &Session{
		loader:      loader,
		reporter:    reporter,
		displayName: displayName,
		description: description,
		inFlight:    make(map[string]struct{}),
	}
}

// Open runs one interactive checkout attempt. It suspends for as long as the
// user keeps the surface open; the session imposes no deadline of its own.
// Dismissal resolves to CANCELLED, never FAILED.
func (s *Session) Open(ctx context.Context, gw *payment.GatewayOrder, customer CustomerInfo) (*Result, error) {
	if err := s.acquire(gw.OrderID); err != nil {
		return nil, err
	}
	defer s.release(gw.OrderID)

	log := logger.FromCtx(ctx).With(
		zap.String("order_id", gw.OrderID),
		zap.String("gateway_order_id", gw.GatewayOrderID),
	)

	widget, err := s.loader.Get(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Error("widget load failed", zap.Error(err))
		return &Result{
			Status:             StatusFailed,
			FailureCode:        payment.ReasonGatewayUnavailable,
			FailureDescription: "payment widget could not be loaded",
		}, nil
	}

	opts := Options{
		KeyID:          gw.KeyID,
		GatewayOrderID: gw.GatewayOrderID,
		AmountMinor:    gw.AmountMinor,
		Currency:       gw.Currency,
		DisplayName:    s.displayName,
		Description:    s.description,
		OrderID:        gw.OrderID,
		Prefill:        customer,
	}

	resultCh := make(chan *Result, 1)
	var once sync.Once
	resolve := func(res *Result) {
		once.Do(func() { resultCh <- res })
	}

	err = widget.Open(opts, Handlers{
		OnSuccess: func(gatewayPaymentID, gatewayOrderID, signature string) {
			resolve(&Result{
				Status:           StatusSucceeded,
				GatewayPaymentID: gatewayPaymentID,
				GatewayOrderID:   gatewayOrderID,
				Signature:        signature,
			})
		},
		OnFailure: func(code, description string) {
			resolve(&Result{
				Status:             StatusFailed,
				FailureCode:        code,
				FailureDescription: description,
			})
		},
		OnDismiss: func() {
			resolve(&Result{Status: StatusCancelled})
		},
	})
	if err != nil {
		log.Error("widget open failed", zap.Error(err))
		return &Result{
			Status:             StatusFailed,
			FailureCode:        payment.ReasonGatewayUnavailable,
			FailureDescription: "payment widget could not be opened",
		}, nil
	}

	select {
	case res := <-resultCh:
		if res.Status == StatusFailed {
			s.reportFailure(ctx, gw, res)
		}
		return res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// reportFailure notifies the audit endpoint in the background. Delivery is
// best effort and never surfaces to the caller.
func (s *Session) reportFailure(ctx context.Context, gw *payment.GatewayOrder, res *Result) {
	if s.reporter == nil {
		return
	}

	report := payment.FailureReport{
		OrderID:        gw.OrderID,
		GatewayOrderID: gw.GatewayOrderID,
		Code:           res.FailureCode,
		Description:    res.FailureDescription,
	}

	go s.reporter.ReportFailure(context.WithoutCancel(ctx), report)
}

func (s *Session) acquire(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[orderID]; busy {
		return ErrCheckoutInProgress
	}
	s.inFlight[orderID] = struct{}{}
	return nil
}

func (s *Session) release(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, orderID)
}
