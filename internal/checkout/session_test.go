package checkout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dukaan-be/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	mu      sync.Mutex
	reports []payment.FailureReport
	fired   chan struct{}
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{fired: make(chan struct{}, 8)}
}

func (r *recordingReporter) ReportFailure(ctx context.Context, report payment.FailureReport) {
	r.mu.Lock()
	r.reports = append(r.reports, report)
	r.mu.Unlock()
	r.fired <- struct{}{}
}

func (r *recordingReporter) all() []payment.FailureReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]payment.FailureReport(nil), r.reports...)
}

func testGatewayOrder() *payment.GatewayOrder {
	return &payment.GatewayOrder{
		GatewayOrderID: "gw_1",
		OrderID:        "ORD1",
		AmountMinor:    10000,
		Currency:       "INR",
		KeyID:          "rzp_test_key",
	}
}

func loaderFor(w Widget) *Loader {
	return NewLoader(func(ctx context.Context) (Widget, error) {
		return w, nil
	})
}

func TestSession_Open(t *testing.T) {
	t.Run("SuccessCallbackResolvesSucceeded", func(t *testing.T) {
		widget := &fakeWidget{openFunc: func(opts Options, h Handlers) error {
			go h.OnSuccess("pay_1", opts.GatewayOrderID, "sig_1")
			return nil
		}}
		s := NewSession(loaderFor(widget), nil, "Dukaan", "Order payment")

		res, err := s.Open(context.Background(), testGatewayOrder(), CustomerInfo{Name: "Asha"})
		require.NoError(t, err)
		assert.Equal(t, StatusSucceeded, res.Status)
		assert.Equal(t, "pay_1", res.GatewayPaymentID)
		assert.Equal(t, "gw_1", res.GatewayOrderID)
		assert.Equal(t, "sig_1", res.Signature)
	})

	t.Run("DismissalIsCancelledNotFailed", func(t *testing.T) {
		widget := &fakeWidget{openFunc: func(opts Options, h Handlers) error {
			go h.OnDismiss()
			return nil
		}}
		reporter := newRecordingReporter()
		s := NewSession(loaderFor(widget), reporter, "Dukaan", "Order payment")

		res, err := s.Open(context.Background(), testGatewayOrder(), CustomerInfo{})
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, res.Status)
		assert.Empty(t, res.GatewayPaymentID)
		assert.Empty(t, res.FailureCode)
		assert.Empty(t, reporter.all())
	})

	t.Run("FirstCallbackWins", func(t *testing.T) {
		// A dismissal racing the success callback must never flip the
		// resolved outcome.
		widget := &fakeWidget{openFunc: func(opts Options, h Handlers) error {
			go func() {
				h.OnDismiss()
				h.OnSuccess("pay_late", opts.GatewayOrderID, "sig_late")
			}()
			return nil
		}}
		s := NewSession(loaderFor(widget), nil, "Dukaan", "Order payment")

		res, err := s.Open(context.Background(), testGatewayOrder(), CustomerInfo{})
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, res.Status)
	})

	t.Run("FailureIsReported", func(t *testing.T) {
		widget := &fakeWidget{openFunc: func(opts Options, h Handlers) error {
			go h.OnFailure("PAYMENT_DECLINED", "card declined")
			return nil
		}}
		reporter := newRecordingReporter()
		s := NewSession(loaderFor(widget), reporter, "Dukaan", "Order payment")

		res, err := s.Open(context.Background(), testGatewayOrder(), CustomerInfo{})
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, res.Status)
		assert.Equal(t, "PAYMENT_DECLINED", res.FailureCode)

		select {
		case <-reporter.fired:
		case <-time.After(2 * time.Second):
			t.Fatal("failure report never delivered")
		}

		reports := reporter.all()
		require.Len(t, reports, 1)
		assert.Equal(t, "ORD1", reports[0].OrderID)
		assert.Equal(t, "gw_1", reports[0].GatewayOrderID)
		assert.Equal(t, "PAYMENT_DECLINED", reports[0].Code)
	})

	t.Run("ConcurrentOpenSameOrderRejected", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		widget := &fakeWidget{openFunc: func(opts Options, h Handlers) error {
			go func() {
				close(entered)
				<-release
				h.OnDismiss()
			}()
			return nil
		}}
		s := NewSession(loaderFor(widget), nil, "Dukaan", "Order payment")

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := s.Open(context.Background(), testGatewayOrder(), CustomerInfo{})
			assert.NoError(t, err)
		}()

		<-entered
		_, err := s.Open(context.Background(), testGatewayOrder(), CustomerInfo{})
		assert.ErrorIs(t, err, ErrCheckoutInProgress)

		close(release)
		<-done

		// The guard clears once the first session resolves.
		widget.openFunc = func(opts Options, h Handlers) error {
			go h.OnDismiss()
			return nil
		}
		_, err = s.Open(context.Background(), testGatewayOrder(), CustomerInfo{})
		assert.NoError(t, err)
	})

	t.Run("DifferentOrdersOpenIndependently", func(t *testing.T) {
		release := make(chan struct{})
		var open int32
		widget := &fakeWidget{openFunc: func(opts Options, h Handlers) error {
			atomic.AddInt32(&open, 1)
			go func() {
				<-release
				h.OnDismiss()
			}()
			return nil
		}}
		s := NewSession(loaderFor(widget), nil, "Dukaan", "Order payment")

		other := testGatewayOrder()
		other.OrderID = "ORD2"
		other.GatewayOrderID = "gw_2"

		var wg sync.WaitGroup
		for _, gw := range []*payment.GatewayOrder{testGatewayOrder(), other} {
			wg.Add(1)
			go func(gw *payment.GatewayOrder) {
				defer wg.Done()
				_, err := s.Open(context.Background(), gw, CustomerInfo{})
				assert.NoError(t, err)
			}(gw)
		}

		for atomic.LoadInt32(&open) < 2 {
			time.Sleep(time.Millisecond)
		}
		close(release)
		wg.Wait()
	})

	t.Run("LoaderFailureResolvesGatewayUnavailable", func(t *testing.T) {
		loader := NewLoader(func(ctx context.Context) (Widget, error) {
			return nil, errors.New("script fetch failed")
		})
		s := NewSession(loader, nil, "Dukaan", "Order payment")

		res, err := s.Open(context.Background(), testGatewayOrder(), CustomerInfo{})
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, res.Status)
		assert.Equal(t, payment.ReasonGatewayUnavailable, res.FailureCode)
	})

	t.Run("WidgetOpenErrorResolvesGatewayUnavailable", func(t *testing.T) {
		widget := &fakeWidget{openFunc: func(opts Options, h Handlers) error {
			return errors.New("surface crashed")
		}}
		s := NewSession(loaderFor(widget), nil, "Dukaan", "Order payment")

		res, err := s.Open(context.Background(), testGatewayOrder(), CustomerInfo{})
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, res.Status)
		assert.Equal(t, payment.ReasonGatewayUnavailable, res.FailureCode)
	})

	t.Run("ContextCancellationUnblocksOpen", func(t *testing.T) {
		widget := &fakeWidget{openFunc: func(opts Options, h Handlers) error {
			return nil // no callback ever fires
		}}
		s := NewSession(loaderFor(widget), nil, "Dukaan", "Order payment")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Open(ctx, testGatewayOrder(), CustomerInfo{})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("WidgetReceivesOrderOptions", func(t *testing.T) {
		var got Options
		widget := &fakeWidget{openFunc: func(opts Options, h Handlers) error {
			got = opts
			go h.OnDismiss()
			return nil
		}}
		s := NewSession(loaderFor(widget), nil, "Dukaan", "Order payment")

		_, err := s.Open(context.Background(), testGatewayOrder(), CustomerInfo{Email: "asha@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "rzp_test_key", got.KeyID)
		assert.Equal(t, "gw_1", got.GatewayOrderID)
		assert.Equal(t, int64(10000), got.AmountMinor)
		assert.Equal(t, "INR", got.Currency)
		assert.Equal(t, "ORD1", got.OrderID)
		assert.Equal(t, "Dukaan", got.DisplayName)
		assert.Equal(t, "asha@example.com", got.Prefill.Email)
	})
}
