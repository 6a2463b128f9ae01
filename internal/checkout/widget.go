package checkout

import "context"

// Handlers receive the hosted surface's asynchronous callbacks. Exactly one
// of them fires per opened session, at a moment the user controls.
type Handlers struct {
	OnSuccess func(gatewayPaymentID, gatewayOrderID, signature string)
	OnFailure func(code, description string)
	OnDismiss func()
}

// Widget is the externally rendered interactive payment surface. Open
// returns once the surface is shown; the outcome arrives via Handlers.
type Widget interface {
	Open(opts Options, h Handlers) error
}

// LoadFunc fetches the widget's loader resource. It is invoked at most once
// per process, however many sessions request it.
type LoadFunc func(ctx context.Context) (Widget, error)
