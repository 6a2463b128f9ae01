package payment

// Reason codes carried by the single typed error callback. UserCancelled is a
// normal outcome, not a system failure; SignatureMismatch is security-relevant.
const (
	ReasonValidation         = "VALIDATION_ERROR"
	ReasonGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	ReasonUserCancelled      = "USER_CANCELLED"
	ReasonSignatureMismatch  = "SIGNATURE_MISMATCH"
	ReasonServerError        = "SERVER_ERROR"
)
