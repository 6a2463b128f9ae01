package cart

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrFailedClearCart      = errors.New("failed to clear cart")
)
