package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category still has products")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderCreateFailed   = errors.New("failed to place order")
	ErrInvalidOrderStatus  = errors.New("invalid order status transition")
)

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentNotPending     = errors.New("payment is not pending")
	ErrPaymentNotConfirmable = errors.New("payment does not need confirmation")
	ErrPaymentCanceled       = errors.New("payment canceled")
	ErrPaymentMethodInvalid  = errors.New("invalid payment method")
	ErrPaymentStatusInvalid  = errors.New("invalid payment status")
	ErrSettlementUnavailable = errors.New("payment settlement unavailable")
	ErrMobileNetworkInvalid  = errors.New("invalid mobile network")
	ErrCheckoutValidation    = errors.New("checkout validation failed")
	ErrCheckoutConfigInvalid = errors.New("checkout configuration invalid")
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrCannotDeleteSelf   = errors.New("cannot delete current user")
	ErrInvalidToken       = errors.New("invalid token")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrCaptchaDisabled    = errors.New("captcha disabled")
)

var (
	ErrWishlistExists   = errors.New("product already in wishlist")
	ErrWishlistNotFound = errors.New("wishlist item not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrInvalidRegion    = errors.New("invalid region")
)

// ValidationError 携带面向用户的校验提示
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap 允许 errors.Is(err, ErrCheckoutValidation)
func (e *ValidationError) Unwrap() error {
	return ErrCheckoutValidation
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

// ValidationMessage 提取校验提示，非校验错误返回空串
func ValidationMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return ""
}

var (
	ErrCategoryExists  = errors.New("category already exists")
	ErrProductInvalid  = errors.New("invalid product")
	ErrCategoryInvalid = errors.New("invalid category")
)
