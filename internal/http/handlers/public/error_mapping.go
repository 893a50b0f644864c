package public

import (
	handlershared "github.com/elitebuy/internal/http/handlers/shared"
	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError = handlershared.MappedError

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var productErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductNotAvailable, Code: response.CodeBadRequest, Key: "error.product_not_available"},
}

var cartErrorRules = handlershared.ConcatMappedErrors(productErrorRules, []mappedHandlerError{
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.invalid_quantity"},
})

var checkoutErrorRules = handlershared.ConcatMappedErrors(productErrorRules, []mappedHandlerError{
	{Target: service.ErrEmptyCart, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrPaymentMethodInvalid, Code: response.CodeBadRequest, Key: "error.payment_method_invalid"},
	{Target: service.ErrMobileNetworkInvalid, Code: response.CodeBadRequest, Key: "error.payment_method_invalid"},
	{Target: service.ErrPaymentNotPending, Code: response.CodeConflict, Key: "error.payment_not_pending"},
})

var paymentConfirmErrorRules = []mappedHandlerError{
	{Target: service.ErrPaymentNotFound, Code: response.CodeNotFound, Key: "error.payment_not_found"},
	{Target: service.ErrPaymentNotPending, Code: response.CodeConflict, Key: "error.payment_not_pending"},
	{Target: service.ErrPaymentNotConfirmable, Code: response.CodeBadRequest, Key: "error.payment_not_confirmable"},
}

var authErrorRules = []mappedHandlerError{
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaDisabled, Code: response.CodeBadRequest, Key: "error.captcha_disabled"},
}

var wishlistErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrWishlistExists, Code: response.CodeConflict, Key: "error.wishlist_exists"},
	{Target: service.ErrWishlistNotFound, Code: response.CodeNotFound, Key: "error.wishlist_not_found"},
}

var addressErrorRules = []mappedHandlerError{
	{Target: service.ErrAddressNotFound, Code: response.CodeNotFound, Key: "error.address_not_found"},
	{Target: service.ErrInvalidRegion, Code: response.CodeBadRequest, Key: "error.region_invalid"},
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.order_create_failed")
}
