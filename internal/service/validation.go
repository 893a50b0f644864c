package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/elitebuy/internal/constants"
)

// 校验提示文案，直接展示给用户
const (
	MsgDeliveryIncomplete  = "Please fill in all delivery information fields"
	MsgMobileMoneyRequired = "Please enter and confirm your mobile money number"
	MsgPhoneMismatch       = "Phone numbers do not match"
	MsgMobileMoneyFormat   = "Please enter a valid 10-digit phone number starting with 0"
	MsgCardIncomplete      = "Please fill in all card details"
	MsgCardNumberFormat    = "Please enter a valid 16-digit card number"
	MsgCardExpiryFormat    = "Please enter expiry date in MM/YY format"
	MsgCardCVVFormat       = "Please enter a valid CVV"
	MsgMobileNetwork       = "Please select a valid mobile network"
	MsgPaymentMethod       = "Please select a valid payment method"
)

var (
	mobileMoneyPattern = regexp.MustCompile(`^0\d{9}$`)
	cardNumberPattern  = regexp.MustCompile(`^\d{16}$`)
	cardExpiryPattern  = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cardCVVPattern     = regexp.MustCompile(`^\d{3,4}$`)
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern        = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	nonDigitPattern    = regexp.MustCompile(`\D`)
)

// ValidationResult 校验结果
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func validResult() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalidResult(message string) ValidationResult {
	return ValidationResult{Valid: false, Message: message}
}

// DeliveryInfo 收货信息
type DeliveryInfo struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
}

// PaymentInput 支付方式相关的表单数据
type PaymentInput struct {
	PhoneNumber        string `json:"phone_number"`
	ConfirmPhoneNumber string `json:"confirm_phone_number"`
	MobileNetwork      string `json:"mobile_network"`
	CardNumber         string `json:"card_number"`
	ExpiryDate         string `json:"expiry_date"`
	CVV                string `json:"cvv"`
	CardholderName     string `json:"cardholder_name"`
}

// ValidateDeliveryInfo 校验收货信息是否完整
func ValidateDeliveryInfo(info DeliveryInfo) ValidationResult {
	if info.FullName == "" || info.Address == "" || info.City == "" || info.Phone == "" {
		return invalidResult(MsgDeliveryIncomplete)
	}
	return validResult()
}

// ValidateMobileMoney 校验移动支付号码，需要两次输入一致
func ValidateMobileMoney(phone, confirm string) ValidationResult {
	if phone == "" || confirm == "" {
		return invalidResult(MsgMobileMoneyRequired)
	}
	if phone != confirm {
		return invalidResult(MsgPhoneMismatch)
	}
	if !mobileMoneyPattern.MatchString(phone) {
		return invalidResult(MsgMobileMoneyFormat)
	}
	return validResult()
}

// ValidateMobileNetwork 校验运营商，空值视为默认 MTN
func ValidateMobileNetwork(network string) ValidationResult {
	switch network {
	case "", constants.MobileNetworkMTN, constants.MobileNetworkVodafone, constants.MobileNetworkAirtelTigo:
		return validResult()
	default:
		return invalidResult(MsgMobileNetwork)
	}
}

// NormalizeMobileNetwork 返回实际使用的运营商
func NormalizeMobileNetwork(network string) string {
	if network == "" {
		return constants.MobileNetworkMTN
	}
	return network
}

// ValidateCard 校验银行卡信息
func ValidateCard(number, expiry, cvv string) ValidationResult {
	if number == "" || expiry == "" || cvv == "" {
		return invalidResult(MsgCardIncomplete)
	}
	if !cardNumberPattern.MatchString(StripCardNumber(number)) {
		return invalidResult(MsgCardNumberFormat)
	}
	if !cardExpiryPattern.MatchString(expiry) {
		return invalidResult(MsgCardExpiryFormat)
	}
	if !cardCVVPattern.MatchString(cvv) {
		return invalidResult(MsgCardCVVFormat)
	}
	return validResult()
}

// StripCardNumber 去除卡号中的空白，包括不换行空格等 Unicode 空白
func StripCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\uFEFF' {
			return -1
		}
		return r
	}, number)
}

// ValidateCheckout 按支付方式依次校验，返回第一个失败项
func ValidateCheckout(method string, delivery DeliveryInfo, payment PaymentInput) ValidationResult {
	if result := ValidateDeliveryInfo(delivery); !result.Valid {
		return result
	}
	switch method {
	case constants.PaymentMethodMobileMoney:
		if result := ValidateMobileMoney(payment.PhoneNumber, payment.ConfirmPhoneNumber); !result.Valid {
			return result
		}
		return ValidateMobileNetwork(payment.MobileNetwork)
	case constants.PaymentMethodCard:
		return ValidateCard(payment.CardNumber, payment.ExpiryDate, payment.CVV)
	case constants.PaymentMethodCashOnDelivery:
		return validResult()
	default:
		return invalidResult(MsgPaymentMethod)
	}
}

// ValidateName 校验姓名
func ValidateName(name string) ValidationResult {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalidResult("Name is required")
	}
	if len(trimmed) < 2 {
		return invalidResult("Name must be at least 2 characters long")
	}
	if len(trimmed) > 50 {
		return invalidResult("Name must be less than 50 characters")
	}
	if !namePattern.MatchString(trimmed) {
		return invalidResult("Name can only contain letters, spaces, hyphens, and apostrophes")
	}
	return validResult()
}

// ValidateEmail 校验邮箱
func ValidateEmail(email string) ValidationResult {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return invalidResult("Email is required")
	}
	if !emailPattern.MatchString(trimmed) {
		return invalidResult("Please enter a valid email address")
	}
	return validResult()
}

// ValidatePassword 校验密码长度
func ValidatePassword(password string) ValidationResult {
	if password == "" {
		return invalidResult("Password is required")
	}
	if len(password) < 6 {
		return invalidResult("Password must be at least 6 characters long")
	}
	if len(password) > 128 {
		return invalidResult("Password must be less than 128 characters")
	}
	return validResult()
}

// ValidatePhone 校验联系电话，只统计数字位数
func ValidatePhone(phone string) ValidationResult {
	if strings.TrimSpace(phone) == "" {
		return invalidResult("Phone number is required")
	}
	digits := nonDigitPattern.ReplaceAllString(phone, "")
	if len(digits) < 10 {
		return invalidResult("Phone number must be at least 10 digits")
	}
	if len(digits) > 15 {
		return invalidResult("Phone number must be less than 15 digits")
	}
	return validResult()
}

// ValidateRequired 校验必填字段
func ValidateRequired(value, fieldName string) ValidationResult {
	if strings.TrimSpace(value) == "" {
		return invalidResult(fieldName + " is required")
	}
	return validResult()
}

// ValidateRegion 校验收货大区
func ValidateRegion(region string) bool {
	for _, item := range constants.GhanaRegions {
		if item == region {
			return true
		}
	}
	return false
}

func firstInvalid(results ...ValidationResult) error {
	for _, result := range results {
		if !result.Valid {
			return newValidationError(result.Message)
		}
	}
	return nil
}
