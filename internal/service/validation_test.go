package service

import (
	"testing"

	"github.com/elitebuy/internal/constants"
)

func TestValidateMobileMoney(t *testing.T) {
	cases := []struct {
		name    string
		phone   string
		confirm string
		valid   bool
		message string
	}{
		{name: "valid", phone: "0241234567", confirm: "0241234567", valid: true},
		{name: "missing leading zero", phone: "241234567", confirm: "241234567", message: MsgMobileMoneyFormat},
		{name: "too long", phone: "02412345678", confirm: "02412345678", message: MsgMobileMoneyFormat},
		{name: "mismatch", phone: "0241234567", confirm: "0241234568", message: MsgPhoneMismatch},
		{name: "mismatch invalid format", phone: "241234567", confirm: "0241234567", message: MsgPhoneMismatch},
		{name: "missing confirm", phone: "0241234567", confirm: "", message: MsgMobileMoneyRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateMobileMoney(tc.phone, tc.confirm)
			if got.Valid != tc.valid {
				t.Fatalf("valid want %v got %v (%s)", tc.valid, got.Valid, got.Message)
			}
			if got.Message != tc.message {
				t.Fatalf("message want %q got %q", tc.message, got.Message)
			}
		})
	}
}

func TestValidateCard(t *testing.T) {
	cases := []struct {
		name    string
		number  string
		expiry  string
		cvv     string
		message string
	}{
		{name: "valid with spaces", number: "4111 1111 1111 1111", expiry: "12/27", cvv: "123"},
		{name: "valid four digit cvv", number: "4111111111111111", expiry: "01/30", cvv: "1234"},
		{name: "valid with no-break spaces", number: "4111\u00a01111\u00a01111\u00a01111", expiry: "12/27", cvv: "123"},
		{name: "valid with tabs and thin spaces", number: "4111\t1111\u20091111\u30001111", expiry: "12/27", cvv: "123"},
		{name: "missing cvv", number: "4111111111111111", expiry: "12/27", message: MsgCardIncomplete},
		{name: "short number", number: "4111 1111 1111 111", expiry: "12/27", cvv: "123", message: MsgCardNumberFormat},
		{name: "letters in number", number: "4111 1111 1111 111a", expiry: "12/27", cvv: "123", message: MsgCardNumberFormat},
		{name: "bad expiry", number: "4111111111111111", expiry: "1227", cvv: "123", message: MsgCardExpiryFormat},
		{name: "bad cvv", number: "4111111111111111", expiry: "12/27", cvv: "12", message: MsgCardCVVFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateCard(tc.number, tc.expiry, tc.cvv)
			if tc.message == "" && !got.Valid {
				t.Fatalf("expected valid card, got %q", got.Message)
			}
			if got.Message != tc.message {
				t.Fatalf("message want %q got %q", tc.message, got.Message)
			}
		})
	}
}

func TestValidateCheckoutOrder(t *testing.T) {
	delivery := DeliveryInfo{FullName: "Ama Mensah", Address: "12 Ring Road", City: "Accra", Phone: "0241234567"}

	got := ValidateCheckout(constants.PaymentMethodCard, DeliveryInfo{FullName: "Ama"}, PaymentInput{})
	if got.Message != MsgDeliveryIncomplete {
		t.Fatalf("delivery should be checked first, got %q", got.Message)
	}

	got = ValidateCheckout(constants.PaymentMethodCashOnDelivery, delivery, PaymentInput{})
	if !got.Valid {
		t.Fatalf("cash on delivery needs no payment data, got %q", got.Message)
	}

	got = ValidateCheckout(constants.PaymentMethodMobileMoney, delivery, PaymentInput{
		PhoneNumber:        "0241234567",
		ConfirmPhoneNumber: "0241234567",
		MobileNetwork:      "Glo",
	})
	if got.Message != MsgMobileNetwork {
		t.Fatalf("unknown network should fail, got %q", got.Message)
	}

	got = ValidateCheckout("bitcoin", delivery, PaymentInput{})
	if got.Message != MsgPaymentMethod {
		t.Fatalf("unknown method should fail, got %q", got.Message)
	}
}

func TestValidateUserFields(t *testing.T) {
	if !ValidateName("Mary-Jane O'Neil").Valid {
		t.Fatalf("name with hyphen and apostrophe should pass")
	}
	if ValidateName("J").Valid || ValidateName("R2D2").Valid {
		t.Fatalf("short or digit names should fail")
	}
	if !ValidateEmail(" john@example.com ").Valid {
		t.Fatalf("trimmed email should pass")
	}
	if ValidateEmail("john@example").Valid {
		t.Fatalf("email without domain suffix should fail")
	}
	if ValidatePassword("12345").Valid || !ValidatePassword("123456").Valid {
		t.Fatalf("password length boundary mismatch")
	}
	if !ValidatePhone("+233 24 123 4567").Valid {
		t.Fatalf("formatted phone should pass")
	}
	if got := ValidatePhone("024-123"); got.Message != "Phone number must be at least 10 digits" {
		t.Fatalf("short phone message mismatch: %q", got.Message)
	}
	if got := ValidateRequired("  ", "City"); got.Message != "City is required" {
		t.Fatalf("required message mismatch: %q", got.Message)
	}
	if !ValidateRegion("Greater Accra") || ValidateRegion("Lagos") {
		t.Fatalf("region check mismatch")
	}
}

func TestStripCardNumberRemovesUnicodeSpaces(t *testing.T) {
	got := StripCardNumber(" 4111\u00a01111\u20281111\ufeff1234\n")
	if got != "4111111111111234" {
		t.Fatalf("stripped number want 4111111111111234 got %q", got)
	}
}
