package service

import (
	"errors"
	"testing"

	"github.com/elitebuy/internal/repository"
)

func newAddressInput(label string) AddressInput {
	return AddressInput{
		FullName:      "Kofi Boateng",
		PhoneNumber:   "0241234567",
		RegionName:    "Ashanti",
		CityName:      "Kumasi",
		StreetAddress: "4 Prempeh Street",
		Label:         label,
	}
}

func countDefaults(t *testing.T, svc *AddressService, userID uint) int {
	t.Helper()
	items, err := svc.List(userID)
	if err != nil {
		t.Fatalf("list addresses failed: %v", err)
	}
	count := 0
	for _, item := range items {
		if item.IsDefault {
			count++
		}
	}
	return count
}

func TestAddressServiceFirstAddressBecomesDefault(t *testing.T) {
	svc := NewAddressService(repository.NewMemoryStore().Addresses)

	first, err := svc.Create(1, newAddressInput("Home"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !first.IsDefault {
		t.Fatalf("first address should be default")
	}
	second, err := svc.Create(1, newAddressInput("Work"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if second.IsDefault {
		t.Fatalf("second address should not be default")
	}
	if got := countDefaults(t, svc, 1); got != 1 {
		t.Fatalf("want exactly one default got %d", got)
	}
}

func TestAddressServiceSetDefaultIsExclusive(t *testing.T) {
	svc := NewAddressService(repository.NewMemoryStore().Addresses)
	first, _ := svc.Create(1, newAddressInput("Home"))
	second, _ := svc.Create(1, newAddressInput("Work"))
	other, _ := svc.Create(2, newAddressInput("Home"))

	if err := svc.SetDefault(1, second.ID); err != nil {
		t.Fatalf("set default failed: %v", err)
	}
	items, _ := svc.List(1)
	if len(items) != 2 || items[0].ID != second.ID || !items[0].IsDefault {
		t.Fatalf("default address should be listed first: %+v", items)
	}
	for _, item := range items {
		if item.ID == first.ID && item.IsDefault {
			t.Fatalf("previous default should be cleared")
		}
	}
	if got := countDefaults(t, svc, 2); got != 1 {
		t.Fatalf("other user's default should be untouched, got %d", got)
	}
	if err := svc.SetDefault(1, other.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("foreign address want ErrAddressNotFound got %v", err)
	}
}

func TestAddressServiceDeleteDefaultPromotesRemaining(t *testing.T) {
	svc := NewAddressService(repository.NewMemoryStore().Addresses)
	first, _ := svc.Create(1, newAddressInput("Home"))
	if _, err := svc.Create(1, newAddressInput("Work")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(1, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := countDefaults(t, svc, 1); got != 1 {
		t.Fatalf("remaining address should become default, got %d defaults", got)
	}
	if err := svc.Delete(1, first.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("want ErrAddressNotFound got %v", err)
	}
}

func TestAddressServiceUpdateKeepsDefault(t *testing.T) {
	svc := NewAddressService(repository.NewMemoryStore().Addresses)
	first, _ := svc.Create(1, newAddressInput("Home"))

	input := newAddressInput("Parents")
	input.CityName = "Obuasi"
	updated, err := svc.Update(1, first.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.IsDefault || updated.CityName != "Obuasi" || updated.Label != "Parents" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestAddressServiceValidation(t *testing.T) {
	svc := NewAddressService(repository.NewMemoryStore().Addresses)

	input := newAddressInput("Home")
	input.RegionName = "Lagos"
	if _, err := svc.Create(1, input); !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("want ErrInvalidRegion got %v", err)
	}

	input = newAddressInput("Home")
	input.StreetAddress = " "
	_, err := svc.Create(1, input)
	if !errors.Is(err, ErrCheckoutValidation) {
		t.Fatalf("want validation error got %v", err)
	}
}
