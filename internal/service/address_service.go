package service

import (
	"fmt"
	"strings"

	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/repository"
)

// AddressService 收货地址服务，每个用户至多一个默认地址
type AddressService struct {
	addressRepo repository.AddressRepository
	locks       *keyedMutex
}

// AddressInput 地址写入参数
type AddressInput struct {
	FullName      string `json:"full_name"`
	PhoneNumber   string `json:"phone_number"`
	RegionName    string `json:"region_name"`
	CityName      string `json:"city_name"`
	StreetAddress string `json:"street_address"`
	PostalCode    string `json:"postal_code"`
	DeliveryNotes string `json:"delivery_notes"`
	Label         string `json:"label"`
	IsDefault     bool   `json:"is_default"`
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		locks:       newKeyedMutex(),
	}
}

// List 地址列表，默认地址在前，其余按创建时间倒序
func (s *AddressService) List(userID uint) ([]models.DeliveryAddress, error) {
	return s.addressRepo.ListByUser(userID)
}

// Create 新增地址，第一个地址自动设为默认
func (s *AddressService) Create(userID uint, input AddressInput) (*models.DeliveryAddress, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(addressLockKey(userID))
	defer unlock()

	count, err := s.addressRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	address := &models.DeliveryAddress{UserID: userID}
	applyAddressInput(address, input)
	if count == 0 {
		address.IsDefault = true
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update 修改地址，设为默认时取消其他默认
func (s *AddressService) Update(userID, addressID uint, input AddressInput) (*models.DeliveryAddress, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(addressLockKey(userID))
	defer unlock()

	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	wasDefault := address.IsDefault
	applyAddressInput(address, input)
	if wasDefault {
		address.IsDefault = true
	}
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete 删除地址，删除默认地址后由最新的地址接替
func (s *AddressService) Delete(userID, addressID uint) error {
	unlock := s.locks.Lock(addressLockKey(userID))
	defer unlock()

	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	if _, err := s.addressRepo.Delete(addressID, userID); err != nil {
		return err
	}
	if !address.IsDefault {
		return nil
	}
	remaining, err := s.addressRepo.ListByUser(userID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return nil
	}
	_, err = s.addressRepo.SetDefault(remaining[0].ID, userID)
	return err
}

// SetDefault 设为默认地址，完成后该用户恰有一个默认地址
func (s *AddressService) SetDefault(userID, addressID uint) error {
	unlock := s.locks.Lock(addressLockKey(userID))
	defer unlock()

	found, err := s.addressRepo.SetDefault(addressID, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrAddressNotFound
	}
	return nil
}

func validateAddressInput(input AddressInput) error {
	if err := firstInvalid(
		ValidateRequired(input.FullName, "Full name"),
		ValidatePhone(input.PhoneNumber),
		ValidateRequired(input.StreetAddress, "Street address"),
		ValidateRequired(input.CityName, "City"),
	); err != nil {
		return err
	}
	if !ValidateRegion(strings.TrimSpace(input.RegionName)) {
		return ErrInvalidRegion
	}
	return nil
}

func applyAddressInput(address *models.DeliveryAddress, input AddressInput) {
	address.FullName = strings.TrimSpace(input.FullName)
	address.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	address.RegionName = strings.TrimSpace(input.RegionName)
	address.CityName = strings.TrimSpace(input.CityName)
	address.StreetAddress = strings.TrimSpace(input.StreetAddress)
	address.PostalCode = strings.TrimSpace(input.PostalCode)
	address.DeliveryNotes = strings.TrimSpace(input.DeliveryNotes)
	address.Label = strings.TrimSpace(input.Label)
	address.IsDefault = input.IsDefault
}

func addressLockKey(userID uint) string {
	return fmt.Sprintf("address:%d", userID)
}
