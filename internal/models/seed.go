package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SeedUser 预置用户（明文密码仅在初始化时使用）
type SeedUser struct {
	User     User
	Password string
}

// SeedData 预置数据集
type SeedData struct {
	Users      []SeedUser
	Categories []Category
	Products   []Product
}

const seedAvatar = "https://images.pexels.com/photos/771742/pexels-photo-771742.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop"

// DefaultSeed 返回初始数据（ID 已按插入顺序固定）
func DefaultSeed() SeedData {
	original := MustMoney("1199.99")
	return SeedData{
		Users: []SeedUser{
			{
				User:     User{ID: 1, Name: "Admin User", Email: "admin@elitebuy.com", Role: "admin", Avatar: seedAvatar, IsActive: true},
				Password: "admin123",
			},
			{
				User:     User{ID: 2, Name: "John Doe", Email: "john@example.com", Role: "customer", Avatar: seedAvatar, IsActive: true},
				Password: "password123",
			},
		},
		Categories: []Category{
			{ID: 1, Name: "Electronics", Slug: "electronics", SortOrder: 1, IsActive: true},
			{ID: 2, Name: "Fashion", Slug: "fashion", SortOrder: 2, IsActive: true},
			{ID: 3, Name: "Home & Garden", Slug: "home-garden", SortOrder: 3, IsActive: true},
		},
		Products: []Product{
			{
				ID:            1,
				CategoryID:    1,
				Name:          "Smartphone Pro Max",
				Description:   "Latest flagship smartphone with advanced features",
				Price:         MustMoney("999.99"),
				OriginalPrice: &original,
				ImageURL:      "https://images.pexels.com/photos/404280/pexels-photo-404280.jpeg?auto=compress&cs=tinysrgb&w=400",
				Stock:         50,
				IsFeatured:    true,
				IsActive:      true,
			},
			{
				ID:          2,
				CategoryID:  1,
				Name:        "Wireless Headphones",
				Description: "Premium noise-cancelling wireless headphones",
				Price:       MustMoney("299.99"),
				ImageURL:    "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=400",
				Stock:       30,
				IsFeatured:  true,
				IsActive:    true,
			},
		},
	}
}

// HashPassword 生成密码哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword 校验密码
func CheckPassword(hash, password string) bool {
	if strings.TrimSpace(hash) == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
