package repository

import (
	"fmt"

	"github.com/elitebuy/internal/models"
)

// ApplySeed 写入初始数据，已存在的记录跳过
func ApplySeed(store *Store, data models.SeedData) error {
	if store == nil {
		return fmt.Errorf("store is nil")
	}
	for _, seed := range data.Users {
		existing, err := store.Users.GetByEmail(seed.User.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		user := seed.User
		hash, err := models.HashPassword(seed.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		if err := store.Users.Create(&user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Email, err)
		}
	}

	for _, seed := range data.Categories {
		existing, err := store.Categories.GetByID(seed.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		category := seed
		if err := store.Categories.Create(&category); err != nil {
			return fmt.Errorf("seed category %s: %w", category.Slug, err)
		}
	}

	for _, seed := range data.Products {
		existing, err := store.Products.GetByID(seed.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		product := seed
		if err := store.Products.Create(&product); err != nil {
			return fmt.Errorf("seed product %s: %w", product.Name, err)
		}
	}
	return nil
}
