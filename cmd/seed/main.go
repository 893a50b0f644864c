package main

import (
	"fmt"
	"strings"

	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/provider"
	"github.com/elitebuy/internal/repository"

	"gorm.io/gorm"
)

// 显式写入主键的表，postgres 下需要同步序列
var seededTables = []string{"users", "categories", "products"}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ForService("elitebuy-seed"))
	stdLog := logger.StdLogger()

	driver := strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if driver == "" || driver == constants.StoreDriverMemory {
		stdLog.Fatalf("seed requires a persistent database driver, got %q", cfg.Database.Driver)
	}

	// 连接并迁移数据库
	db, err := provider.OpenDatabase(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to open database: %v", err)
	}

	data := models.DefaultSeed()
	if err := repository.ApplySeed(repository.NewGormStore(db), data); err != nil {
		stdLog.Fatalf("Failed to seed database: %v", err)
	}

	if driver == constants.StoreDriverPostgres {
		if err := syncSequences(db); err != nil {
			stdLog.Fatalf("Failed to sync sequences: %v", err)
		}
	}

	stdLog.Printf("Seeded %d users, %d categories, %d products", len(data.Users), len(data.Categories), len(data.Products))
}

func syncSequences(db *gorm.DB) error {
	for _, table := range seededTables {
		sql := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
			table, table,
		)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("sync %s sequence: %w", table, err)
		}
	}
	return nil
}
