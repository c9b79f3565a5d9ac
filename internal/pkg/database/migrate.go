package database

import (
	"embed"
	"fmt"
	log "log/slog"
	"path"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/mysql/*.sql migrations/postgres/*.sql
var migrations embed.FS

// MigrateUp 执行内嵌的 goose 迁移，目录按驱动区分
func MigrateUp(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err = goose.SetDialect(driver); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	dir := path.Join("migrations", driver)
	if err = goose.Up(sqlDB, dir); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	version, err := goose.GetDBVersion(sqlDB)
	if err == nil {
		log.Info("Database migrated", "driver", driver, "version", version)
	}
	return nil
}
