package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/crotools/cro-admin-backend/internal/config"
	"github.com/crotools/cro-admin-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 10 connections matches the pool the console has always run with;
	// excess requests queue for a connection.
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all models. The subcro and hotel tables
// pre-date this service; AutoMigrate leaves existing columns alone.
func Migrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Subcro{},
		&models.Hotel{},
		&models.SystemLog{},
		&models.QueryAudit{},
	)
}

// EnsureViews (re)creates the two joined views the read-only screens are
// built on. user_maincro_subcro joins on a LIKE so a user whose maincro
// holds a comma-separated list matches every group in the list.
func EnsureViews() error {
	stmts := []string{
		`CREATE OR REPLACE VIEW hotel_maincro_subcro AS
			SELECT h."codeHotel" AS "codeHotel", h."subcroId" AS "subcroId",
			       s.subcro AS subcro, s.maincro AS maincro
			FROM hotel h
			JOIN subcro s ON s.id = h."subcroId"`,
		`CREATE OR REPLACE VIEW user_maincro_subcro AS
			SELECT u.id AS id, u.email AS email, u.maincro AS maincro,
			       s.subcro AS subcro
			FROM users u
			JOIN subcro s ON u.maincro LIKE '%' || s.maincro || '%'`,
	}
	for _, stmt := range stmts {
		if err := DB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create view: %w", err)
		}
	}
	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
