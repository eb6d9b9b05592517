package storage

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crotools/cro-admin-backend/internal/models"
)

// newTestStorage opens a private in-memory SQLite database with the full
// schema, including the two views the read-only screens use.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Subcro{},
		&models.Hotel{},
		&models.SystemLog{},
		&models.QueryAudit{},
	))

	for _, stmt := range []string{
		`CREATE VIEW hotel_maincro_subcro AS
			SELECT h."codeHotel" AS "codeHotel", h."subcroId" AS "subcroId",
			       s.subcro AS subcro, s.maincro AS maincro
			FROM hotel h
			JOIN subcro s ON s.id = h."subcroId"`,
		`CREATE VIEW user_maincro_subcro AS
			SELECT u.id AS id, u.email AS email, u.maincro AS maincro,
			       s.subcro AS subcro
			FROM users u
			JOIN subcro s ON u.maincro LIKE '%' || s.maincro || '%'`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return New(db)
}

func ptr[T any](v T) *T { return &v }

func mustCreateSubcro(t *testing.T, s *Storage, maincro, subcro string) *models.Subcro {
	t.Helper()
	record := &models.Subcro{Maincro: maincro, Subcro: subcro}
	require.NoError(t, s.CreateSubcro(record))
	return record
}

func mustCreateHotel(t *testing.T, s *Storage, code string, subcroID int) *models.Hotel {
	t.Helper()
	hotel := &models.Hotel{CodeHotel: code, SubcroID: subcroID}
	require.NoError(t, s.CreateHotel(hotel))
	return hotel
}
