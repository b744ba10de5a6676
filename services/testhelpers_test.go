package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutritrack-backend/config"
	"nutritrack-backend/models"
)

// newTestDB opens a file-backed SQLite database in a temp dir. A file (rather
// than :memory:) is needed so concurrent transactions in the capacity tests
// contend on a real lock instead of separate in-memory databases.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateSchema(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, uid string) *models.User {
	t.Helper()

	height := 175
	weight := 75.0
	user := &models.User{
		UserUID:       uid,
		Nickname:      uid,
		Email:         uid + "@example.com",
		Password:      "hashed",
		Gender:        "male",
		Height:        &height,
		CurrentWeight: &weight,
		CreatedAt:     time.Now().UTC(),
		IsActive:      true,
		ActivityLevel: models.ActivitySedentary,
		BirthYear:     time.Now().UTC().Year() - 25,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedIncompleteUser(t *testing.T, db *gorm.DB, uid string) *models.User {
	t.Helper()

	user := &models.User{
		UserUID:       uid,
		Nickname:      uid,
		Email:         uid + "@example.com",
		Password:      "hashed",
		CreatedAt:     time.Now().UTC(),
		IsActive:      true,
		ActivityLevel: models.ActivitySedentary,
		BirthYear:     1990,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedConsultant(t *testing.T, db *gorm.DB, uid string, maxClients int) *models.Consultant {
	t.Helper()

	consultant := &models.Consultant{
		ConsultantUID:   uid,
		Nickname:        uid,
		Email:           uid + "@example.com",
		Password:        "hashed",
		ExperienceYears: 5,
		IsActive:        true,
		CreatedAt:       time.Now().UTC(),
		MaxClients:      maxClients,
	}
	require.NoError(t, db.Create(consultant).Error)
	return consultant
}

func currentClients(t *testing.T, db *gorm.DB, consultantUID string) int {
	t.Helper()

	var consultant models.Consultant
	require.NoError(t, db.First(&consultant, "consultant_uid = ?", consultantUID).Error)
	return consultant.CurrentClients
}
