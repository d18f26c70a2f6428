package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/models"
)

// newTestDB opens an isolated in-memory database for one test. The DSN is
// keyed on the test name so parallel packages never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Document{},
		&models.DocumentVersion{},
		&models.ApprovalRecord{},
		&models.AuditAction{},
		&models.Notification{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "$2a$10$seedseedseedseedseedseedseedseedseedseedseedseedseedse",
		FullName:     "Seed User",
		Role:         role,
		Active:       true,
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func seedDocument(t *testing.T, db *gorm.DB, ownerID uint) models.Document {
	t.Helper()

	doc := models.Document{
		Name:           "policy.pdf",
		StoragePath:    "/files/policy.pdf",
		CurrentVersion: 1,
		OwnerID:        ownerID,
		Status:         models.DocumentStatusPendiente,
	}
	require.NoError(t, db.Create(&doc).Error)

	return doc
}
