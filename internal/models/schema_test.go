package models_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/models"
)

func openSchemaDB(t *testing.T) *gorm.DB {
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

func tableDDL(t *testing.T, db *gorm.DB, table string) string {
	t.Helper()

	var ddl string
	require.NoError(t, db.Raw(
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&ddl).Error)
	require.NotEmpty(t, ddl, "table %s not found", table)
	return ddl
}

// The migrated schema must carry the referential actions, not bare REFERENCES
// clauses, or deletes stop cascading.
func TestMigratedSchemaReferentialActions(t *testing.T) {
	db := openSchemaDB(t)

	tests := []struct {
		table   string
		clauses []string
	}{
		{"documents", []string{"ON DELETE CASCADE"}},
		{"document_versions", []string{"ON DELETE CASCADE"}},
		{"approval_records", []string{"ON DELETE CASCADE", "ON DELETE RESTRICT"}},
		{"audit_actions", []string{"ON DELETE RESTRICT"}},
		{"notifications", []string{"ON DELETE CASCADE", "ON DELETE SET NULL"}},
	}

	for _, tc := range tests {
		t.Run(tc.table, func(t *testing.T) {
			ddl := tableDDL(t, db, tc.table)
			for _, clause := range tc.clauses {
				require.Contains(t, ddl, clause)
			}
		})
	}
}

func TestUserDeleteCascadesOwnedRows(t *testing.T) {
	db := openSchemaDB(t)

	owner := models.User{Email: "owner@example.com", PasswordHash: "x", FullName: "Owner", Role: models.RoleSolicitante, Active: true}
	require.NoError(t, db.Create(&owner).Error)

	doc := models.Document{Name: "draft.pdf", OwnerID: owner.ID, CurrentVersion: 1, Status: models.DocumentStatusPendiente}
	require.NoError(t, db.Create(&doc).Error)
	require.NoError(t, db.Create(&models.DocumentVersion{DocumentID: doc.ID, FileName: "v1.pdf", Sequence: 1}).Error)
	require.NoError(t, db.Create(&models.Notification{ReceiverID: owner.ID, Type: models.NotificationNuevaVersion, Subject: "v1"}).Error)

	require.NoError(t, db.Delete(&models.User{}, owner.ID).Error)

	var docs, versions, notifications int64
	require.NoError(t, db.Model(&models.Document{}).Count(&docs).Error)
	require.NoError(t, db.Model(&models.DocumentVersion{}).Count(&versions).Error)
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifications).Error)
	require.Zero(t, docs)
	require.Zero(t, versions)
	require.Zero(t, notifications)
}

func TestAuditRowsBlockActorDeletion(t *testing.T) {
	db := openSchemaDB(t)

	actor := models.User{Email: "actor@example.com", PasswordHash: "x", FullName: "Actor", Role: models.RoleAdmin, Active: true}
	require.NoError(t, db.Create(&actor).Error)
	require.NoError(t, db.Create(&models.AuditAction{ActorID: actor.ID, Action: "Login"}).Error)

	require.Error(t, db.Delete(&models.User{}, actor.ID).Error)

	var remaining int64
	require.NoError(t, db.Model(&models.User{}).Count(&remaining).Error)
	require.Equal(t, int64(1), remaining)
}
