package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/models"
	"github.com/docuvia/docuvia-api/internal/repository"
)

func newApprovalService(t *testing.T, db *gorm.DB) ApprovalService {
	t.Helper()

	return NewApprovalService(
		repository.NewApprovalRepository(db),
		repository.NewDocumentRepository(db),
		repository.NewUserRepository(db),
		repository.NewNotificationRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func TestApprovalServiceRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(t, db)

	owner := seedUser(t, db, "owner@example.com", models.RoleSolicitante)
	approver := seedUser(t, db, "approver@example.com", models.RoleAprobador)
	doc := seedDocument(t, db, owner.ID)

	record, err := svc.Request(context.Background(), dto.RequestApprovalRequest{
		DocumentID: doc.ID,
		ApproverID: approver.ID,
		Comments:   "please review",
	})
	require.NoError(t, err)
	require.Equal(t, string(models.ApprovalStateSolicitado), record.State)
	require.Equal(t, string(models.PriorityMedia), record.Priority)

	var storedDoc models.Document
	require.NoError(t, db.First(&storedDoc, doc.ID).Error)
	require.Equal(t, models.DocumentStatusEnRevision, storedDoc.Status)

	var notifications []models.Notification
	require.NoError(t, db.Where("receiver_id = ?", approver.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	require.Equal(t, models.NotificationSolicitudAprobacion, notifications[0].Type)
}

func TestApprovalServiceRequestUnknownReferences(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(t, db)

	owner := seedUser(t, db, "owner@example.com", models.RoleSolicitante)
	doc := seedDocument(t, db, owner.ID)

	_, err := svc.Request(context.Background(), dto.RequestApprovalRequest{DocumentID: 9999, ApproverID: owner.ID})
	require.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = svc.Request(context.Background(), dto.RequestApprovalRequest{DocumentID: doc.ID, ApproverID: 9999})
	require.ErrorIs(t, err, ErrApproverNotFound)
}

func TestApprovalServiceApprove(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(t, db)

	owner := seedUser(t, db, "owner@example.com", models.RoleSolicitante)
	approver := seedUser(t, db, "approver@example.com", models.RoleAprobador)
	doc := seedDocument(t, db, owner.ID)

	requested, err := svc.Request(context.Background(), dto.RequestApprovalRequest{DocumentID: doc.ID, ApproverID: approver.ID})
	require.NoError(t, err)

	decided, err := svc.Approve(context.Background(), requested.ID, dto.ApprovalDecisionRequest{Comments: "looks good"})
	require.NoError(t, err)
	require.Equal(t, string(models.ApprovalStateAprobado), decided.State)
	require.Equal(t, "looks good", decided.Comments)

	var storedDoc models.Document
	require.NoError(t, db.First(&storedDoc, doc.ID).Error)
	require.Equal(t, models.DocumentStatusAprobado, storedDoc.Status)

	var notifications []models.Notification
	require.NoError(t, db.Where("receiver_id = ? AND type = ?", owner.ID, models.NotificationAprobado).Find(&notifications).Error)
	require.Len(t, notifications, 1)
}

func TestApprovalServiceRejectMarksDocument(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(t, db)

	owner := seedUser(t, db, "owner@example.com", models.RoleSolicitante)
	approver := seedUser(t, db, "approver@example.com", models.RoleAprobador)
	doc := seedDocument(t, db, owner.ID)

	requested, err := svc.Request(context.Background(), dto.RequestApprovalRequest{DocumentID: doc.ID, ApproverID: approver.ID})
	require.NoError(t, err)

	decided, err := svc.Reject(context.Background(), requested.ID, dto.ApprovalDecisionRequest{Comments: "missing appendix"})
	require.NoError(t, err)
	require.Equal(t, string(models.ApprovalStateRechazado), decided.State)

	var storedDoc models.Document
	require.NoError(t, db.First(&storedDoc, doc.ID).Error)
	require.Equal(t, models.DocumentStatusRechazado, storedDoc.Status)

	var notifications []models.Notification
	require.NoError(t, db.Where("receiver_id = ? AND type = ?", owner.ID, models.NotificationRechazado).Find(&notifications).Error)
	require.Len(t, notifications, 1)
}

func TestApprovalServiceTerminalRecordConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(t, db)

	owner := seedUser(t, db, "owner@example.com", models.RoleSolicitante)
	approver := seedUser(t, db, "approver@example.com", models.RoleAprobador)
	doc := seedDocument(t, db, owner.ID)

	requested, err := svc.Request(context.Background(), dto.RequestApprovalRequest{DocumentID: doc.ID, ApproverID: approver.ID})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), requested.ID, dto.ApprovalDecisionRequest{})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), requested.ID, dto.ApprovalDecisionRequest{})
	require.ErrorIs(t, err, ErrApprovalFinalized)

	_, err = svc.Reject(context.Background(), requested.ID, dto.ApprovalDecisionRequest{})
	require.ErrorIs(t, err, ErrApprovalFinalized)
}

func TestApprovalServiceDecideWithDocumentGone(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(t, db)

	owner := seedUser(t, db, "owner@example.com", models.RoleSolicitante)
	approver := seedUser(t, db, "approver@example.com", models.RoleAprobador)
	doc := seedDocument(t, db, owner.ID)

	requested, err := svc.Request(context.Background(), dto.RequestApprovalRequest{DocumentID: doc.ID, ApproverID: approver.ID})
	require.NoError(t, err)

	// Remove the document row without triggering the cascade so the record
	// is left pointing at nothing, as it would be on a store without
	// referential actions. Enforcement stays off so the orphaned record can
	// still be updated.
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Exec("DELETE FROM documents WHERE id = ?", doc.ID).Error)

	decided, err := svc.Approve(context.Background(), requested.ID, dto.ApprovalDecisionRequest{})
	require.NoError(t, err)
	require.Equal(t, string(models.ApprovalStateAprobado), decided.State)

	var stored models.ApprovalRecord
	require.NoError(t, db.First(&stored, requested.ID).Error)
	require.Equal(t, models.ApprovalStateAprobado, stored.State)
}

func TestApprovalServiceListPending(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(t, db)

	owner := seedUser(t, db, "owner@example.com", models.RoleSolicitante)
	approver := seedUser(t, db, "approver@example.com", models.RoleAprobador)
	first := seedDocument(t, db, owner.ID)
	second := seedDocument(t, db, owner.ID)

	pendingRecord, err := svc.Request(context.Background(), dto.RequestApprovalRequest{DocumentID: first.ID, ApproverID: approver.ID})
	require.NoError(t, err)
	decidedRecord, err := svc.Request(context.Background(), dto.RequestApprovalRequest{DocumentID: second.ID, ApproverID: approver.ID})
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), decidedRecord.ID, dto.ApprovalDecisionRequest{})
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, pendingRecord.ID, pending[0].ID)
	require.Equal(t, "policy.pdf", pending[0].DocumentName)
	require.Equal(t, approver.ID, pending[0].ApproverID)
}

func TestApprovalServiceGetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newApprovalService(t, db)

	_, err := svc.Get(context.Background(), 9999)
	require.ErrorIs(t, err, ErrApprovalNotFound)
}
