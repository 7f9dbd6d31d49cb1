package reimbursementhandler

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"pmfin-backend/lib/events"
	filestorage "pmfin-backend/lib/file-storage"
	reimbursementstore "pmfin-backend/lib/reimbursement/store"
	"pmfin-backend/lib/utils/testdb"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
	financeapimodels "pmfin-backend/models/api/finance"
	dbmodels "pmfin-backend/models/db"
)

type fakeNotifier struct {
	mu    sync.Mutex
	codes []models.NotificationCode
}

func (f *fakeNotifier) Send(userID string, code models.NotificationCode, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, code)
}

type fakeEvents struct {
	published []events.Event
}

func (f *fakeEvents) Publish(ctx context.Context, event events.Event) {
	f.published = append(f.published, event)
}

func (f *fakeEvents) Close() error { return nil }

type fixture struct {
	tx       *gorm.DB
	h        impl
	files    *filestorage.Memory
	notifier *fakeNotifier
	events   *fakeEvents
	worker   models.Actor
	other    models.Actor
	finance  models.Actor
}

func newFixture(t *testing.T) *fixture {
	tx := testdb.New(t)
	f := &fixture{
		tx:       tx,
		files:    filestorage.NewMemory(),
		notifier: &fakeNotifier{},
		events:   &fakeEvents{},
	}
	f.h = impl{
		store:    reimbursementstore.NewInstance(tx),
		files:    f.files,
		notifier: f.notifier,
		events:   f.events,
	}
	f.worker = f.addUser(t, "dev@example.com", "Bob", models.EmployeeRole)
	f.other = f.addUser(t, "dev2@example.com", "Tom", models.EmployeeRole)
	f.finance = f.addUser(t, "fin@example.com", "Ann", models.FinanceRole)
	return f
}

func (f *fixture) addUser(t *testing.T, email, name string, role models.UserRole) models.Actor {
	rec := dbmodels.User{Email: email, Name: name, Role: role}
	require.NoError(t, f.tx.Create(&rec).Error)
	return models.Actor{ID: rec.ID, Name: name, Role: role}
}

func (f *fixture) newRequest(t *testing.T) string {
	id, err := f.h.Create(f.worker, financeapimodels.ReimbursementData{
		Title:  "Taxi to client",
		Amount: decimal.RequireFromString("42.50"),
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) approved(t *testing.T) string {
	id := f.newRequest(t)
	hMsg, err := f.h.Approve(f.finance, id)
	require.NoError(t, err)
	require.Empty(t, hMsg)
	return id
}

func file(name string) apimodels.FileData {
	data := []byte("%PDF-1.4 test")
	return apimodels.FileData{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        int64(len(data)),
		Reader:      bytes.NewReader(data),
	}
}

func TestVisibility(t *testing.T) {
	f := newFixture(t)
	id := f.newRequest(t)

	t.Run("owner", func(t *testing.T) {
		view, err := f.h.GetByID(f.worker, id)
		require.NoError(t, err)
		require.Equal(t, models.ReimbursementPending, view.Status)
		require.Equal(t, "Bob", view.SubmittedByName)
		require.False(t, view.ProofMissing)
	})
	t.Run("finance", func(t *testing.T) {
		_, err := f.h.GetByID(f.finance, id)
		require.NoError(t, err)
	})
	t.Run("other employee", func(t *testing.T) {
		_, err := f.h.GetByID(f.other, id)
		require.True(t, errors.Is(err, models.ErrForbidden))
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := f.h.GetByID(f.finance, "missing")
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
	t.Run("list is scoped for employees", func(t *testing.T) {
		list, count, err := f.h.List(f.other, financeapimodels.ReimbursementFilter{})
		require.NoError(t, err)
		require.Zero(t, count)
		require.Empty(t, list)

		list, count, err = f.h.List(f.finance, financeapimodels.ReimbursementFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
		require.Len(t, list, 1)
	})
}

func TestWorkflow(t *testing.T) {
	t.Run("employee can not approve", func(t *testing.T) {
		f := newFixture(t)
		id := f.newRequest(t)
		_, err := f.h.Approve(f.worker, id)
		require.True(t, errors.Is(err, models.ErrForbidden))
	})
	t.Run("approve then pay", func(t *testing.T) {
		f := newFixture(t)
		id := f.approved(t)
		hMsg, err := f.h.MarkPaid(f.finance, id)
		require.NoError(t, err)
		require.Empty(t, hMsg)

		view, err := f.h.GetByID(f.worker, id)
		require.NoError(t, err)
		require.Equal(t, models.ReimbursementPaid, view.Status)
		require.NotNil(t, view.PaidAt)
		require.True(t, view.ProofMissing)
		require.Equal(t, []models.NotificationCode{models.NotifyReimbursementApproved, models.NotifyReimbursementPaid}, f.notifier.codes)
		require.Len(t, f.events.published, 2)
		require.Equal(t, "APPROVED", f.events.published[1].From)
		require.Equal(t, "PAID", f.events.published[1].To)
	})
	t.Run("pay pending is rejected", func(t *testing.T) {
		f := newFixture(t)
		id := f.newRequest(t)
		hMsg, err := f.h.MarkPaid(f.finance, id)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, f.events.published)
	})
	t.Run("reject needs a reason", func(t *testing.T) {
		f := newFixture(t)
		id := f.newRequest(t)
		hMsg, err := f.h.Reject(f.finance, id, "   ")
		require.NoError(t, err)
		require.Equal(t, "rejection reason is required", hMsg)

		hMsg, err = f.h.Reject(f.finance, id, "no receipt")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		view, err := f.h.GetByID(f.worker, id)
		require.NoError(t, err)
		require.Equal(t, models.ReimbursementRejected, view.Status)
		require.Equal(t, "no receipt", view.RejectionReason)
		require.Empty(t, view.NextStatuses)
	})
	t.Run("stale status is a conflict", func(t *testing.T) {
		f := newFixture(t)
		id := f.newRequest(t)
		updated, err := f.h.store.UpdateStatus(id, models.ReimbursementApproved, map[string]interface{}{
			"status": models.ReimbursementPaid,
		})
		require.NoError(t, err)
		require.False(t, updated)
	})
}

func TestAttachments(t *testing.T) {
	t.Run("receipt only while pending", func(t *testing.T) {
		f := newFixture(t)
		id := f.newRequest(t)
		att, hMsg, err := f.h.AddReceipt(context.Background(), f.worker, id, file("taxi.pdf"))
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.AttachmentReceipt, att.Kind)

		data, view, err := f.h.GetAttachment(context.Background(), f.worker, id, att.ID)
		require.NoError(t, err)
		require.Equal(t, "taxi.pdf", view.FileName)
		require.Equal(t, "%PDF-1.4 test", string(data))

		_, err = f.h.Approve(f.finance, id)
		require.NoError(t, err)
		_, hMsg, err = f.h.AddReceipt(context.Background(), f.worker, id, file("late.pdf"))
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Equal(t, 1, f.files.Len())
	})
	t.Run("proof clears proof missing", func(t *testing.T) {
		f := newFixture(t)
		id := f.approved(t)
		_, err := f.h.MarkPaid(f.finance, id)
		require.NoError(t, err)
		_, hMsg, err := f.h.AttachProof(context.Background(), f.finance, id, file("transfer.pdf"))
		require.NoError(t, err)
		require.Empty(t, hMsg)

		view, err := f.h.GetByID(f.worker, id)
		require.NoError(t, err)
		require.False(t, view.ProofMissing)
		require.Len(t, view.Attachments, 1)
		require.Equal(t, models.AttachmentPaymentProof, view.Attachments[0].Kind)
	})
	t.Run("proof on pending is refused", func(t *testing.T) {
		f := newFixture(t)
		id := f.newRequest(t)
		_, hMsg, err := f.h.AttachProof(context.Background(), f.finance, id, file("transfer.pdf"))
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}

func TestPayWithProof(t *testing.T) {
	t.Run("both steps succeed", func(t *testing.T) {
		f := newFixture(t)
		id := f.approved(t)
		view, hMsg, err := f.h.PayWithProof(context.Background(), f.finance, id, file("transfer.pdf"))
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.ReimbursementPaid, view.Status)
		require.False(t, view.ProofMissing)
	})
	t.Run("proof upload fails after payment", func(t *testing.T) {
		f := newFixture(t)
		id := f.approved(t)
		f.files.FailUploads = true

		view, hMsg, err := f.h.PayWithProof(context.Background(), f.finance, id, file("transfer.pdf"))
		require.Empty(t, hMsg)
		require.Error(t, err)
		var partial *models.PartialFailureError
		require.True(t, errors.As(err, &partial))
		require.Equal(t, []string{models.StepMarkPaid}, partial.Completed)
		require.Equal(t, models.StepAttachProof, partial.Failed)

		require.Equal(t, models.ReimbursementPaid, view.Status)
		require.True(t, view.ProofMissing)
		rec := dbmodels.Reimbursement{}
		require.NoError(t, f.tx.Preload("Attachments").Where("id = ?", id).First(&rec).Error)
		require.Equal(t, models.ReimbursementPaid, rec.Status)
		require.Zero(t, rec.ProofCount())
		require.Zero(t, f.files.Len())
	})
	t.Run("payment refused stops before upload", func(t *testing.T) {
		f := newFixture(t)
		id := f.newRequest(t)
		_, hMsg, err := f.h.PayWithProof(context.Background(), f.finance, id, file("transfer.pdf"))
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Zero(t, f.files.Len())
	})
}

func TestTotalsByStatus(t *testing.T) {
	f := newFixture(t)
	f.newRequest(t)
	f.approved(t)
	totals, err := f.h.TotalsByStatus()
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("42.50").Equal(totals[models.ReimbursementPending]))
	require.True(t, decimal.RequireFromString("42.50").Equal(totals[models.ReimbursementApproved]))
}
