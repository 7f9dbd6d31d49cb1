package invoicehandler

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	taxstore "pmfin-backend/lib/dicts/tax/store"
	"pmfin-backend/lib/events"
	pdfexport "pmfin-backend/lib/export/pdf"
	xlsexport "pmfin-backend/lib/export/xls"
	invoicestore "pmfin-backend/lib/invoice/store"
	"pmfin-backend/lib/utils/testdb"
	"pmfin-backend/models"
	financeapimodels "pmfin-backend/models/api/finance"
	dbmodels "pmfin-backend/models/db"
)

type sent struct {
	userID string
	code   models.NotificationCode
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sent
}

func (f *fakeNotifier) Send(userID string, code models.NotificationCode, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{userID: userID, code: code})
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
	notifier *fakeNotifier
	events   *fakeEvents
	finance  models.Actor
	pm       models.Actor
	vat      string
}

var issued = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	tx := testdb.New(t)
	f := &fixture{
		tx:       tx,
		notifier: &fakeNotifier{},
		events:   &fakeEvents{},
	}
	f.h = impl{
		store:    invoicestore.NewInstance(tx),
		taxStore: taxstore.NewInstance(tx),
		notifier: f.notifier,
		events:   f.events,
		xls:      xlsexport.Instance,
		company:  pdfexport.Company{Name: "PM Finance"},
		currency: "USD",
	}
	user := dbmodels.User{Email: "fin@example.com", Name: "Ann", Role: models.FinanceRole}
	require.NoError(t, tx.Create(&user).Error)
	f.finance = models.Actor{ID: user.ID, Name: user.Name, Role: user.Role}
	f.pm = models.Actor{ID: "pm-id", Name: "Kate", Role: models.ProjectManagerRole}
	tax := dbmodels.Tax{Name: "VAT", Rate: decimal.NewFromInt(20)}
	require.NoError(t, tx.Create(&tax).Error)
	f.vat = tax.ID
	return f
}

func (f *fixture) data(number string) financeapimodels.InvoiceData {
	return financeapimodels.InvoiceData{
		Number:    number,
		Type:      models.FlowIncome,
		TaxID:     f.vat,
		Amount:    decimal.RequireFromString("1000.00"),
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, 30),
	}
}

func (f *fixture) newInvoice(t *testing.T, number string) string {
	id, hMsg, err := f.h.Create(f.finance, f.data(number))
	require.NoError(t, err)
	require.Empty(t, hMsg)
	return id
}

func (f *fixture) mustChange(t *testing.T, change func(models.Actor, string) (string, error), id string) {
	hMsg, err := change(f.finance, id)
	require.NoError(t, err)
	require.Empty(t, hMsg)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	id := f.newInvoice(t, "INV-001")

	view, err := f.h.GetByID(id)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusDraft, view.Status)
	require.True(t, decimal.RequireFromString("200").Equal(view.TaxAmount))
	require.True(t, decimal.RequireFromString("1200").Equal(view.Total))
	require.Equal(t, "USD", view.Currency)
	require.Equal(t, []models.InvoiceStatus{models.InvoiceStatusSent, models.InvoiceStatusCancelled}, view.NextStatuses)

	t.Run("duplicate number", func(t *testing.T) {
		_, hMsg, err := f.h.Create(f.finance, f.data("INV-001"))
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
	t.Run("unknown tax", func(t *testing.T) {
		data := f.data("INV-002")
		data.TaxID = "missing"
		_, hMsg, err := f.h.Create(f.finance, data)
		require.NoError(t, err)
		require.Equal(t, "tax not found", hMsg)
	})
}

func TestLifecycle(t *testing.T) {
	t.Run("send then pay", func(t *testing.T) {
		f := newFixture(t)
		id := f.newInvoice(t, "INV-001")
		f.mustChange(t, f.h.Send, id)
		f.mustChange(t, f.h.MarkPaid, id)

		view, err := f.h.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, models.InvoiceStatusPaid, view.Status)
		require.NotNil(t, view.PaidAt)
		require.Empty(t, view.NextStatuses)
		require.Len(t, f.events.published, 2)
	})
	t.Run("draft can not be paid", func(t *testing.T) {
		f := newFixture(t)
		id := f.newInvoice(t, "INV-001")
		hMsg, err := f.h.MarkPaid(f.finance, id)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, f.events.published)
	})
	t.Run("terminal states", func(t *testing.T) {
		f := newFixture(t)
		id := f.newInvoice(t, "INV-001")
		f.mustChange(t, f.h.Cancel, id)
		hMsg, err := f.h.Send(f.finance, id)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
	t.Run("manager can not change status", func(t *testing.T) {
		f := newFixture(t)
		id := f.newInvoice(t, "INV-001")
		_, err := f.h.Send(f.pm, id)
		require.True(t, errors.Is(err, models.ErrForbidden))
	})
	t.Run("edit and delete only in draft", func(t *testing.T) {
		f := newFixture(t)
		id := f.newInvoice(t, "INV-001")
		data := f.data("INV-001")
		data.Amount = decimal.RequireFromString("500")
		hMsg, err := f.h.Update(f.finance, id, data)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		view, err := f.h.GetByID(id)
		require.NoError(t, err)
		require.True(t, decimal.RequireFromString("100").Equal(view.TaxAmount))

		f.mustChange(t, f.h.Send, id)
		hMsg, err = f.h.Update(f.finance, id, data)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		hMsg, err = f.h.Delete(f.finance, id)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		f.mustChange(t, f.h.Cancel, id)
		hMsg, err = f.h.Delete(f.finance, id)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		_, err = f.h.GetByID(id)
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
}

func TestMarkOverdue(t *testing.T) {
	f := newFixture(t)
	due := f.newInvoice(t, "INV-001")
	notDue := f.newInvoice(t, "INV-002")
	draft := f.newInvoice(t, "INV-003")
	f.mustChange(t, f.h.Send, due)
	f.mustChange(t, f.h.Send, notDue)
	require.NoError(t, f.tx.Model(&dbmodels.Invoice{}).Where("id = ?", notDue).Update("due_date", issued.AddDate(1, 0, 0)).Error)

	now := issued.AddDate(0, 2, 0)
	count, err := f.h.MarkOverdue(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	for id, status := range map[string]models.InvoiceStatus{
		due:    models.InvoiceStatusOverdue,
		notDue: models.InvoiceStatusSent,
		draft:  models.InvoiceStatusDraft,
	} {
		view, err := f.h.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, status, view.Status)
	}
	require.Equal(t, []sent{{userID: f.finance.ID, code: models.NotifyInvoiceOverdue}}, f.notifier.sent)

	t.Run("overdue can still be paid", func(t *testing.T) {
		f.mustChange(t, f.h.MarkPaid, due)
	})
	t.Run("second run is a no-op", func(t *testing.T) {
		count, err := f.h.MarkOverdue(context.Background(), now)
		require.NoError(t, err)
		require.Zero(t, count)
	})
}

func TestExports(t *testing.T) {
	f := newFixture(t)
	id := f.newInvoice(t, "INV-001")

	buf, err := f.h.ExportXLSX(financeapimodels.InvoiceFilter{})
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	name, data, err := f.h.PDF(id)
	require.NoError(t, err)
	require.Equal(t, "invoice-INV-001.pdf", name)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
