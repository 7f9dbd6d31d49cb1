package billinghandler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	billingstore "pmfin-backend/lib/billing/store"
	projectstore "pmfin-backend/lib/project/store"
	"pmfin-backend/lib/utils/testdb"
	"pmfin-backend/models"
	financeapimodels "pmfin-backend/models/api/finance"
	dbmodels "pmfin-backend/models/db"
)

func TestBilling(t *testing.T) {
	tx := testdb.New(t)
	h := impl{
		store:        billingstore.NewInstance(tx),
		projectStore: projectstore.NewInstance(tx),
	}
	actor := models.Actor{ID: "fin", Role: models.FinanceRole}
	project := dbmodels.Project{Name: "Website"}
	require.NoError(t, tx.Create(&project).Error)

	create := func(t *testing.T, amount string) string {
		id, hMsg, err := h.Create(actor, financeapimodels.BillData{
			ProjectID: project.ID,
			Title:     "Hosting",
			Type:      models.FlowExpense,
			Amount:    decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		return id
	}
	first := create(t, "100")
	second := create(t, "250.50")

	t.Run("defaults to unpaid", func(t *testing.T) {
		view, err := h.GetByID(first)
		require.NoError(t, err)
		require.Equal(t, models.PaymentStatusUnpaid, view.PaymentStatus)
	})
	t.Run("unknown project", func(t *testing.T) {
		_, hMsg, err := h.Create(actor, financeapimodels.BillData{ProjectID: "missing", Title: "x", Type: models.FlowExpense, Amount: decimal.NewFromInt(1)})
		require.NoError(t, err)
		require.Equal(t, "project not found", hMsg)
	})
	t.Run("any status to any status", func(t *testing.T) {
		for _, status := range []models.PaymentStatus{models.PaymentStatusPaid, models.PaymentStatusDebt, models.PaymentStatusUnpaid, models.PaymentStatusDebt} {
			require.NoError(t, h.SetPaymentStatus(actor, first, status))
			view, err := h.GetByID(first)
			require.NoError(t, err)
			require.Equal(t, status, view.PaymentStatus)
		}
	})
	t.Run("invalid status", func(t *testing.T) {
		err := h.SetPaymentStatus(actor, first, models.PaymentStatus("OVERDUE"))
		require.True(t, errors.Is(err, models.ErrValidation))
	})
	t.Run("missing bill", func(t *testing.T) {
		err := h.SetPaymentStatus(actor, "missing", models.PaymentStatusPaid)
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
	t.Run("summary", func(t *testing.T) {
		require.NoError(t, h.SetPaymentStatus(actor, second, models.PaymentStatusPaid))
		summary, err := h.Summary(project.ID)
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(100).Equal(summary.Totals[models.PaymentStatusDebt]))
		require.True(t, decimal.RequireFromString("250.5").Equal(summary.Totals[models.PaymentStatusPaid]))
		require.True(t, decimal.Zero.Equal(summary.Totals[models.PaymentStatusUnpaid]))
	})
	t.Run("list by status", func(t *testing.T) {
		list, count, err := h.List(financeapimodels.BillFilter{ProjectID: project.ID, PaymentStatus: models.PaymentStatusPaid})
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
		require.Equal(t, second, list[0].ID)
	})
}
