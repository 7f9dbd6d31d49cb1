package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	analyticsstore "pmfin-backend/lib/analytics/store"
	reimbursementstore "pmfin-backend/lib/reimbursement/store"
	taskstore "pmfin-backend/lib/task/store"
	"pmfin-backend/lib/utils/testdb"
	"pmfin-backend/models"
	analyticsapimodels "pmfin-backend/models/api/analytics"
	dbmodels "pmfin-backend/models/db"
)

func TestSummary(t *testing.T) {
	tx := testdb.New(t)
	h := impl{
		store:              analyticsstore.NewInstance(tx),
		reimbursementStore: reimbursementstore.NewInstance(tx),
		taskStore:          taskstore.NewInstance(tx),
		now:                func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
	paidAt := func(month time.Month) *time.Time {
		value := time.Date(2026, month, 10, 12, 0, 0, 0, time.UTC)
		return &value
	}
	invoices := []dbmodels.Invoice{
		{Number: "1", Type: models.FlowIncome, Status: models.InvoiceStatusPaid, Amount: decimal.NewFromInt(100), TaxAmount: decimal.NewFromInt(20), PaidAt: paidAt(time.February)},
		{Number: "2", Type: models.FlowIncome, Status: models.InvoiceStatusPaid, Amount: decimal.NewFromInt(50), PaidAt: paidAt(time.February)},
		{Number: "3", Type: models.FlowExpense, Status: models.InvoiceStatusPaid, Amount: decimal.NewFromInt(30), PaidAt: paidAt(time.March)},
		{Number: "4", Type: models.FlowIncome, Status: models.InvoiceStatusSent, Amount: decimal.NewFromInt(999)},
		{Number: "5", Type: models.FlowIncome, Status: models.InvoiceStatusOverdue, Amount: decimal.NewFromInt(10)},
	}
	require.NoError(t, tx.Create(&invoices).Error)
	lastYear := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	old := dbmodels.Invoice{Number: "6", Type: models.FlowIncome, Status: models.InvoiceStatusPaid, Amount: decimal.NewFromInt(7), PaidAt: &lastYear}
	require.NoError(t, tx.Create(&old).Error)
	project := dbmodels.Project{Name: "Website"}
	require.NoError(t, tx.Create(&project).Error)
	tasks := []dbmodels.Task{
		{ProjectID: project.ID, Title: "a", Status: models.TaskStatusTodo},
		{ProjectID: project.ID, Title: "b", Status: models.TaskStatusTodo},
		{ProjectID: project.ID, Title: "c", Status: models.TaskStatusDone},
	}
	require.NoError(t, tx.Create(&tasks).Error)

	summary, err := h.Summary(analyticsapimodels.SummaryFilter{})
	require.NoError(t, err)
	require.Equal(t, 2026, summary.Year)
	require.Len(t, summary.Months, 12)
	require.True(t, decimal.NewFromInt(170).Equal(summary.Months[1].Income))
	require.True(t, decimal.NewFromInt(30).Equal(summary.Months[2].Expense))
	require.True(t, decimal.Zero.Equal(summary.Months[0].Income))
	require.True(t, decimal.NewFromInt(170).Equal(summary.Income))
	require.True(t, decimal.NewFromInt(30).Equal(summary.Expense))
	require.EqualValues(t, 1, summary.OverdueInvoices)
	require.EqualValues(t, 2, summary.TaskCounts[models.TaskStatusTodo])
	require.EqualValues(t, 1, summary.TaskCounts[models.TaskStatusDone])
}
