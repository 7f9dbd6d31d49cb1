package xlsexport

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"pmfin-backend/models"
	dbmodels "pmfin-backend/models/db"
)

func TestExportInvoiceList(t *testing.T) {
	issued := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	list := []dbmodels.Invoice{
		{
			Number:    "INV-001",
			Type:      models.FlowIncome,
			Status:    models.InvoiceStatusSent,
			Project:   &dbmodels.Project{Name: "Website"},
			Amount:    decimal.RequireFromString("1000"),
			TaxAmount: decimal.RequireFromString("200"),
			IssueDate: issued,
			DueDate:   issued.AddDate(0, 0, 30),
		},
	}
	buf, err := Instance.ExportInvoiceList(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(invoiceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, invoiceHeaders[0], rows[0][0])
	require.Equal(t, "INV-001", rows[1][0])
	require.Equal(t, "Website", rows[1][3])
	require.Equal(t, "2026-03-31", rows[1][7])
	require.Equal(t, "USD", rows[1][8])

	total, err := f.GetCellValue(invoiceSheet, "L2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Equal(t, "1200", total)
}

func TestExportReimbursementList(t *testing.T) {
	list := []dbmodels.Reimbursement{
		{
			Title:       "Taxi",
			Status:      models.ReimbursementPaid,
			Amount:      decimal.RequireFromString("42.5"),
			SubmittedBy: &dbmodels.User{Name: "Bob"},
		},
	}
	buf, err := Instance.ExportReimbursementList(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reimbursementSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Bob", rows[1][1])
	require.Equal(t, "PAID", rows[1][2])
	require.Equal(t, "no", rows[1][7])
}
