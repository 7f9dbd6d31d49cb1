package analyticsapimodels

import (
	"github.com/shopspring/decimal"
	"pmfin-backend/models"
)

type SummaryFilter struct {
	Year int `json:"year" query:"year"`
}

type MonthTotal struct {
	Month   int             `json:"month"` // 1..12
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type Summary struct {
	Year                int                                            `json:"year"`
	Months              []MonthTotal                                   `json:"months"`
	Income              decimal.Decimal                                `json:"income"`
	Expense             decimal.Decimal                                `json:"expense"`
	ReimbursementTotals map[models.ReimbursementStatus]decimal.Decimal `json:"reimbursement_totals"`
	TaskCounts          map[models.TaskStatus]int64                    `json:"task_counts"`
	OverdueInvoices     int64                                          `json:"overdue_invoices"`
}
