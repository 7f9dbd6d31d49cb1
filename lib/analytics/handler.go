package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	analyticsstore "pmfin-backend/lib/analytics/store"
	reimbursementstore "pmfin-backend/lib/reimbursement/store"
	taskstore "pmfin-backend/lib/task/store"
	initchecker "pmfin-backend/lib/utils/init-checker"
	"pmfin-backend/models"
	analyticsapimodels "pmfin-backend/models/api/analytics"
)

type Provider interface {
	Summary(filter analyticsapimodels.SummaryFilter) (analyticsapimodels.Summary, error)
}

var Instance Provider

func NewHandler(tx *gorm.DB) {
	instance := impl{
		store:              analyticsstore.NewInstance(tx),
		reimbursementStore: reimbursementstore.NewInstance(tx),
		taskStore:          taskstore.NewInstance(tx),
		now:                time.Now,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"reimbursementStore", instance.reimbursementStore,
		"taskStore", instance.taskStore,
	)
	Instance = instance
}

type impl struct {
	store              analyticsstore.Provider
	reimbursementStore reimbursementstore.Provider
	taskStore          taskstore.Provider
	now                func() time.Time
}

func (i impl) Summary(filter analyticsapimodels.SummaryFilter) (analyticsapimodels.Summary, error) {
	year := filter.Year
	if year <= 0 {
		year = i.now().Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	invoices, err := i.store.PaidInvoices(from, from.AddDate(1, 0, 0))
	if err != nil {
		return analyticsapimodels.Summary{}, err
	}
	result := analyticsapimodels.Summary{
		Year:    year,
		Months:  make([]analyticsapimodels.MonthTotal, 12),
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for idx := range result.Months {
		result.Months[idx] = analyticsapimodels.MonthTotal{
			Month:   idx + 1,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}
	for _, rec := range invoices {
		if rec.PaidAt == nil {
			continue
		}
		month := &result.Months[rec.PaidAt.UTC().Month()-1]
		switch rec.Type {
		case models.FlowIncome:
			month.Income = month.Income.Add(rec.Total())
			result.Income = result.Income.Add(rec.Total())
		case models.FlowExpense:
			month.Expense = month.Expense.Add(rec.Total())
			result.Expense = result.Expense.Add(rec.Total())
		}
	}
	result.ReimbursementTotals, err = i.reimbursementStore.TotalsByStatus()
	if err != nil {
		return analyticsapimodels.Summary{}, err
	}
	result.TaskCounts, err = i.taskStore.CountByStatus()
	if err != nil {
		return analyticsapimodels.Summary{}, err
	}
	result.OverdueInvoices, err = i.store.CountInvoices(models.InvoiceStatusOverdue)
	if err != nil {
		return analyticsapimodels.Summary{}, err
	}
	return result, nil
}
