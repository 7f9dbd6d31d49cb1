package models

// InvoiceStatus is the lifecycle of an invoice document in the finance area.
// It is unrelated to PaymentStatus and the two are never converted.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:     {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:      {InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusOverdue:   {InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusPaid:      {},
	InvoiceStatusCancelled: {},
}

func (s InvoiceStatus) IsValid() bool {
	_, ok := invoiceTransitions[s]
	return ok
}

// IsAllowChange covers user actions only. SENT -> OVERDUE is done by the overdue worker.
func (s InvoiceStatus) IsAllowChange(to InvoiceStatus) bool {
	for _, next := range invoiceTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s InvoiceStatus) NextStatuses() []InvoiceStatus {
	next := invoiceTransitions[s]
	result := make([]InvoiceStatus, len(next))
	copy(result, next)
	return result
}

func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

func (s InvoiceStatus) AllowEdit() bool {
	return s == InvoiceStatusDraft
}

func (s InvoiceStatus) AllowDelete() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusCancelled
}

// PaymentStatus is the payment state of a project bill.
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "PAID"
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusDebt   PaymentStatus = "DEBT"
)

var AllPaymentStatuses = []PaymentStatus{PaymentStatusPaid, PaymentStatusUnpaid, PaymentStatusDebt}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusUnpaid, PaymentStatusDebt:
		return true
	}
	return false
}

type FlowType string

const (
	FlowIncome  FlowType = "INCOME"
	FlowExpense FlowType = "EXPENSE"
)

func (t FlowType) IsValid() bool {
	return t == FlowIncome || t == FlowExpense
}
