package models

import "fmt"

type NotificationCode string

type NotificationTpl struct {
	Name  string
	Title string
	Msg   string
}

const (
	NotifyTaskAssigned  NotificationCode = "TaskAssigned"
	NotifyTaskSubmitted NotificationCode = "TaskSubmitted"
	NotifyTaskApproved  NotificationCode = "TaskApproved"
	NotifyTaskRevision  NotificationCode = "TaskRevision"

	NotifyReimbursementApproved NotificationCode = "ReimbursementApproved"
	NotifyReimbursementRejected NotificationCode = "ReimbursementRejected"
	NotifyReimbursementPaid     NotificationCode = "ReimbursementPaid"

	NotifyInvoiceOverdue NotificationCode = "InvoiceOverdue"
)

var NotificationCodeMap = map[NotificationCode]NotificationTpl{
	NotifyTaskAssigned:  {Name: "Task assigned", Title: "New task", Msg: "Task «%v» was assigned to you."},
	NotifyTaskSubmitted: {Name: "Task submitted for review", Title: "Task submitted", Msg: "Task «%v» was submitted by %v."},
	NotifyTaskApproved:  {Name: "Task approved", Title: "Task approved", Msg: "Task «%v» was approved by %v."},
	NotifyTaskRevision:  {Name: "Task sent to revision", Title: "Revision requested", Msg: "Task «%v» needs revision, requested by %v."},

	NotifyReimbursementApproved: {Name: "Reimbursement approved", Title: "Reimbursement approved", Msg: "Your reimbursement «%v» was approved."},
	NotifyReimbursementRejected: {Name: "Reimbursement rejected", Title: "Reimbursement rejected", Msg: "Your reimbursement «%v» was rejected: %v."},
	NotifyReimbursementPaid:     {Name: "Reimbursement paid", Title: "Reimbursement paid", Msg: "Your reimbursement «%v» was paid."},

	NotifyInvoiceOverdue: {Name: "Invoice overdue", Title: "Invoice overdue", Msg: "Invoice %v is overdue since %v."},
}

func (c NotificationCode) Render(args ...any) (title, msg string) {
	tpl, ok := NotificationCodeMap[c]
	if !ok {
		return string(c), fmt.Sprint(args...)
	}
	return tpl.Title, fmt.Sprintf(tpl.Msg, args...)
}
