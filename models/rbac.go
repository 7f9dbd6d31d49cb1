package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	UsersModule         Module = "USERS"
	ProjectModule       Module = "PROJECT"
	TaskModule          Module = "TASK"
	TeamModule          Module = "TEAM"
	InvoiceModule       Module = "INVOICE"
	BillingModule       Module = "BILLING"
	ReimbursementModule Module = "REIMBURSEMENT"
	DictModule          Module = "DICT"
	AnalyticsModule     Module = "ANALYTICS"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
	FilesPermission  Permission = "FILES"
	ExportPermission Permission = "EXPORT"
)
