package rbac

import (
	"pmfin-backend/models"
)

var (
	AdminRoleSet               = []models.UserRole{models.AdminRole}
	AdminManagerRoleSet        = []models.UserRole{models.AdminRole, models.ProjectManagerRole}
	AdminFinanceRoleSet        = []models.UserRole{models.AdminRole, models.FinanceRole}
	AdminManagerFinanceRoleSet = []models.UserRole{models.AdminRole, models.ProjectManagerRole, models.FinanceRole}
	AllRoles                   = models.AllRoles
)

func (i *impl) initRules() {
	i.users()
	i.project()
	i.team()
	i.task()
	i.invoice()
	i.billing()
	i.reimbursement()
	i.dicts()
	i.analytics()
}

func (i *impl) register(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) {
	if err := i.RegisterRule(module, permission, roles, swaggerPattern, nil); err != nil {
		panic(err.Error())
	}
}

func (i *impl) users() {
	i.register(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/list [post]")
	i.register(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users [post]")
	i.register(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id} [delete]")
	i.register(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id}/role [put]")
	i.register(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id}/ban [put]")
	i.register(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id}/unban [put]")
}

func (i *impl) project() {
	i.register(models.ProjectModule, models.ViewPermission, AllRoles, "/api/v1/project/list [post]")
	i.register(models.ProjectModule, models.ViewPermission, AllRoles, "/api/v1/project/{id} [get]")
	i.register(models.ProjectModule, models.CreatePermission, AdminManagerRoleSet, "/api/v1/project [post]")
	i.register(models.ProjectModule, models.EditPermission, AdminManagerRoleSet, "/api/v1/project/{id} [put]")
	i.register(models.ProjectModule, models.EditPermission, AdminManagerRoleSet, "/api/v1/project/{id} [delete]")
}

func (i *impl) team() {
	i.register(models.TeamModule, models.ViewPermission, AllRoles, "/api/v1/team/list [post]")
	i.register(models.TeamModule, models.ViewPermission, AllRoles, "/api/v1/team/{id} [get]")
	i.register(models.TeamModule, models.ManagePermission, AdminManagerRoleSet, "/api/v1/team [post]")
	i.register(models.TeamModule, models.ManagePermission, AdminManagerRoleSet, "/api/v1/team/{id} [put]")
	i.register(models.TeamModule, models.ManagePermission, AdminManagerRoleSet, "/api/v1/team/{id} [delete]")
}

func (i *impl) task() {
	i.register(models.TaskModule, models.ViewPermission, AllRoles, "/api/v1/task/list [post]")
	i.register(models.TaskModule, models.ViewPermission, AllRoles, "/api/v1/task/board [get]")
	i.register(models.TaskModule, models.ViewPermission, AllRoles, "/api/v1/task/{id} [get]")
	i.register(models.TaskModule, models.CreatePermission, AdminManagerRoleSet, "/api/v1/task [post]")
	i.register(models.TaskModule, models.EditPermission, AdminManagerRoleSet, "/api/v1/task/{id} [put]")
	i.register(models.TaskModule, models.EditPermission, AdminManagerRoleSet, "/api/v1/task/{id} [delete]")
	// per-transition checks are done by the task policy
	i.register(models.TaskModule, models.FlowPermission, AllRoles, "/api/v1/task/{id}/status [put]")
	i.register(models.TaskModule, models.FlowPermission, AllRoles, "/api/v1/task/{id}/move [put]")
}

func (i *impl) invoice() {
	i.register(models.InvoiceModule, models.ViewPermission, AdminFinanceRoleSet, "/api/v1/invoice/list [post]")
	i.register(models.InvoiceModule, models.ViewPermission, AdminFinanceRoleSet, "/api/v1/invoice/{id} [get]")
	i.register(models.InvoiceModule, models.CreatePermission, AdminFinanceRoleSet, "/api/v1/invoice [post]")
	i.register(models.InvoiceModule, models.EditPermission, AdminFinanceRoleSet, "/api/v1/invoice/{id} [put]")
	i.register(models.InvoiceModule, models.EditPermission, AdminFinanceRoleSet, "/api/v1/invoice/{id} [delete]")
	i.register(models.InvoiceModule, models.FlowPermission, AdminFinanceRoleSet, "/api/v1/invoice/{id}/send [put]")
	i.register(models.InvoiceModule, models.FlowPermission, AdminFinanceRoleSet, "/api/v1/invoice/{id}/pay [put]")
	i.register(models.InvoiceModule, models.FlowPermission, AdminFinanceRoleSet, "/api/v1/invoice/{id}/cancel [put]")
	i.register(models.InvoiceModule, models.ExportPermission, AdminFinanceRoleSet, "/api/v1/invoice/export [post]")
	i.register(models.InvoiceModule, models.ExportPermission, AdminFinanceRoleSet, "/api/v1/invoice/{id}/pdf [get]")
}

func (i *impl) billing() {
	i.register(models.BillingModule, models.ViewPermission, AdminManagerFinanceRoleSet, "/api/v1/billing/list [post]")
	i.register(models.BillingModule, models.ViewPermission, AdminManagerFinanceRoleSet, "/api/v1/billing/{id} [get]")
	i.register(models.BillingModule, models.ViewPermission, AdminManagerFinanceRoleSet, "/api/v1/billing/summary/{projectID} [get]")
	i.register(models.BillingModule, models.CreatePermission, AdminFinanceRoleSet, "/api/v1/billing [post]")
	i.register(models.BillingModule, models.EditPermission, AdminFinanceRoleSet, "/api/v1/billing/{id} [put]")
	i.register(models.BillingModule, models.EditPermission, AdminFinanceRoleSet, "/api/v1/billing/{id} [delete]")
	i.register(models.BillingModule, models.FlowPermission, AdminFinanceRoleSet, "/api/v1/billing/{id}/payment_status [put]")
}

func (i *impl) reimbursement() {
	// ownership of a single request is checked by the reimbursement handler
	i.register(models.ReimbursementModule, models.ViewPermission, AllRoles, "/api/v1/reimbursement/list [post]")
	i.register(models.ReimbursementModule, models.ViewPermission, AllRoles, "/api/v1/reimbursement/{id} [get]")
	i.register(models.ReimbursementModule, models.CreatePermission, AllRoles, "/api/v1/reimbursement [post]")
	i.register(models.ReimbursementModule, models.FilesPermission, AllRoles, "/api/v1/reimbursement/{id}/receipt [post]")
	i.register(models.ReimbursementModule, models.FilesPermission, AllRoles, "/api/v1/reimbursement/{id}/attachment/{attachmentID} [get]")
	i.register(models.ReimbursementModule, models.FlowPermission, AdminFinanceRoleSet, "/api/v1/reimbursement/{id}/approve [put]")
	i.register(models.ReimbursementModule, models.FlowPermission, AdminFinanceRoleSet, "/api/v1/reimbursement/{id}/reject [put]")
	i.register(models.ReimbursementModule, models.FlowPermission, AdminFinanceRoleSet, "/api/v1/reimbursement/{id}/pay [put]")
	i.register(models.ReimbursementModule, models.FlowPermission, AdminFinanceRoleSet, "/api/v1/reimbursement/{id}/proof [post]")
	i.register(models.ReimbursementModule, models.FlowPermission, AdminFinanceRoleSet, "/api/v1/reimbursement/{id}/pay_with_proof [post]")
	i.register(models.ReimbursementModule, models.ExportPermission, AdminFinanceRoleSet, "/api/v1/reimbursement/export [post]")
}

func (i *impl) dicts() {
	for _, dict := range []string{"vendor", "tax", "category"} {
		i.register(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/"+dict+"/list [post]")
		i.register(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/"+dict+"/{id} [get]")
		i.register(models.DictModule, models.ManagePermission, AdminFinanceRoleSet, "/api/v1/dict/"+dict+" [post]")
		i.register(models.DictModule, models.ManagePermission, AdminFinanceRoleSet, "/api/v1/dict/"+dict+"/{id} [put]")
		i.register(models.DictModule, models.ManagePermission, AdminFinanceRoleSet, "/api/v1/dict/"+dict+"/{id} [delete]")
	}
}

func (i *impl) analytics() {
	i.register(models.AnalyticsModule, models.ViewPermission, AdminManagerFinanceRoleSet, "/api/v1/analytics/summary [get]")
}
