package navigation

import "pmfin-backend/models"

var (
	adminManager = []models.UserRole{models.AdminRole, models.ProjectManagerRole}
	adminFinance = []models.UserRole{models.AdminRole, models.FinanceRole}
	adminOnly    = []models.UserRole{models.AdminRole}
)

var defaultTree = Tree{
	{
		Title: "General",
		Items: []Item{
			{Title: "Dashboard", URL: "/dashboard"},
			{Title: "Notifications", URL: "/dashboard/notifications"},
			{Title: "Profile", URL: "/dashboard/profile"},
		},
	},
	{
		Title: "Project management",
		Items: []Item{
			{
				Title:        "Projects",
				URL:          "/dashboard/project-management/project",
				AllowedRoles: adminManager,
			},
			{
				Title: "Tasks",
				URL:   "/dashboard/project-management/task",
				SubItems: []Item{
					{Title: "Kanban", URL: "/dashboard/project-management/task/kanban"},
					{Title: "Review", URL: "/dashboard/project-management/task/review", AllowedRoles: adminManager},
				},
			},
			{
				Title:        "Teams",
				URL:          "/dashboard/project-management/team",
				AllowedRoles: adminManager,
			},
		},
	},
	{
		Title: "Finance",
		Items: []Item{
			{
				Title:        "Finance",
				URL:          "/dashboard/finance",
				AllowedRoles: adminFinance,
				SubItems: []Item{
					{Title: "Invoices", URL: "/dashboard/finance/invoice"},
					{Title: "Project billing", URL: "/dashboard/finance/billing"},
					{Title: "Vendors", URL: "/dashboard/finance/vendor"},
					{Title: "Taxes", URL: "/dashboard/finance/tax"},
					{Title: "Categories", URL: "/dashboard/finance/category"},
				},
			},
			{
				Title: "Reimbursements",
				URL:   "/dashboard/reimbursement",
				SubItems: []Item{
					{Title: "Approval", URL: "/dashboard/reimbursement/approval", AllowedRoles: adminFinance},
				},
			},
		},
	},
	{
		Title: "Administration",
		Items: []Item{
			{Title: "Users", URL: "/dashboard/admin/users", AllowedRoles: adminOnly},
		},
	},
}

// DefaultTree returns the dashboard navigation. The tree is static; callers must not modify it.
func DefaultTree() Tree {
	return defaultTree
}
