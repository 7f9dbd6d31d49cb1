package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pmfin-backend/models"
)

func rolePtr(role models.UserRole) *models.UserRole {
	return &role
}

func TestDecide(t *testing.T) {
	tree := DefaultTree()

	t.Run("employee denied on projects", func(t *testing.T) {
		decision := tree.Decide("/dashboard/project-management/project", rolePtr(models.EmployeeRole))
		require.Equal(t, Deny, decision)
	})
	t.Run("finance allowed on finance", func(t *testing.T) {
		decision := tree.Decide("/dashboard/finance", rolePtr(models.FinanceRole))
		require.Equal(t, Allow, decision)
	})
	t.Run("nested path inherits restriction", func(t *testing.T) {
		require.Equal(t, Deny, tree.Decide("/dashboard/finance/invoice/42", rolePtr(models.EmployeeRole)))
		require.Equal(t, Deny, tree.Decide("/dashboard/project-management/project/123/edit", rolePtr(models.FinanceRole)))
		require.Equal(t, Allow, tree.Decide("/dashboard/project-management/project/123", rolePtr(models.ProjectManagerRole)))
	})
	t.Run("prefix must end on segment boundary", func(t *testing.T) {
		require.Equal(t, Allow, tree.Decide("/dashboard/financeXYZ", rolePtr(models.EmployeeRole)))
	})
	t.Run("unmatched path is open", func(t *testing.T) {
		for _, role := range models.AllRoles {
			require.Equal(t, Allow, tree.Decide("/some/unknown/page", rolePtr(role)))
		}
	})
	t.Run("admin bypass", func(t *testing.T) {
		paths := []string{
			"/dashboard/admin/users",
			"/dashboard/finance/tax",
			"/dashboard/project-management/task/review",
			"/dashboard/reimbursement/approval",
		}
		for _, path := range paths {
			require.Equal(t, Allow, tree.Decide(path, rolePtr(models.AdminRole)), path)
		}
	})
	t.Run("pending while role is unknown", func(t *testing.T) {
		require.Equal(t, Pending, tree.Decide("/dashboard/admin/users", nil))
		require.Equal(t, Pending, tree.Decide("/dashboard", nil))
	})
	t.Run("path normalisation", func(t *testing.T) {
		require.Equal(t, Deny, tree.Decide("dashboard//finance/", rolePtr(models.EmployeeRole)))
		require.Equal(t, Deny, tree.Decide("/dashboard/finance?tab=1", rolePtr(models.ProjectManagerRole)))
	})
}

func TestDecideMostRestrictiveWins(t *testing.T) {
	tree := Tree{
		{
			Title: "Open",
			Items: []Item{
				{Title: "Reports", URL: "/reports"},
			},
		},
		{
			Title: "Restricted",
			Items: []Item{
				{
					Title: "Reports root",
					URL:   "/reports",
					SubItems: []Item{
						{Title: "Salary", URL: "/reports/salary", AllowedRoles: []models.UserRole{models.FinanceRole}},
					},
				},
				{Title: "Reports duplicate", URL: "/reports", AllowedRoles: []models.UserRole{models.ProjectManagerRole}},
			},
		},
	}

	t.Run("any matching deny wins", func(t *testing.T) {
		require.Equal(t, Deny, tree.Decide("/reports", rolePtr(models.FinanceRole)))
		require.Equal(t, Deny, tree.Decide("/reports/salary", rolePtr(models.ProjectManagerRole)))
		require.Equal(t, Deny, tree.Decide("/reports/salary", rolePtr(models.EmployeeRole)))
	})
	t.Run("allowed by every matching entry", func(t *testing.T) {
		require.Equal(t, Allow, tree.Decide("/reports", rolePtr(models.ProjectManagerRole)))
	})
	t.Run("matches are reported in tree order", func(t *testing.T) {
		matches := tree.Matches("/reports/salary")
		require.Len(t, matches, 4)
		require.Equal(t, "Reports", matches[0].Title)
		require.Equal(t, "Salary", matches[2].Title)
	})
}

func TestVisible(t *testing.T) {
	tree := DefaultTree()

	t.Run("admin sees whole tree", func(t *testing.T) {
		require.Equal(t, len(tree), len(tree.Visible(models.AdminRole)))
	})
	t.Run("employee menu", func(t *testing.T) {
		visible := tree.Visible(models.EmployeeRole)
		urls := collectURLs(visible)
		require.Contains(t, urls, "/dashboard")
		require.Contains(t, urls, "/dashboard/project-management/task")
		require.Contains(t, urls, "/dashboard/reimbursement")
		require.NotContains(t, urls, "/dashboard/project-management/project")
		require.NotContains(t, urls, "/dashboard/project-management/task/review")
		require.NotContains(t, urls, "/dashboard/finance")
		require.NotContains(t, urls, "/dashboard/finance/invoice")
		for _, group := range visible {
			require.NotEqual(t, "Administration", group.Title)
		}
	})
	t.Run("every visible entry is reachable", func(t *testing.T) {
		for _, role := range models.AllRoles {
			for _, url := range collectURLs(tree.Visible(role)) {
				require.Equal(t, Allow, tree.Decide(url, rolePtr(role)), "%s %s", role, url)
			}
		}
	})
	t.Run("static tree is not modified", func(t *testing.T) {
		before := len(collectURLs(tree))
		_ = tree.Visible(models.EmployeeRole)
		require.Equal(t, before, len(collectURLs(DefaultTree())))
	})
}

func collectURLs(tree Tree) []string {
	result := []string{}
	tree.walk(func(item Item) bool {
		result = append(result, item.URL)
		return true
	})
	return result
}
