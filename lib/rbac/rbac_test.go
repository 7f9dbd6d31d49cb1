package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pmfin-backend/models"
)

func TestRbac(t *testing.T) {
	t.Run(`pattern match`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/reimbursement/{id}/approve [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r1 := patternRule{segments: patternSegments(path)}

		require.True(t, r1.match("/api/v1/reimbursement/123-321/approve"))
		require.False(t, r1.match("/api/v1/reimbursement/approve"))
		require.False(t, r1.match("/api/v1/reimbursement//approve"))

		path, method, err = parseSwaggerPattern("/api/v1/reimbursement/{id}/attachment/{attachmentID} [get]")
		require.Nil(t, err)
		require.Equal(t, GET, method)
		r2 := patternRule{segments: patternSegments(path)}

		require.True(t, r2.match("/api/v1/reimbursement/123-321/attachment/qwe-ewr123-wr-12"))
		require.False(t, r2.match("/api/v1/reimbursement/we-ewr123-wr-12/attachment"))
	})
	t.Run(`pattern without method`, func(t *testing.T) {
		_, _, err := parseSwaggerPattern("/api/v1/task")
		require.Error(t, err)
		_, _, err = parseSwaggerPattern("/api/v1/task []")
		require.Error(t, err)
	})
}

func TestRules(t *testing.T) {
	i := newImpl()

	check := func(method, path string, role models.UserRole) (allowed bool, found bool) {
		handler, found := i.GetRuleFunc(method, path)
		if !found {
			return true, false
		}
		return handler("user-id", role, path), true
	}

	t.Run(`invoices are finance only`, func(t *testing.T) {
		allowed, found := check("put", "/api/v1/invoice/abc/pay", models.FinanceRole)
		require.True(t, found)
		require.True(t, allowed)

		allowed, _ = check("put", "/api/v1/invoice/abc/pay", models.ProjectManagerRole)
		require.False(t, allowed)

		allowed, _ = check("post", "/api/v1/invoice/list", models.EmployeeRole)
		require.False(t, allowed)
	})
	t.Run(`reimbursement flow`, func(t *testing.T) {
		allowed, _ := check("POST", "/api/v1/reimbursement", models.EmployeeRole)
		require.True(t, allowed)

		allowed, _ = check("PUT", "/api/v1/reimbursement/abc/approve", models.EmployeeRole)
		require.False(t, allowed)

		allowed, _ = check("PUT", "/api/v1/reimbursement/abc/reject", models.FinanceRole)
		require.True(t, allowed)
	})
	t.Run(`exact path wins over pattern`, func(t *testing.T) {
		allowed, found := check("POST", "/api/v1/task/list/", models.EmployeeRole)
		require.True(t, found)
		require.True(t, allowed)
	})
	t.Run(`unregistered route is open`, func(t *testing.T) {
		allowed, found := check("GET", "/api/v1/navigation", models.EmployeeRole)
		require.False(t, found)
		require.True(t, allowed)
	})
	t.Run(`permissions for frontend`, func(t *testing.T) {
		perms := i.GetPermissions(models.EmployeeRole)
		require.Contains(t, perms[models.TaskModule], models.FlowPermission)
		require.NotContains(t, perms[models.TaskModule], models.CreatePermission)
		require.NotContains(t, perms, models.InvoiceModule)

		admin := i.GetPermissions(models.AdminRole)
		require.Contains(t, admin[models.UsersModule], models.ManagePermission)
		require.Contains(t, admin[models.InvoiceModule], models.ExportPermission)
		require.IsNonDecreasing(t, admin[models.TaskModule])

		perms[models.TaskModule] = nil
		require.NotEmpty(t, i.GetPermissions(models.EmployeeRole)[models.TaskModule])
	})
}
