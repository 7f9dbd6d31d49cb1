package usershandler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	userstore "pmfin-backend/lib/users/store"
	"pmfin-backend/lib/utils/testdb"
	"pmfin-backend/models"
	userapimodels "pmfin-backend/models/api/user"
)

func newTestHandler(t *testing.T) impl {
	return impl{
		store: userstore.NewInstance(testdb.New(t)),
		tokenGen: func(userID, name string, role models.UserRole) (string, error) {
			return "token-" + userID, nil
		},
	}
}

func TestUsers(t *testing.T) {
	h := newTestHandler(t)
	adminID, hMsg, err := h.Create(userapimodels.UserCreateData{
		Email: "Admin@Example.com ", Name: "Admin", Password: "password1", Role: models.AdminRole,
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	employeeID, _, err := h.Create(userapimodels.UserCreateData{
		Email: "emp@example.com", Name: "Emp", Password: "password2", Role: models.EmployeeRole,
	})
	require.NoError(t, err)

	t.Run("duplicate email", func(t *testing.T) {
		_, hMsg, err := h.Create(userapimodels.UserCreateData{
			Email: "admin@example.com", Password: "password1", Role: models.FinanceRole,
		})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
	t.Run("login", func(t *testing.T) {
		resp, hMsg, err := h.Login(userapimodels.LoginRequest{Email: "admin@example.com", Password: "password1"})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "token-"+adminID, resp.Token)
		require.Equal(t, models.AdminRole, resp.Session.Role)

		_, hMsg, err = h.Login(userapimodels.LoginRequest{Email: "admin@example.com", Password: "wrong"})
		require.NoError(t, err)
		require.Equal(t, wrongCredentials, hMsg)

		_, hMsg, err = h.Login(userapimodels.LoginRequest{Email: "nobody@example.com", Password: "wrong"})
		require.NoError(t, err)
		require.Equal(t, wrongCredentials, hMsg)
	})
	t.Run("role change", func(t *testing.T) {
		require.NoError(t, h.SetRole(adminID, employeeID, models.FinanceRole))
		session, err := h.GetSession(employeeID)
		require.NoError(t, err)
		require.Equal(t, models.FinanceRole, session.Role)

		err = h.SetRole(adminID, adminID, models.EmployeeRole)
		require.True(t, errors.Is(err, models.ErrForbidden))

		require.Error(t, h.SetRole(adminID, employeeID, models.UserRole("ROOT")))
	})
	t.Run("ban blocks login", func(t *testing.T) {
		require.NoError(t, h.Ban(adminID, employeeID, "left company"))
		session, err := h.GetSession(employeeID)
		require.NoError(t, err)
		require.True(t, session.Banned)

		_, hMsg, err := h.Login(userapimodels.LoginRequest{Email: "emp@example.com", Password: "password2"})
		require.NoError(t, err)
		require.Equal(t, "user is banned", hMsg)

		require.NoError(t, h.Unban(employeeID))
		_, hMsg, err = h.Login(userapimodels.LoginRequest{Email: "emp@example.com", Password: "password2"})
		require.NoError(t, err)
		require.Empty(t, hMsg)
	})
	t.Run("list", func(t *testing.T) {
		list, rowCount, err := h.List(userapimodels.UserFilter{Search: "emp"})
		require.NoError(t, err)
		require.EqualValues(t, 1, rowCount)
		require.Equal(t, employeeID, list[0].ID)
	})
	t.Run("delete", func(t *testing.T) {
		require.True(t, errors.Is(h.Delete(adminID, adminID), models.ErrForbidden))
		require.NoError(t, h.Delete(adminID, employeeID))
		rec, err := h.GetActive(employeeID)
		require.NoError(t, err)
		require.Nil(t, rec)
		require.True(t, errors.Is(h.Delete(adminID, employeeID), models.ErrNotFound))
	})
}
