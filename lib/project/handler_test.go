package projecthandler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	projectstore "pmfin-backend/lib/project/store"
	userstore "pmfin-backend/lib/users/store"
	"pmfin-backend/lib/utils/testdb"
	"pmfin-backend/models"
	projectapimodels "pmfin-backend/models/api/project"
	dbmodels "pmfin-backend/models/db"
)

func TestProject(t *testing.T) {
	tx := testdb.New(t)
	h := impl{
		store:     projectstore.NewInstance(tx),
		userStore: userstore.NewInstance(tx),
	}
	pm := dbmodels.User{Email: "pm@example.com", Name: "Kate", Role: models.ProjectManagerRole}
	dev := dbmodels.User{Email: "dev@example.com", Name: "Bob", Role: models.EmployeeRole}
	require.NoError(t, tx.Create(&pm).Error)
	require.NoError(t, tx.Create(&dev).Error)

	t.Run("manager must manage", func(t *testing.T) {
		_, hMsg, err := h.Create(projectapimodels.ProjectData{Name: "Website", ManagerID: dev.ID})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})

	id, hMsg, err := h.Create(projectapimodels.ProjectData{
		Name:      "Website",
		ManagerID: pm.ID,
		Budget:    decimal.NewFromInt(5000),
		Tags:      []string{"web", "q3"},
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	t.Run("get", func(t *testing.T) {
		view, err := h.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, "Kate", view.ManagerName)
		require.Equal(t, []string{"web", "q3"}, view.Tags)
		require.True(t, decimal.NewFromInt(5000).Equal(view.Budget))
	})
	t.Run("list", func(t *testing.T) {
		list, count, err := h.List(projectapimodels.ProjectFilter{Search: "web"})
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
		require.Len(t, list, 1)
	})
	t.Run("update clears manager", func(t *testing.T) {
		hMsg, err := h.Update(id, projectapimodels.ProjectData{Name: "Website v2"})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		view, err := h.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, "Website v2", view.Name)
		require.Empty(t, view.ManagerID)
	})
	t.Run("delete with tasks", func(t *testing.T) {
		task := dbmodels.Task{ProjectID: id, Title: "Landing", Status: models.TaskStatusTodo}
		require.NoError(t, tx.Create(&task).Error)
		hMsg, err := h.Delete(id)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := h.GetByID("missing")
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
}
