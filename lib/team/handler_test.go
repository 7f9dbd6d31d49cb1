package teamhandler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	teamstore "pmfin-backend/lib/team/store"
	"pmfin-backend/lib/utils/testdb"
	"pmfin-backend/models"
	projectapimodels "pmfin-backend/models/api/project"
	dbmodels "pmfin-backend/models/db"
)

func TestTeam(t *testing.T) {
	tx := testdb.New(t)
	h := impl{store: teamstore.NewInstance(tx)}
	alice := dbmodels.User{Email: "alice@example.com", Name: "Alice", Role: models.EmployeeRole}
	bob := dbmodels.User{Email: "bob@example.com", Name: "Bob", Role: models.EmployeeRole}
	require.NoError(t, tx.Create(&alice).Error)
	require.NoError(t, tx.Create(&bob).Error)

	id, err := h.Create(projectapimodels.TeamData{Name: "Core", MemberIDs: []string{alice.ID, alice.ID}})
	require.NoError(t, err)

	view, err := h.GetByID(id)
	require.NoError(t, err)
	require.Len(t, view.Members, 1)

	t.Run("replace members", func(t *testing.T) {
		require.NoError(t, h.Update(id, projectapimodels.TeamData{Name: "Core", MemberIDs: []string{bob.ID}}))
		view, err := h.GetByID(id)
		require.NoError(t, err)
		require.Len(t, view.Members, 1)
		require.Equal(t, "Bob", view.Members[0].Name)
	})
	t.Run("unknown member", func(t *testing.T) {
		err := h.Update(id, projectapimodels.TeamData{Name: "Core", MemberIDs: []string{"missing"}})
		require.True(t, errors.Is(err, models.ErrValidation))
	})
	t.Run("delete assigned team", func(t *testing.T) {
		project := dbmodels.Project{Name: "Website", TeamID: &id}
		require.NoError(t, tx.Create(&project).Error)
		hMsg, err := h.Delete(id)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		require.NoError(t, tx.Delete(&project).Error)
		hMsg, err = h.Delete(id)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		list, err := h.List()
		require.NoError(t, err)
		require.Empty(t, list)
	})
}
