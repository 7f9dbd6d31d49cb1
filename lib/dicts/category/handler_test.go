package categoryprovider

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	categorystore "pmfin-backend/lib/dicts/category/store"
	"pmfin-backend/lib/utils/testdb"
	"pmfin-backend/models"
	dictapimodels "pmfin-backend/models/api/dict"
	dbmodels "pmfin-backend/models/db"
)

func TestCategory(t *testing.T) {
	tx := testdb.New(t)
	h := impl{store: categorystore.NewInstance(tx)}

	travelID, err := h.Create(dictapimodels.CategoryData{Name: "Travel", Type: models.FlowExpense})
	require.NoError(t, err)
	_, err = h.Create(dictapimodels.CategoryData{Name: "Consulting", Type: models.FlowIncome})
	require.NoError(t, err)

	t.Run("filter by type", func(t *testing.T) {
		list, err := h.FindByName(dictapimodels.DictFilter{Type: models.FlowIncome})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Consulting", list[0].Name)

		list, err = h.FindByName(dictapimodels.DictFilter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
	})
	t.Run("used by reimbursement", func(t *testing.T) {
		rec := dbmodels.Reimbursement{
			Title:         "Flight",
			Amount:        decimal.NewFromInt(300),
			Status:        models.ReimbursementPending,
			CategoryID:    &travelID,
			SubmittedByID: "u1",
		}
		require.NoError(t, tx.Create(&rec).Error)
		hMsg, err := h.Delete(travelID)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		view, err := h.Get(travelID)
		require.NoError(t, err)
		require.Equal(t, models.FlowExpense, view.Type)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := h.Get("missing")
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
}
