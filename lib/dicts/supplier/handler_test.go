package vendorprovider

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	vendorstore "pmfin-backend/lib/dicts/supplier/store"
	"pmfin-backend/lib/utils/testdb"
	"pmfin-backend/models"
	dictapimodels "pmfin-backend/models/api/dict"
	dbmodels "pmfin-backend/models/db"
)

func TestVendor(t *testing.T) {
	tx := testdb.New(t)
	h := impl{store: vendorstore.NewInstance(tx)}

	id, err := h.Create(dictapimodels.VendorData{Name: "Acme Supplies", Email: "billing@acme.test"})
	require.NoError(t, err)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := h.Create(dictapimodels.VendorData{Name: "acme supplies"})
		require.True(t, errors.Is(err, models.ErrConflict))
	})
	t.Run("update and get", func(t *testing.T) {
		require.NoError(t, h.Update(id, dictapimodels.VendorData{Name: "Acme Ltd", Phone: "+100"}))
		view, err := h.Get(id)
		require.NoError(t, err)
		require.Equal(t, "Acme Ltd", view.Name)
		require.Equal(t, "+100", view.Phone)
	})
	t.Run("find", func(t *testing.T) {
		list, err := h.FindByName(dictapimodels.DictFilter{Name: "acme"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		list, err = h.FindByName(dictapimodels.DictFilter{Name: "globex"})
		require.NoError(t, err)
		require.Empty(t, list)
	})
	t.Run("in use", func(t *testing.T) {
		invoice := dbmodels.Invoice{
			Number:   "INV-1",
			Type:     models.FlowExpense,
			Status:   models.InvoiceStatusDraft,
			VendorID: &id,
			Amount:   decimal.NewFromInt(10),
		}
		require.NoError(t, tx.Create(&invoice).Error)
		hMsg, err := h.Delete(id)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		require.NoError(t, tx.Delete(&invoice).Error)
		hMsg, err = h.Delete(id)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		_, err = h.Get(id)
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
}
