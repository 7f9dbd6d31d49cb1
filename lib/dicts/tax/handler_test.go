package taxprovider

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	taxstore "pmfin-backend/lib/dicts/tax/store"
	"pmfin-backend/lib/utils/testdb"
	"pmfin-backend/models"
	dictapimodels "pmfin-backend/models/api/dict"
)

func TestRate(t *testing.T) {
	tx := testdb.New(t)
	h := impl{store: taxstore.NewInstance(tx)}

	id, err := h.Create(dictapimodels.TaxData{Name: "VAT", Rate: decimal.RequireFromString("20")})
	require.NoError(t, err)

	rate, err := h.Rate(id)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(20).Equal(rate))

	_, err = h.Rate("missing")
	require.True(t, errors.Is(err, models.ErrNotFound))

	err = h.Update("missing", dictapimodels.TaxData{Name: "GST", Rate: decimal.NewFromInt(5)})
	require.True(t, errors.Is(err, models.ErrNotFound))
}
