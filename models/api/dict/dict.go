package dictapimodels

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"pmfin-backend/models"
	dbmodels "pmfin-backend/models/db"
)

type VendorData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	TaxCode string `json:"tax_code"`
}

func (v VendorData) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return errors.New("vendor name is required")
	}
	return nil
}

type VendorView struct {
	ID string `json:"id"`
	VendorData
}

func VendorConvert(rec dbmodels.Vendor) VendorView {
	return VendorView{
		ID: rec.ID,
		VendorData: VendorData{
			Name:    rec.Name,
			Email:   rec.Email,
			Phone:   rec.Phone,
			Address: rec.Address,
			TaxCode: rec.TaxCode,
		},
	}
}

type TaxData struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"` // percent
}

func (t TaxData) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("tax name is required")
	}
	if t.Rate.IsNegative() || t.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("tax rate must be between 0 and 100")
	}
	return nil
}

type TaxView struct {
	ID string `json:"id"`
	TaxData
}

func TaxConvert(rec dbmodels.Tax) TaxView {
	return TaxView{
		ID: rec.ID,
		TaxData: TaxData{
			Name: rec.Name,
			Rate: rec.Rate,
		},
	}
}

type CategoryData struct {
	Name string          `json:"name"`
	Type models.FlowType `json:"type"`
}

func (c CategoryData) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category name is required")
	}
	if !c.Type.IsValid() {
		return errors.Errorf("unknown category type: %v", c.Type)
	}
	return nil
}

type CategoryView struct {
	ID string `json:"id"`
	CategoryData
}

func CategoryConvert(rec dbmodels.Category) CategoryView {
	return CategoryView{
		ID: rec.ID,
		CategoryData: CategoryData{
			Name: rec.Name,
			Type: rec.Type,
		},
	}
}

type DictFilter struct {
	Name string          `json:"name" query:"name"`
	Type models.FlowType `json:"type" query:"type"`
}

func VendorToDB(data VendorData) dbmodels.Vendor {
	return dbmodels.Vendor{
		Name:    data.Name,
		Email:   data.Email,
		Phone:   data.Phone,
		Address: data.Address,
		TaxCode: data.TaxCode,
	}
}

type RoleView struct {
	Role models.UserRole `json:"role"`
	Name string          `json:"name"`
}

func GetRoles() []RoleView {
	result := make([]RoleView, 0, len(models.AllRoles))
	for _, role := range models.AllRoles {
		result = append(result, RoleView{Role: role, Name: role.ToHuman()})
	}
	return result
}
