package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "pmfin-backend/models/db"
)

func AutoMigrateDB(tx *gorm.DB) error {
	log.Info("running migrations")
	migrations := []struct {
		name  string
		model any
	}{
		{"User", &dbmodels.User{}},
		{"Team", &dbmodels.Team{}},
		{"Project", &dbmodels.Project{}},
		{"Task", &dbmodels.Task{}},
		{"Vendor", &dbmodels.Vendor{}},
		{"Tax", &dbmodels.Tax{}},
		{"Category", &dbmodels.Category{}},
		{"Invoice", &dbmodels.Invoice{}},
		{"ProjectBill", &dbmodels.ProjectBill{}},
		{"Reimbursement", &dbmodels.Reimbursement{}},
		{"Attachment", &dbmodels.Attachment{}},
		{"Notification", &dbmodels.Notification{}},
	}
	for _, m := range migrations {
		if err := tx.AutoMigrate(m.model); err != nil {
			return errors.Wrapf(err, "failed to migrate %v", m.name)
		}
	}
	log.Info("migrations completed")
	return nil
}
