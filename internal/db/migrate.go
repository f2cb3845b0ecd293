package db

import (
	"palmroute/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Dispatch{},
		&models.CargoManifest{},
		&models.CrewLog{},
		&models.Notam{},
		&models.FleetEntry{},
		&models.Transaction{},
		&models.CompanyAccount{},
		&models.Setting{},
		&models.BalanceSnapshot{},
	)
}
