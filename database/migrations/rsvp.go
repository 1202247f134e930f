package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seslidavet.link/configs/configslog"
	"seslidavet.link/models"
)

// MigrateRSVPsTable RSVP modeli için tabloyu oluşturur/günceller.
// Events ve Guests tabloları zaten var olmalı (FK için).
func MigrateRSVPsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating rsvps table...")
	if err := db.AutoMigrate(&models.RSVP{}); err != nil {
		configslog.Log.Error("Failed to migrate rsvps table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("RSVPs table migrated successfully")
	return nil
}
