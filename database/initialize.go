package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seslidavet.link/configs/configslog"
	"seslidavet.link/database/migrations"
)

// Initialize migrasyonları tek bir transaction içinde çalıştırır.
func Initialize(db *gorm.DB, migrate bool) {
	if !migrate {
		configslog.SLog.Info("Migrate bayrağı belirtilmedi, işlem yapılmayacak.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Veritabanı transaction başlatılamadı", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Veritabanı başlatma işlemi başarısız oldu (panic)", zap.Any("panic_info", r))
		}
	}()

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")

	if err := RunMigrationsInOrder(tx); err != nil {
		configslog.Log.Error("Migrasyon başarısız oldu, işlem geri alınıyor", zap.Error(err))
		if rbErr := tx.Rollback().Error; rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
			configslog.Log.Error("Rollback sırasında ek hata oluştu", zap.Error(rbErr))
		}
		return
	}

	if err := tx.Commit().Error; err != nil {
		configslog.Log.Error("Commit başarısız oldu", zap.Error(err))
		return
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
}

// RunMigrationsInOrder tabloları FK bağımlılık sırasıyla migrate eder:
// önce events, sonra guests, en son rsvps.
func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info(" -> Event migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateEventsTable(db); err != nil {
		configslog.Log.Error("Events tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> Guest migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateGuestsTable(db); err != nil {
		configslog.Log.Error("Guests tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> RSVP migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateRSVPsTable(db); err != nil {
		configslog.Log.Error("RSVPs tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}
