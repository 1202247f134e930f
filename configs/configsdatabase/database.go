package configsdatabase

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"seslidavet.link/configs/configslog"
)

var db *gorm.DB

// InitDB PostgreSQL bağlantısını kurar ve bağlantı havuzunu ayarlar.
func InitDB(dsn string) {
	if dsn == "" {
		configslog.Log.Fatal("DATABASE_URL tanımlı değil")
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		configslog.Log.Fatal("Veritabanı handle alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	db = gormDB
	configslog.SLog.Info("Veritabanı bağlantısı kuruldu.")
}

// GetDB aktif GORM bağlantısını döndürür. InitDB'den önce çağrılmamalıdır.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB çağrıldı ancak veritabanı başlatılmamış")
	}
	return db
}

// CloseDB alttaki sql.DB bağlantısını kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Veritabanı kapatılırken handle alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}
