package main

import (
	"flag"

	"go.uber.org/zap"

	"seslidavet.link/configs"
	"seslidavet.link/configs/configsdatabase"
	"seslidavet.link/configs/configslog"
	"seslidavet.link/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Veritabanı migrasyonlarını çalıştır")
	flag.Parse()

	cfg, err := configs.Load()
	if err != nil {
		configslog.Log.Fatal("Konfigürasyon yüklenemedi", zap.Error(err))
	}

	configsdatabase.InitDB(cfg.DatabaseURL)
	defer configsdatabase.CloseDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	database.Initialize(configsdatabase.GetDB(), *migrateFlag)
	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
