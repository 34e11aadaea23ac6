package database

import (
	"envanter-backend/internal/config"
	"envanter-backend/internal/logger"
	"envanter-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Get().Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Customer{},
		&models.Product{},
		&models.Sale{},
		&models.Purchase{},
		&models.ContactMessage{},
		&models.AuditLog{},
	)
	if err != nil {
		logger.Get().Fatalf("AutoMigrate hatası: %v", err)
	}

	logger.Get().Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
