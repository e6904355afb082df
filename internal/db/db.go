package db

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"hexa_access/internal/models"
)

func Connect(dsn string) *gorm.DB {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, _ := gdb.DB()
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}

	log.Println("Database connected")
	return gdb
}

func AutoMigrate(gdb *gorm.DB) {
	err := gdb.AutoMigrate(
		&models.Character{},
		&models.Log{},
		&models.AlertRule{},
	)
	if err != nil {
		log.Fatalf("Auto-migration failed: %v", err)
	}
}
