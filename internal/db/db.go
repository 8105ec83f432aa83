package db

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/config"
	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	sqlDB, err := sql.Open("pgx", cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.AdminUser{},
		&models.Employee{},
		&models.Booking{},
		&models.ExternalParticipant{},
		&models.AttendanceRecord{},
		&models.RoomBlock{},
		&models.RoomSetting{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedLabCapacity(db, cfg)

	return db
}

// seedLabCapacity garante a configuração de capacidade do laboratório da
// Escola Fazendária na primeira subida; depois só o admin altera.
func seedLabCapacity(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.RoomSetting{}).
		Where("room = ?", domain.RoomEscolaFazendaria).
		Count(&count)

	if count == 0 {
		db.Create(&models.RoomSetting{
			Room:               domain.RoomEscolaFazendaria,
			AvailableComputers: cfg.DefaultLabCapacity,
		})
	}
}
