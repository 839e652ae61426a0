package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	return db
}

// Migrate is shared by the server and by tests running on SQLite, so the
// extra statements stick to SQL both engines accept.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Operator{},
		&models.Service{},
		&models.OperatorService{},
		&models.AvailabilityRule{},
		&models.ScheduleSlot{},
		&models.Appointment{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// At most one live appointment per slot, whatever the application does.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_appointment_active_slot
		ON appointments (slot_id)
		WHERE slot_id IS NOT NULL AND status <> 'CANCELLED'
	`).Error; err != nil {
		return err
	}

	return db.Exec(`
		UPDATE businesses
		SET timezone = ?
		WHERE timezone IS NULL OR timezone = ''
	`, timezone.DefaultTimezone).Error
}
