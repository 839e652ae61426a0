// Package dbtest opens throwaway SQLite databases with the production
// migrations and seeds a small two-tenant directory.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/slot-scheduler/internal/db"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// Open returns a migrated database backed by a file in t.TempDir(). A
// single connection serializes transactions the way row locks would.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "scheduler.db") + "?_pragma=busy_timeout(5000)"

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

const (
	TenantA uint = 1
	TenantB uint = 2

	OperatorUserA uint = 100
	OperatorUserB uint = 200
	CustomerID    uint = 300
	OtherCustomer uint = 301
)

type Fixture struct {
	BusinessA models.Business
	BusinessB models.Business
	OperatorA models.Operator
	OperatorB models.Operator
	ServiceA  models.Service
}

// Scopes for the seeded identities.
var (
	Owner     = access.Scope{Role: access.RoleOwner}
	TenantOfA = access.Scope{Role: access.RoleTenant, TenantID: TenantA}
	TenantOfB = access.Scope{Role: access.RoleTenant, TenantID: TenantB}
	OperatorA = access.Scope{Role: access.RoleOperator, TenantID: TenantA, UserID: OperatorUserA}
	OperatorB = access.Scope{Role: access.RoleOperator, TenantID: TenantB, UserID: OperatorUserB}
	Customer  = access.Scope{Role: access.RoleUser, UserID: CustomerID}
	Stranger  = access.Scope{Role: access.RoleUser, UserID: OtherCustomer}
)

func Seed(t testing.TB, gdb *gorm.DB) Fixture {
	t.Helper()

	tenantA, tenantB := TenantA, TenantB
	users := []models.User{
		{ID: OperatorUserA, TenantID: &tenantA, Name: "Ana", Email: "ana@example.com", Role: string(access.RoleOperator)},
		{ID: OperatorUserB, TenantID: &tenantB, Name: "Bruno", Email: "bruno@example.com", Role: string(access.RoleOperator)},
		{ID: CustomerID, Name: "Carla", Email: "carla@example.com", Role: string(access.RoleUser)},
		{ID: OtherCustomer, Name: "Diego", Email: "diego@example.com", Role: string(access.RoleUser)},
	}
	mustCreate(t, gdb, &users)

	f := Fixture{
		BusinessA: models.Business{TenantID: TenantA, Name: "Studio A", Timezone: "America/Sao_Paulo"},
		BusinessB: models.Business{TenantID: TenantB, Name: "Studio B", Timezone: "Asia/Tokyo"},
	}
	mustCreate(t, gdb, &f.BusinessA)
	mustCreate(t, gdb, &f.BusinessB)

	f.OperatorA = models.Operator{UserID: OperatorUserA, BusinessID: f.BusinessA.ID, TenantID: TenantA, Name: "Ana", Active: true}
	f.OperatorB = models.Operator{UserID: OperatorUserB, BusinessID: f.BusinessB.ID, TenantID: TenantB, Name: "Bruno", Active: true}
	mustCreate(t, gdb, &f.OperatorA)
	mustCreate(t, gdb, &f.OperatorB)

	f.ServiceA = models.Service{BusinessID: f.BusinessA.ID, Name: "Haircut", DurationMinutes: 30, PriceCents: 5000, Active: true}
	mustCreate(t, gdb, &f.ServiceA)

	return f
}

// Rule inserts an active availability rule.
func Rule(t testing.TB, gdb *gorm.DB, operatorID uint, day int, start, end string) models.AvailabilityRule {
	t.Helper()
	r := models.AvailabilityRule{OperatorID: operatorID, DayOfWeek: day, StartTime: start, EndTime: end, Active: true}
	mustCreate(t, gdb, &r)
	return r
}

// Slot inserts a slot in the given status.
func Slot(t testing.TB, gdb *gorm.DB, operatorID uint, date, start, end, status string) models.ScheduleSlot {
	t.Helper()
	s := models.ScheduleSlot{OperatorID: operatorID, Date: date, StartTime: start, EndTime: end, Status: status}
	mustCreate(t, gdb, &s)
	return s
}

func mustCreate(t testing.TB, gdb *gorm.DB, v any) {
	t.Helper()
	if err := gdb.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}
