package repository

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/dbtest"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

func newAppointment(fx dbtest.Fixture, slotID uint, userID uint, at time.Time) *models.Appointment {
	id := slotID
	return &models.Appointment{
		UserID:          userID,
		OperatorID:      fx.OperatorA.ID,
		BusinessID:      fx.BusinessA.ID,
		ServiceID:       fx.ServiceA.ID,
		SlotID:          &id,
		ScheduledAt:     at,
		DurationMinutes: 30,
		PriceCents:      5000,
		Status:          string(domain.StatusPending),
	}
}

func slotStatus(t *testing.T, repo *AppointmentGormRepository, id uint) string {
	t.Helper()
	s, err := repo.GetSlot(context.Background(), id)
	if err != nil {
		t.Fatalf("get slot: %v", err)
	}
	return s.Status
}

func TestBookIsCompareAndSwap(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	s := dbtest.Slot(t, gdb, fx.OperatorA.ID, "2026-03-02", "09:00", "09:30", string(slot.StatusAvailable))
	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	if err := repo.Book(ctx, newAppointment(fx, s.ID, dbtest.CustomerID, at)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	err := repo.Book(ctx, newAppointment(fx, s.ID, dbtest.OtherCustomer, at))
	if !httperr.IsBusiness(err, "slot_not_available") {
		t.Fatalf("expected slot_not_available, got %v", err)
	}

	var count int64
	gdb.Model(&models.Appointment{}).Where("slot_id = ?", s.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one appointment for the slot, got %d", count)
	}
	if got := slotStatus(t, repo, s.ID); got != string(slot.StatusBooked) {
		t.Fatalf("expected BOOKED, got %s", got)
	}
}

func TestBookRollsBackSlotOnInsertFailure(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	s := dbtest.Slot(t, gdb, fx.OperatorA.ID, "2026-03-02", "09:00", "09:30", string(slot.StatusAvailable))
	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	first := newAppointment(fx, s.ID, dbtest.CustomerID, at)
	if err := repo.Book(ctx, first); err != nil {
		t.Fatalf("book: %v", err)
	}

	// Reusing the primary key makes the insert fail after the slot CAS.
	other := dbtest.Slot(t, gdb, fx.OperatorA.ID, "2026-03-02", "09:30", "10:00", string(slot.StatusAvailable))
	dup := newAppointment(fx, other.ID, dbtest.CustomerID, at)
	dup.ID = first.ID

	if err := repo.Book(ctx, dup); err == nil {
		t.Fatalf("expected insert failure")
	}
	if got := slotStatus(t, repo, other.ID); got != string(slot.StatusAvailable) {
		t.Fatalf("slot should be rolled back to AVAILABLE, got %s", got)
	}
}

func TestCancelReleasesSlotOnce(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	s := dbtest.Slot(t, gdb, fx.OperatorA.ID, "2026-03-02", "09:00", "09:30", string(slot.StatusAvailable))
	ap := newAppointment(fx, s.ID, dbtest.CustomerID, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	if err := repo.Book(ctx, ap); err != nil {
		t.Fatalf("book: %v", err)
	}

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.Cancel(ctx, ap.ID, now, "Cancelled: sick"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := slotStatus(t, repo, s.ID); got != string(slot.StatusAvailable) {
		t.Fatalf("expected AVAILABLE after cancel, got %s", got)
	}

	// Someone blocks the released slot; a duplicate cancel must not touch it.
	gdb.Model(&models.ScheduleSlot{}).Where("id = ?", s.ID).Update("status", string(slot.StatusBlocked))

	err := repo.Cancel(ctx, ap.ID, now, "again")
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected CONFLICT on second cancel, got %v", err)
	}
	if got := slotStatus(t, repo, s.ID); got != string(slot.StatusBlocked) {
		t.Fatalf("slot should stay BLOCKED, got %s", got)
	}

	stored, _ := repo.GetAppointment(ctx, ap.ID)
	if stored.Status != string(domain.StatusCancelled) || stored.CancelledAt == nil || stored.Notes != "Cancelled: sick" {
		t.Fatalf("unexpected stored appointment %+v", stored)
	}
}

func TestTransitionIsConditional(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	s := dbtest.Slot(t, gdb, fx.OperatorA.ID, "2026-03-02", "09:00", "09:30", string(slot.StatusAvailable))
	ap := newAppointment(fx, s.ID, dbtest.CustomerID, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	if err := repo.Book(ctx, ap); err != nil {
		t.Fatalf("book: %v", err)
	}

	now := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)

	if ok, _ := repo.Transition(ctx, ap.ID, domain.Complete, now); ok {
		t.Fatalf("complete from PENDING must not apply")
	}
	if ok, err := repo.Transition(ctx, ap.ID, domain.Confirm, now); !ok || err != nil {
		t.Fatalf("confirm: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.Transition(ctx, ap.ID, domain.Complete, now); !ok || err != nil {
		t.Fatalf("complete: ok=%v err=%v", ok, err)
	}

	stored, _ := repo.GetAppointment(ctx, ap.ID)
	if stored.Status != string(domain.StatusCompleted) || stored.CompletedAt == nil {
		t.Fatalf("unexpected stored appointment %+v", stored)
	}
	if ok, _ := repo.Transition(ctx, ap.ID, domain.NoShow, now); ok {
		t.Fatalf("no-show from COMPLETED must not apply")
	}
}

func TestListAppointmentsRestriction(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	bookings := []struct {
		user       uint
		start, end string
	}{
		{dbtest.CustomerID, "09:00", "09:30"},
		{dbtest.OtherCustomer, "09:30", "10:00"},
		{dbtest.CustomerID, "10:00", "10:30"},
	}
	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	for i, b := range bookings {
		s := dbtest.Slot(t, gdb, fx.OperatorA.ID, "2026-03-02", b.start, b.end, string(slot.StatusAvailable))
		if err := repo.Book(ctx, newAppointment(fx, s.ID, b.user, at.Add(time.Duration(i)*30*time.Minute))); err != nil {
			t.Fatalf("book: %v", err)
		}
	}

	cases := []struct {
		name  string
		scope access.Scope
		want  int64
	}{
		{"owner", dbtest.Owner, 3},
		{"tenant A", dbtest.TenantOfA, 3},
		{"tenant B", dbtest.TenantOfB, 0},
		{"operator A", dbtest.OperatorA, 3},
		{"operator B", dbtest.OperatorB, 0},
		{"customer", dbtest.Customer, 2},
		{"stranger", dbtest.Stranger, 1},
	}

	for _, c := range cases {
		r, err := access.RestrictionFor(c.scope)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		list, total, err := repo.ListAppointments(ctx, domain.ListFilter{Restriction: r})
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if total != c.want || int64(len(list)) != c.want {
			t.Fatalf("%s: expected %d, got total=%d len=%d", c.name, c.want, total, len(list))
		}
	}

	page, total, err := repo.ListAppointments(ctx, domain.ListFilter{Page: 2, Limit: 2})
	if err != nil || total != 3 || len(page) != 1 {
		t.Fatalf("pagination: total=%d len=%d err=%v", total, len(page), err)
	}
}
