package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/slot-scheduler/internal/dbtest"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

func TestFindOverlapping(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewAvailabilityGormRepository(gdb)
	ctx := context.Background()

	rule := dbtest.Rule(t, gdb, fx.OperatorA.ID, 1, "09:00", "12:00")

	cases := []struct {
		day        int
		start, end string
		exclude    *uint
		want       bool
	}{
		{1, "11:00", "13:00", nil, true},
		{1, "12:00", "13:00", nil, false},
		{1, "08:00", "09:00", nil, false},
		{2, "10:00", "11:00", nil, false},
		{1, "10:00", "11:00", &rule.ID, false},
	}

	for _, c := range cases {
		found, err := repo.FindOverlapping(ctx, fx.OperatorA.ID, c.day, c.start, c.end, c.exclude)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if (found != nil) != c.want {
			t.Fatalf("%d %s-%s: expected overlap=%v, got %+v", c.day, c.start, c.end, c.want, found)
		}
	}

	if found, _ := repo.FindOverlapping(ctx, fx.OperatorB.ID, 1, "10:00", "11:00", nil); found != nil {
		t.Fatalf("rules of another operator must not overlap")
	}
}

func TestInactiveRulesDoNotOverlap(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewAvailabilityGormRepository(gdb)
	ctx := context.Background()

	rule := dbtest.Rule(t, gdb, fx.OperatorA.ID, 1, "09:00", "12:00")

	changed, err := repo.DeactivateRule(ctx, rule.ID)
	if err != nil || !changed {
		t.Fatalf("deactivate: changed=%v err=%v", changed, err)
	}
	if changed, _ := repo.DeactivateRule(ctx, rule.ID); changed {
		t.Fatalf("second deactivate should not change anything")
	}

	found, err := repo.FindOverlapping(ctx, fx.OperatorA.ID, 1, "10:00", "11:00", nil)
	if err != nil || found != nil {
		t.Fatalf("inactive rule should be ignored: %+v %v", found, err)
	}

	active, _ := repo.ListRules(ctx, fx.OperatorA.ID, true)
	all, _ := repo.ListRules(ctx, fx.OperatorA.ID, false)
	if len(active) != 0 || len(all) != 1 {
		t.Fatalf("unexpected listing active=%d all=%d", len(active), len(all))
	}

	var stored models.AvailabilityRule
	gdb.First(&stored, rule.ID)
	if stored.Active {
		t.Fatalf("rule should be stored inactive")
	}
}

func TestUpdateRuleIfUnchanged(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewAvailabilityGormRepository(gdb)
	ctx := context.Background()

	rule := dbtest.Rule(t, gdb, fx.OperatorA.ID, 1, "09:00", "12:00")
	loaded := rule

	next := loaded
	next.EndTime = "13:00"

	ok, err := repo.UpdateRuleIfUnchanged(ctx, loaded, next)
	if err != nil || !ok {
		t.Fatalf("first update: ok=%v err=%v", ok, err)
	}

	// The row no longer matches the old snapshot.
	stale := loaded
	stale.EndTime = "11:00"
	if ok, err := repo.UpdateRuleIfUnchanged(ctx, loaded, stale); err != nil || ok {
		t.Fatalf("stale update: ok=%v err=%v", ok, err)
	}

	if _, err := repo.DeactivateRule(ctx, rule.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	reopen := next
	reopen.StartTime = "08:00"
	if ok, err := repo.UpdateRuleIfUnchanged(ctx, next, reopen); err != nil || ok {
		t.Fatalf("update of deactivated rule: ok=%v err=%v", ok, err)
	}

	got, err := repo.GetRule(ctx, rule.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Active || got.StartTime != "09:00" || got.EndTime != "13:00" {
		t.Fatalf("unexpected stored rule %+v", got)
	}
}

func TestWithOperatorLock(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewAvailabilityGormRepository(gdb)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.WithOperatorLock(ctx, fx.OperatorA.ID, func(tx domain.Repository) error {
		rule := &models.AvailabilityRule{OperatorID: fx.OperatorA.ID, DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", Active: true}
		if err := tx.CreateRule(ctx, rule); err != nil {
			t.Fatalf("create in lock: %v", err)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	rules, err := repo.ListRules(ctx, fx.OperatorA.ID, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rules) != 0 {
		t.Fatalf("failed callback must roll back, found %+v", rules)
	}

	err = repo.WithOperatorLock(ctx, 9999, func(domain.Repository) error { return nil })
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("unknown operator: expected record not found, got %v", err)
	}
}
