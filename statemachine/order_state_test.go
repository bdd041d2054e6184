package statemachine

import (
	"testing"

	"github.com/dolevhayut/mineral-gas-sub001/models"
)

func TestCustomerCanCancelPending(t *testing.T) {
	if err := CanTransition(models.StatusPending, models.StatusCancelled, "customer"); err != nil {
		t.Fatalf("customer should cancel a pending order: %v", err)
	}
}

func TestCustomerCannotCancelProcessing(t *testing.T) {
	if err := CanTransition(models.StatusProcessing, models.StatusCancelled, "customer"); err == nil {
		t.Fatal("customer must not cancel once processing started")
	}
}

func TestAdminLifecycle(t *testing.T) {
	steps := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusProcessing},
		{models.StatusProcessing, models.StatusCompleted},
	}
	for _, s := range steps {
		if err := CanTransition(s.from, s.to, "admin"); err != nil {
			t.Fatalf("admin transition %s → %s should be valid: %v", s.from, s.to, err)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled} {
		if !IsTerminal(s) {
			t.Fatalf("%s should be terminal", s)
		}
	}
	if IsTerminal(models.StatusPending) {
		t.Fatal("pending is not terminal")
	}
}

func TestNoBackwardTransitions(t *testing.T) {
	if err := CanTransition(models.StatusCompleted, models.StatusPending, "admin"); err == nil {
		t.Fatal("completed must not go back to pending")
	}
	if err := CanTransition(models.StatusCancelled, models.StatusProcessing, "admin"); err == nil {
		t.Fatal("cancelled must not resume")
	}
}

func TestValidTransitionsFromPending(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	want := map[models.OrderStatus]bool{
		models.StatusProcessing: true,
		models.StatusCancelled:  true,
		models.StatusCompleted:  true,
	}
	if len(nexts) != len(want) {
		t.Fatalf("unexpected next states: %v", nexts)
	}
	for _, n := range nexts {
		if !want[n] {
			t.Fatalf("unexpected next state %s", n)
		}
	}
}
