package statemachine

import (
	"errors"

	"github.com/dolevhayut/mineral-gas-sub001/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "customer", "admin", "system"
}

// validTransitions is the authoritative state machine definition.
// Cancellation is always a status change — order rows are never deleted.
var validTransitions = []Transition{
	// Admin picks up a pending order
	{From: models.StatusPending, To: models.StatusProcessing, Actor: "admin"},
	// Admin or customer can cancel before delivery starts
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "customer"},
	// Admin completes or cancels an order in processing
	{From: models.StatusProcessing, To: models.StatusCompleted, Actor: "admin"},
	{From: models.StatusProcessing, To: models.StatusCancelled, Actor: "admin"},
	// Admin can complete a pending order directly (same-day delivery)
	{From: models.StatusPending, To: models.StatusCompleted, Actor: "admin"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// IsTerminal reports whether no actor can leave the given state.
func IsTerminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
