package cart

import (
	"errors"
	"time"

	"github.com/dolevhayut/mineral-gas-sub001/models"
)

// ErrEmptySelection is returned when a selection with no positive
// quantities reaches submission.
var ErrEmptySelection = errors.New("selection has no items")

// DeliveryChoice is the customer's delivery preference for a product:
// either "as soon as possible" or an explicit date.
type DeliveryChoice struct {
	ASAP bool       `json:"asap"`
	Day  string     `json:"day,omitempty"` // "sunday".."friday"
	Date *time.Time `json:"date,omitempty"`
}

// Selection holds an in-progress cart: quantities per product per
// delivery day, plus one delivery preference per product. A quantity
// that drops to zero removes both the entry and its preference.
type Selection struct {
	quantities  map[uint]map[string]int
	preferences map[uint]DeliveryChoice
}

func New() *Selection {
	return &Selection{
		quantities:  make(map[uint]map[string]int),
		preferences: make(map[uint]DeliveryChoice),
	}
}

// Set assigns a quantity directly, clamping at zero. A day of "" is
// stored under the ASAP tag.
func (s *Selection) Set(productID uint, day string, qty int) {
	day = normalizeDay(day)
	if qty <= 0 {
		s.remove(productID, day)
		return
	}
	if s.quantities[productID] == nil {
		s.quantities[productID] = make(map[string]int)
	}
	s.quantities[productID][day] = qty
}

// Add raises the quantity by n, merging repeated (product, day) entries.
func (s *Selection) Add(productID uint, day string, n int) {
	if n <= 0 {
		return
	}
	day = normalizeDay(day)
	if s.quantities[productID] == nil {
		s.quantities[productID] = make(map[string]int)
	}
	s.quantities[productID][day] += n
}

// Increment raises the quantity by one. The preference is recorded on
// the zero→positive transition only.
func (s *Selection) Increment(productID uint, day string, pref *DeliveryChoice) {
	day = normalizeDay(day)
	if s.quantities[productID] == nil {
		s.quantities[productID] = make(map[string]int)
	}
	if s.Quantity(productID) == 0 && pref != nil {
		s.preferences[productID] = *pref
	}
	s.quantities[productID][day]++
}

// Decrement lowers the quantity by one, removing the entry (and the
// product's preference, once no day holds a positive quantity) at zero.
func (s *Selection) Decrement(productID uint, day string) {
	day = normalizeDay(day)
	days := s.quantities[productID]
	if days == nil {
		return
	}
	if days[day] <= 1 {
		s.remove(productID, day)
		return
	}
	days[day]--
}

func (s *Selection) remove(productID uint, day string) {
	days := s.quantities[productID]
	if days == nil {
		return
	}
	delete(days, day)
	if len(days) == 0 {
		delete(s.quantities, productID)
		delete(s.preferences, productID)
	}
}

// Quantity returns the total quantity for a product across all days.
func (s *Selection) Quantity(productID uint) int {
	total := 0
	for _, q := range s.quantities[productID] {
		total += q
	}
	return total
}

// TotalItems returns the sum of all positive quantities.
func (s *Selection) TotalItems() int {
	total := 0
	for id := range s.quantities {
		total += s.Quantity(id)
	}
	return total
}

// Preference returns the delivery choice for a product, if set.
func (s *Selection) Preference(productID uint) (DeliveryChoice, bool) {
	p, ok := s.preferences[productID]
	return p, ok
}

func normalizeDay(day string) string {
	if day == "" {
		return models.DeliveryDayASAP
	}
	return day
}
