package cart

// Draft is the serializable form of a Selection, stored per customer so
// an in-progress cart survives a reload or a device switch.
type Draft struct {
	Quantities  map[uint]map[string]int `json:"quantities"`
	Preferences map[uint]DeliveryChoice `json:"preferences,omitempty"`
}

// Snapshot copies the selection into a Draft.
func (s *Selection) Snapshot() Draft {
	d := Draft{
		Quantities:  make(map[uint]map[string]int, len(s.quantities)),
		Preferences: make(map[uint]DeliveryChoice, len(s.preferences)),
	}
	for id, days := range s.quantities {
		copied := make(map[string]int, len(days))
		for day, qty := range days {
			copied[day] = qty
		}
		d.Quantities[id] = copied
	}
	for id, p := range s.preferences {
		d.Preferences[id] = p
	}
	return d
}

// FromDraft rebuilds a Selection, dropping non-positive quantities and
// preferences that no longer have a matching quantity entry.
func FromDraft(d Draft) *Selection {
	s := New()
	for id, days := range d.Quantities {
		for day, qty := range days {
			s.Set(id, day, qty)
		}
	}
	for id, p := range d.Preferences {
		if s.Quantity(id) > 0 {
			s.preferences[id] = p
		}
	}
	return s
}
