package itinerary

import (
	"strings"

	"github.com/pkordes/trip-builder/internal/domain"
)

// Serialize maps the draft onto the Trip record that gets persisted.
// Destinations and Highlights are the distinct non-empty slot locations and
// activities, in the order they first appear scanning days then slots. Values
// are kept as written; surrounding whitespace only matters for blank checks
// and de-duplication.
// The itinerary is deep-copied so later edits to the draft do not leak into
// the record. Serialize does not validate; call Validate first.
func (d *Draft) Serialize() domain.Trip {
	p := d.Profile()
	days := domain.CloneDays(d.Days)

	t := domain.Trip{
		Name:           strings.TrimSpace(d.Name),
		Description:    d.Description,
		NumberOfPeople: d.People,
		Preferences:    d.Preferences,
		Status:         p.DefaultStatus,
		TripType:       p.TripType,
		Itinerary:      days,
		Destinations:   distinct(days, func(s domain.Slot) string { return s.Location }),
		Highlights:     distinct(days, func(s domain.Slot) string { return s.Activity }),
	}
	if d.StartDate != nil {
		t.StartDate = *d.StartDate
	}
	if d.EndDate != nil {
		t.EndDate = *d.EndDate
	}
	if d.Budget != nil {
		b := *d.Budget
		t.Budget = &b
	}

	for _, day := range days {
		for _, s := range day.Slots {
			if !s.TransportNeeded {
				continue
			}
			t.NeedsCar = true
			if t.CarType == nil && s.SelectedVehicle != nil && s.SelectedVehicle.Type != "" {
				ct := s.SelectedVehicle.Type
				t.CarType = &ct
			}
		}
	}
	return t
}

func distinct(days []domain.Day, pick func(domain.Slot) string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, day := range days {
		for _, s := range day.Slots {
			v := pick(s)
			key := strings.TrimSpace(v)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}
