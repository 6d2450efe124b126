package domain

import (
	"encoding/json"
	"fmt"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// TimeOfDayLayout is the layout of Slot.StartTime and Slot.EndTime.
const TimeOfDayLayout = "15:04"

// Day is one calendar date of a trip and the activities planned for it.
// Slots are kept in display order.
type Day struct {
	Date  openapi_types.Date `json:"date"`
	Slots []Slot             `json:"slots"`
}

// Slot is one scheduled activity within a day. The hotel and vehicle
// selections are only meaningful while their gate flag is set.
//
// JSON keys are camelCase because stored itineraries predate this service.
type Slot struct {
	ID               string   `json:"id"`
	Activity         string   `json:"activity"`
	Location         string   `json:"location"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
	TransportNeeded  bool     `json:"transportNeeded"`
	TransportDetails string   `json:"transportDetails"`
	SelectedVehicle  *Vehicle `json:"selectedVehicle"`
	HotelRoomNeeded  bool     `json:"hotelRoomNeeded"`
	HotelDetails     string   `json:"hotelDetails"`
	SelectedRoom     *Room    `json:"selectedRoom"`
	Notes            string   `json:"notes"`
}

// ClearHotel resets every hotel field of the slot.
func (s *Slot) ClearHotel() {
	s.HotelRoomNeeded = false
	s.HotelDetails = ""
	s.SelectedRoom = nil
}

// ClearTransport resets every vehicle field of the slot.
func (s *Slot) ClearTransport() {
	s.TransportNeeded = false
	s.TransportDetails = ""
	s.SelectedVehicle = nil
}

// Clone returns a deep copy of the slot, including its room and vehicle snapshots.
func (s Slot) Clone() Slot {
	out := s
	if s.SelectedRoom != nil {
		r := *s.SelectedRoom
		r.Amenities = cloneStrings(r.Amenities)
		r.Images = cloneStrings(r.Images)
		out.SelectedRoom = &r
	}
	if s.SelectedVehicle != nil {
		v := *s.SelectedVehicle
		v.Features = cloneStrings(v.Features)
		v.Images = cloneStrings(v.Images)
		out.SelectedVehicle = &v
	}
	return out
}

// CloneDays deep-copies an itinerary. Slot lists are never nil in the result
// so the JSON form is always an array.
func CloneDays(days []Day) []Day {
	out := make([]Day, len(days))
	for i, d := range days {
		slots := make([]Slot, len(d.Slots))
		for j, s := range d.Slots {
			slots[j] = s.Clone()
		}
		out[i] = Day{Date: d.Date, Slots: slots}
	}
	return out
}

// ParseItinerary decodes a stored itinerary and checks its shape: dates
// strictly ascending, times in HH:MM (or empty), slot ids unique within a day
// and at most one slot per day holding a hotel selection. Anything else is reported as ErrValidation so a
// malformed row never reaches the itinerary editor.
func ParseItinerary(raw []byte) ([]Day, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []Day{}, nil
	}
	var days []Day
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, fmt.Errorf("%w: itinerary: %v", ErrValidation, err)
	}
	if err := ValidateItinerary(days); err != nil {
		return nil, err
	}
	for i := range days {
		if days[i].Slots == nil {
			days[i].Slots = []Slot{}
		}
	}
	return days, nil
}

// ValidateItinerary checks the structural rules described on ParseItinerary.
func ValidateItinerary(days []Day) error {
	var prev time.Time
	for i, d := range days {
		if d.Date.Time.IsZero() {
			return fmt.Errorf("%w: day %d has no date", ErrValidation, i+1)
		}
		if i > 0 && !d.Date.Time.After(prev) {
			return fmt.Errorf("%w: day %d (%s) is not after the previous day", ErrValidation, i+1, d.Date.Format(openapi_types.DateFormat))
		}
		prev = d.Date.Time

		hotels := 0
		ids := make(map[string]bool, len(d.Slots))
		for _, s := range d.Slots {
			if s.ID != "" {
				if ids[s.ID] {
					return fmt.Errorf("%w: day %d has duplicate slot id %q", ErrValidation, i+1, s.ID)
				}
				ids[s.ID] = true
			}
			if err := ValidateTimeOfDay(s.StartTime); err != nil {
				return err
			}
			if err := ValidateTimeOfDay(s.EndTime); err != nil {
				return err
			}
			if s.HotelRoomNeeded {
				hotels++
			}
		}
		if hotels > 1 {
			return fmt.Errorf("%w: day %d has %d hotel selections", ErrValidation, i+1, hotels)
		}
	}
	return nil
}

// ValidateTimeOfDay accepts "" or an HH:MM time of day.
func ValidateTimeOfDay(s string) error {
	if s == "" {
		return nil
	}
	if len(s) != len(TimeOfDayLayout) {
		return fmt.Errorf("%w: %q is not a valid time of day (HH:MM)", ErrValidation, s)
	}
	if _, err := time.Parse(TimeOfDayLayout, s); err != nil {
		return fmt.Errorf("%w: %q is not a valid time of day (HH:MM)", ErrValidation, s)
	}
	return nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
