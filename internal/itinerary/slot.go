package itinerary

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-builder/internal/domain"
)

// SlotField names a per-slot field settable through UpdateSlot.
type SlotField string

const (
	SlotActivity        SlotField = "activity"
	SlotLocation        SlotField = "location"
	SlotStartTime       SlotField = "startTime"
	SlotEndTime         SlotField = "endTime"
	SlotNotes           SlotField = "notes"
	SlotHotelDetails    SlotField = "hotelDetails"
	SlotTransportNeeded SlotField = "transportNeeded"
	SlotHotelRoomNeeded SlotField = "hotelRoomNeeded"
)

// HotelConflict describes a request to move a day's hotel selection from one
// slot to another. It is handed to the confirmation callback.
type HotelConflict struct {
	DayIndex      int
	Date          time.Time
	HolderSlotID  string // slot that currently holds the hotel
	HolderHotel   string // its hotel name, possibly empty
	RequestSlotID string // slot asking for the hotel
}

// UpdateOption adjusts UpdateSlot.
type UpdateOption func(*updateConfig)

type updateConfig struct {
	confirm func(HotelConflict) bool
}

// Confirm installs the callback asked before another slot's hotel selection is
// cleared. Returning false rejects the update.
func Confirm(fn func(HotelConflict) bool) UpdateOption {
	return func(c *updateConfig) { c.confirm = fn }
}

// Confirmed answers yes to any hotel conflict, for callers that already asked
// the user.
func Confirmed() UpdateOption {
	return Confirm(func(HotelConflict) bool { return true })
}

// AddSlot appends a new slot to a day, using the profile's default time window.
func (d *Draft) AddSlot(dayIndex int) (domain.Slot, error) {
	day, err := d.day(dayIndex)
	if err != nil {
		return domain.Slot{}, err
	}
	p := d.Profile()
	s := domain.Slot{
		ID:        uuid.NewString(),
		StartTime: p.SlotStart,
		EndTime:   p.SlotEnd,
	}
	day.Slots = append(day.Slots, s)
	return s, nil
}

// RemoveSlot deletes a slot from a day. Removing an unknown id does nothing.
func (d *Draft) RemoveSlot(dayIndex int, slotID string) error {
	day, err := d.day(dayIndex)
	if err != nil {
		return err
	}
	for i := range day.Slots {
		if day.Slots[i].ID == slotID {
			day.Slots = append(day.Slots[:i:i], day.Slots[i+1:]...)
			return nil
		}
	}
	return nil
}

// Slot returns a copy of one slot and whether it exists.
func (d *Draft) Slot(dayIndex int, slotID string) (domain.Slot, bool) {
	s := d.findSlot(dayIndex, slotID)
	if s == nil {
		return domain.Slot{}, false
	}
	return s.Clone(), true
}

// UpdateSlot sets one field of a slot. It is the only way slot fields change,
// so it is where the one-hotel-per-day rule lives: asking for a hotel on a
// slot while another slot of the same day holds one needs confirmation, and a
// confirmed move clears the other slot's hotel fields in the same step.
//
// An unknown slot id is a no-op. Turning a gate off clears what it gated.
func (d *Draft) UpdateSlot(dayIndex int, slotID string, field SlotField, value any, opts ...UpdateOption) error {
	day, err := d.day(dayIndex)
	if err != nil {
		return err
	}
	slot := findIn(day, slotID)
	if slot == nil {
		return nil
	}

	switch field {
	case SlotActivity, SlotLocation, SlotNotes, SlotHotelDetails, SlotStartTime, SlotEndTime:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s must be a string", domain.ErrValidation, field)
		}
		switch field {
		case SlotActivity:
			slot.Activity = s
		case SlotLocation:
			slot.Location = s
		case SlotNotes:
			slot.Notes = s
		case SlotHotelDetails:
			slot.HotelDetails = s
		case SlotStartTime, SlotEndTime:
			if err := domain.ValidateTimeOfDay(s); err != nil {
				return err
			}
			if field == SlotStartTime {
				slot.StartTime = s
			} else {
				slot.EndTime = s
			}
		}
	case SlotTransportNeeded:
		on, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s must be a boolean", domain.ErrValidation, field)
		}
		if !on {
			slot.ClearTransport()
			return nil
		}
		slot.TransportNeeded = true
	case SlotHotelRoomNeeded:
		on, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s must be a boolean", domain.ErrValidation, field)
		}
		if !on {
			slot.ClearHotel()
			return nil
		}
		return d.claimHotel(dayIndex, day, slot, opts)
	default:
		return fmt.Errorf("%w: unknown slot field %q", domain.ErrValidation, field)
	}
	return nil
}

func (d *Draft) claimHotel(dayIndex int, day *domain.Day, slot *domain.Slot, opts []UpdateOption) error {
	if slot.HotelRoomNeeded {
		return nil
	}
	var holder *domain.Slot
	for i := range day.Slots {
		if day.Slots[i].HotelRoomNeeded && &day.Slots[i] != slot {
			holder = &day.Slots[i]
			break
		}
	}
	if holder != nil {
		var cfg updateConfig
		for _, o := range opts {
			o(&cfg)
		}
		conflict := HotelConflict{
			DayIndex:      dayIndex,
			Date:          day.Date.Time,
			HolderSlotID:  holder.ID,
			HolderHotel:   holder.HotelDetails,
			RequestSlotID: slot.ID,
		}
		if cfg.confirm == nil || !cfg.confirm(conflict) {
			return fmt.Errorf("%w: slot %s already holds the hotel selection for day %d", domain.ErrConflict, holder.ID, dayIndex+1)
		}
		holder.ClearHotel()
	}
	slot.HotelRoomNeeded = true
	return nil
}

func (d *Draft) findSlot(dayIndex int, slotID string) *domain.Slot {
	if dayIndex < 0 || dayIndex >= len(d.Days) {
		return nil
	}
	return findIn(&d.Days[dayIndex], slotID)
}

func findIn(day *domain.Day, slotID string) *domain.Slot {
	for i := range day.Slots {
		if day.Slots[i].ID == slotID {
			return &day.Slots[i]
		}
	}
	return nil
}
