package itinerary

import (
	"fmt"
	"strconv"

	"github.com/pkordes/trip-builder/internal/domain"
)

// PickerState is the state of a room or vehicle picker.
type PickerState string

const (
	PickerClosed PickerState = "closed"
	PickerOpen   PickerState = "open"
)

// Picker stages a choice for one slot without touching the slot until the
// choice is confirmed. The zero value is closed.
//
//	Closed --Open--> Open --Confirm--> Closed
//	                      --Cancel---> Closed
type Picker[T any] struct {
	State    PickerState `json:"state"`
	DayIndex int         `json:"dayIndex"`
	SlotID   string      `json:"slotId,omitempty"`
	Staged   *T          `json:"staged,omitempty"`
}

// IsOpen reports whether the picker is staging a choice.
func (p *Picker[T]) IsOpen() bool { return p.State == PickerOpen }

func (p *Picker[T]) open(dayIndex int, slotID string, current *T) error {
	if p.IsOpen() {
		return fmt.Errorf("%w: picker is already open for slot %s", domain.ErrInvalidState, p.SlotID)
	}
	*p = Picker[T]{State: PickerOpen, DayIndex: dayIndex, SlotID: slotID, Staged: current}
	return nil
}

func (p *Picker[T]) stage(candidate T) error {
	if !p.IsOpen() {
		return fmt.Errorf("%w: picker is not open", domain.ErrInvalidState)
	}
	p.Staged = &candidate
	return nil
}

// take closes the picker and hands back what was staged.
func (p *Picker[T]) take() (int, string, *T, error) {
	if !p.IsOpen() {
		return 0, "", nil, fmt.Errorf("%w: picker is not open", domain.ErrInvalidState)
	}
	day, slot, staged := p.DayIndex, p.SlotID, p.Staged
	*p = Picker[T]{State: PickerClosed}
	return day, slot, staged, nil
}

func (p *Picker[T]) cancel() error {
	if !p.IsOpen() {
		return fmt.Errorf("%w: picker is not open", domain.ErrInvalidState)
	}
	*p = Picker[T]{State: PickerClosed}
	return nil
}

// --- room picker ------------------------------------------------------------

// OpenRoomPicker starts choosing a hotel room for a slot. The slot must exist
// and have hotelRoomNeeded set; its current selection, if any, is staged.
func (d *Draft) OpenRoomPicker(dayIndex int, slotID string) error {
	if _, err := d.day(dayIndex); err != nil {
		return err
	}
	slot := d.findSlot(dayIndex, slotID)
	if slot == nil {
		return fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound)
	}
	if !slot.HotelRoomNeeded {
		return fmt.Errorf("%w: slot %s does not need a hotel room", domain.ErrInvalidState, slotID)
	}
	var current *domain.HotelSelection
	if slot.HotelDetails != "" || slot.SelectedRoom != nil {
		c := slot.Clone()
		current = &domain.HotelSelection{HotelName: c.HotelDetails, Room: c.SelectedRoom}
	}
	return d.RoomPicker.open(dayIndex, slotID, current)
}

// StageRoom replaces the staged hotel selection.
func (d *Draft) StageRoom(sel domain.HotelSelection) error {
	if sel.Room != nil {
		r := *sel.Room
		sel.Room = &r
	}
	return d.RoomPicker.stage(sel)
}

// ConfirmRoom commits the staged selection into the slot and closes the picker.
// Nothing is written when nothing was staged, when the slot has since been
// removed, or when its hotel gate was turned off.
func (d *Draft) ConfirmRoom() error {
	dayIndex, slotID, staged, err := d.RoomPicker.take()
	if err != nil {
		return err
	}
	if staged == nil {
		return nil
	}
	slot := d.findSlot(dayIndex, slotID)
	if slot == nil || !slot.HotelRoomNeeded {
		return nil
	}
	tmp := domain.Slot{SelectedRoom: staged.Room}.Clone()
	slot.HotelDetails = staged.HotelName
	slot.SelectedRoom = tmp.SelectedRoom
	return nil
}

// CancelRoom discards the staged selection and closes the picker.
func (d *Draft) CancelRoom() error {
	return d.RoomPicker.cancel()
}

// --- vehicle picker ---------------------------------------------------------

// OpenVehiclePicker starts choosing a vehicle for a slot. The slot must exist
// and have transportNeeded set.
func (d *Draft) OpenVehiclePicker(dayIndex int, slotID string) error {
	if _, err := d.day(dayIndex); err != nil {
		return err
	}
	slot := d.findSlot(dayIndex, slotID)
	if slot == nil {
		return fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound)
	}
	if !slot.TransportNeeded {
		return fmt.Errorf("%w: slot %s does not need transport", domain.ErrInvalidState, slotID)
	}
	var current *domain.Vehicle
	if slot.SelectedVehicle != nil {
		current = slot.Clone().SelectedVehicle
	}
	return d.VehiclePicker.open(dayIndex, slotID, current)
}

// StageVehicle replaces the staged vehicle.
func (d *Draft) StageVehicle(v domain.Vehicle) error {
	return d.VehiclePicker.stage(v)
}

// ConfirmVehicle commits the staged vehicle into the slot, writes its summary
// into TransportDetails and closes the picker.
func (d *Draft) ConfirmVehicle() error {
	dayIndex, slotID, staged, err := d.VehiclePicker.take()
	if err != nil {
		return err
	}
	if staged == nil {
		return nil
	}
	slot := d.findSlot(dayIndex, slotID)
	if slot == nil || !slot.TransportNeeded {
		return nil
	}
	tmp := domain.Slot{SelectedVehicle: staged}.Clone()
	slot.SelectedVehicle = tmp.SelectedVehicle
	slot.TransportDetails = VehicleSummary(*staged)
	return nil
}

// CancelVehicle discards the staged vehicle and closes the picker.
func (d *Draft) CancelVehicle() error {
	return d.VehiclePicker.cancel()
}

// VehicleSummary renders a vehicle as shown in a slot, e.g.
// "Toyota Corolla (Sedan, 4 seats) - 5000/day".
func VehicleSummary(v domain.Vehicle) string {
	return fmt.Sprintf("%s (%s, %d seats) - %s/day", v.Name, v.Type, v.Seats, strconv.FormatFloat(v.Price, 'f', -1, 64))
}
