package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/itinerary"
)

// DraftStore keeps drafts between requests. Load returns domain.ErrNotFound
// for an unknown or expired draft.
type DraftStore interface {
	Load(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error)
	Save(ctx context.Context, d *itinerary.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DraftService drives a draft session: every call loads the draft, applies
// one itinerary operation and writes it back. A failing operation leaves the
// stored draft untouched.
type DraftService struct {
	store   DraftStore
	catalog *CatalogService
	trips   *TripService
	log     *slog.Logger
	now     func() time.Time
}

// NewDraftService constructs a DraftService.
func NewDraftService(store DraftStore, catalog *CatalogService, trips *TripService, log *slog.Logger) *DraftService {
	return &DraftService{store: store, catalog: catalog, trips: trips, log: log, now: time.Now}
}

// Start opens a new draft session for role.
func (s *DraftService) Start(ctx context.Context, role domain.Role) (*itinerary.Draft, error) {
	d := itinerary.NewDraft(role)
	d.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("service.DraftService.Start: %w", err)
	}
	return d, nil
}

// Get returns the draft with id.
func (s *DraftService) Get(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	d, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.DraftService.Get: %w", err)
	}
	return d, nil
}

// Discard drops a draft session. Discarding an unknown draft is not an error.
func (s *DraftService) Discard(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DraftService.Discard: %w", err)
	}
	return nil
}

// SetFields applies several SetField calls. Either all of them stick or none.
func (s *DraftService) SetFields(ctx context.Context, id uuid.UUID, fields map[itinerary.Field]any) (*itinerary.Draft, error) {
	return s.mutate(ctx, "SetFields", id, func(d *itinerary.Draft) error {
		for f, v := range fields {
			if err := d.SetField(f, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// RegenerateDays rebuilds the day list from the draft's date range.
func (s *DraftService) RegenerateDays(ctx context.Context, id uuid.UUID, opts ...itinerary.RegenerateOption) (*itinerary.Draft, error) {
	return s.mutate(ctx, "RegenerateDays", id, func(d *itinerary.Draft) error {
		return d.RegenerateDays(opts...)
	})
}

// ReplaceDaySlots replaces every slot of one day.
func (s *DraftService) ReplaceDaySlots(ctx context.Context, id uuid.UUID, day int, slots []domain.Slot) (*itinerary.Draft, error) {
	return s.mutate(ctx, "ReplaceDaySlots", id, func(d *itinerary.Draft) error {
		return d.UpdateDaySlots(day, slots)
	})
}

// AddSlot appends an empty slot to a day and returns it with the draft.
func (s *DraftService) AddSlot(ctx context.Context, id uuid.UUID, day int) (*itinerary.Draft, domain.Slot, error) {
	var slot domain.Slot
	d, err := s.mutate(ctx, "AddSlot", id, func(d *itinerary.Draft) error {
		var err error
		slot, err = d.AddSlot(day)
		return err
	})
	return d, slot, err
}

// UpdateSlot sets one slot field. confirm answers the hotel-move question
// up front: without it, claiming a hotel another slot holds is a conflict.
func (s *DraftService) UpdateSlot(ctx context.Context, id uuid.UUID, day int, slotID string, field itinerary.SlotField, value any, confirm bool) (*itinerary.Draft, error) {
	return s.mutate(ctx, "UpdateSlot", id, func(d *itinerary.Draft) error {
		var opts []itinerary.UpdateOption
		if confirm {
			opts = append(opts, itinerary.Confirmed())
		}
		return d.UpdateSlot(day, slotID, field, value, opts...)
	})
}

// RemoveSlot deletes a slot. Removing an unknown slot succeeds.
func (s *DraftService) RemoveSlot(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error) {
	return s.mutate(ctx, "RemoveSlot", id, func(d *itinerary.Draft) error {
		return d.RemoveSlot(day, slotID)
	})
}

func (s *DraftService) OpenRoomPicker(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error) {
	return s.mutate(ctx, "OpenRoomPicker", id, func(d *itinerary.Draft) error {
		return d.OpenRoomPicker(day, slotID)
	})
}

// StageRoom stages a hotel, and optionally one of its rooms, resolved from
// the catalog. The room must belong to the hotel.
func (s *DraftService) StageRoom(ctx context.Context, id uuid.UUID, hotelID uuid.UUID, roomID *uuid.UUID) (*itinerary.Draft, error) {
	hotel, err := s.catalog.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("service.DraftService.StageRoom: %w", err)
	}
	sel := domain.HotelSelection{HotelName: hotel.Name}
	if roomID != nil {
		room, err := s.catalog.GetRoom(ctx, *roomID)
		if err != nil {
			return nil, fmt.Errorf("service.DraftService.StageRoom: %w", err)
		}
		if room.HotelID != hotel.ID {
			return nil, fmt.Errorf("%w: room %s does not belong to hotel %s", domain.ErrValidation, room.ID, hotel.ID)
		}
		sel.Room = &room
	}
	return s.mutate(ctx, "StageRoom", id, func(d *itinerary.Draft) error {
		return d.StageRoom(sel)
	})
}

func (s *DraftService) ConfirmRoom(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	return s.mutate(ctx, "ConfirmRoom", id, func(d *itinerary.Draft) error {
		return d.ConfirmRoom()
	})
}

func (s *DraftService) CancelRoom(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	return s.mutate(ctx, "CancelRoom", id, func(d *itinerary.Draft) error {
		return d.CancelRoom()
	})
}

func (s *DraftService) OpenVehiclePicker(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error) {
	return s.mutate(ctx, "OpenVehiclePicker", id, func(d *itinerary.Draft) error {
		return d.OpenVehiclePicker(day, slotID)
	})
}

// StageVehicle stages a vehicle resolved from the catalog.
func (s *DraftService) StageVehicle(ctx context.Context, id uuid.UUID, vehicleID uuid.UUID) (*itinerary.Draft, error) {
	v, err := s.catalog.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("service.DraftService.StageVehicle: %w", err)
	}
	return s.mutate(ctx, "StageVehicle", id, func(d *itinerary.Draft) error {
		return d.StageVehicle(v)
	})
}

func (s *DraftService) ConfirmVehicle(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	return s.mutate(ctx, "ConfirmVehicle", id, func(d *itinerary.Draft) error {
		return d.ConfirmVehicle()
	})
}

func (s *DraftService) CancelVehicle(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	return s.mutate(ctx, "CancelVehicle", id, func(d *itinerary.Draft) error {
		return d.CancelVehicle()
	})
}

// Submit persists the draft as a trip and ends the session. When the submit
// fails the session is kept so the author can fix the draft and retry.
func (s *DraftService) Submit(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	d, err := s.store.Load(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.DraftService.Submit: %w", err)
	}

	trip, err := s.trips.Submit(ctx, d)
	if err != nil {
		if !isValidation(err) {
			s.log.ErrorContext(ctx, "draft submit failed", "draft_id", id, "error", err)
		}
		return domain.Trip{}, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		// The trip is stored; a leftover session only expires later.
		s.log.WarnContext(ctx, "draft session not cleared", "draft_id", id, "trip_id", trip.ID, "error", err)
	}
	s.log.InfoContext(ctx, "draft submitted", "draft_id", id, "trip_id", trip.ID, "trip_type", trip.TripType)
	return trip, nil
}

// mutate loads draft id, applies fn and saves the result. Nothing is saved
// when fn fails.
func (s *DraftService) mutate(ctx context.Context, op string, id uuid.UUID, fn func(*itinerary.Draft) error) (*itinerary.Draft, error) {
	d, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.DraftService.%s: %w", op, err)
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("service.DraftService.%s: %w", op, err)
	}
	return d, nil
}
