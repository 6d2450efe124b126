package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/itinerary"
	"github.com/pkordes/trip-builder/internal/service"
)

type draftHarness struct {
	svc     *service.DraftService
	store   *memDraftStore
	created []domain.Trip
	hotel   domain.Hotel
	room    domain.Room
	vehicle domain.Vehicle
}

func newDraftHarness(t *testing.T, createErr error) *draftHarness {
	t.Helper()
	h := &draftHarness{store: newMemDraftStore()}
	h.hotel = domain.Hotel{ID: uuid.New(), Name: "Serena Hotel", City: "Hunza"}
	h.room = domain.Room{ID: uuid.New(), HotelID: h.hotel.ID, Type: "Deluxe", Price: 18000, Capacity: 2}
	h.vehicle = domain.Vehicle{ID: uuid.New(), Name: "Toyota Corolla", Type: "Sedan", Seats: 4, Price: 5000}

	catalog := service.NewCatalogService(&mockCatalogRepo{
		getHotel: func(_ context.Context, id uuid.UUID) (domain.Hotel, error) {
			if id == h.hotel.ID {
				return h.hotel, nil
			}
			return domain.Hotel{}, domain.ErrNotFound
		},
		getRoom: func(_ context.Context, id uuid.UUID) (domain.Room, error) {
			if id == h.room.ID {
				return h.room, nil
			}
			return domain.Room{}, domain.ErrNotFound
		},
		getVehicle: func(_ context.Context, id uuid.UUID) (domain.Vehicle, error) {
			if id == h.vehicle.ID {
				return h.vehicle, nil
			}
			return domain.Vehicle{}, domain.ErrNotFound
		},
	}, newFakeCache(), time.Minute)

	trips := service.NewTripService(&mockTripRepo{
		create: func(_ context.Context, tr domain.Trip) (domain.Trip, error) {
			if createErr != nil {
				return domain.Trip{}, createErr
			}
			tr.ID = uuid.New()
			h.created = append(h.created, tr)
			return tr, nil
		},
	})

	h.svc = service.NewDraftService(h.store, catalog, trips, discardLogger())
	return h
}

// startWithDays opens a draft named "Hunza Explorer" covering 1-2 June 2025.
func (h *draftHarness) startWithDays(t *testing.T) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	d, err := h.svc.Start(ctx, domain.RoleCustomer)
	require.NoError(t, err)
	_, err = h.svc.SetFields(ctx, d.ID, map[itinerary.Field]any{
		itinerary.FieldName:      "Hunza Explorer",
		itinerary.FieldStartDate: "2025-06-01",
		itinerary.FieldEndDate:   "2025-06-02",
		itinerary.FieldPeople:    float64(2),
	})
	require.NoError(t, err)
	_, err = h.svc.RegenerateDays(ctx, d.ID)
	require.NoError(t, err)
	return d.ID
}

func TestDraftService_StartAndGet(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()

	d, err := h.svc.Start(ctx, domain.RoleAdmin)
	require.NoError(t, err)

	got, err := h.svc.Get(ctx, d.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, 1, got.People)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestDraftService_Get_Unknown(t *testing.T) {
	h := newDraftHarness(t, nil)

	_, err := h.svc.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftService_SetFields_AllOrNothing(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	d, err := h.svc.Start(ctx, domain.RoleCustomer)
	require.NoError(t, err)

	_, err = h.svc.SetFields(ctx, d.ID, map[itinerary.Field]any{
		itinerary.FieldName:      "Swat",
		itinerary.FieldStartDate: "June 1st",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	got, err := h.svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Name)
}

func TestDraftService_RegenerateDays_NeedsConfirmationToDiscard(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	id := h.startWithDays(t)
	_, _, err := h.svc.AddSlot(ctx, id, 1)
	require.NoError(t, err)
	_, err = h.svc.SetFields(ctx, id, map[itinerary.Field]any{itinerary.FieldEndDate: "2025-06-01"})
	require.NoError(t, err)

	_, err = h.svc.RegenerateDays(ctx, id)
	assert.ErrorIs(t, err, domain.ErrConflict)

	d, err := h.svc.RegenerateDays(ctx, id, itinerary.ConfirmDiscard())
	require.NoError(t, err)
	assert.Len(t, d.Days, 1)
}

func TestDraftService_UpdateSlot_HotelConflict(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	id := h.startWithDays(t)
	_, a, err := h.svc.AddSlot(ctx, id, 0)
	require.NoError(t, err)
	_, b, err := h.svc.AddSlot(ctx, id, 0)
	require.NoError(t, err)
	_, err = h.svc.UpdateSlot(ctx, id, 0, a.ID, itinerary.SlotHotelRoomNeeded, true, false)
	require.NoError(t, err)

	_, err = h.svc.UpdateSlot(ctx, id, 0, b.ID, itinerary.SlotHotelRoomNeeded, true, false)
	require.ErrorIs(t, err, domain.ErrConflict)

	d, err := h.svc.UpdateSlot(ctx, id, 0, b.ID, itinerary.SlotHotelRoomNeeded, true, true)
	require.NoError(t, err)
	gotA, _ := d.Slot(0, a.ID)
	gotB, _ := d.Slot(0, b.ID)
	assert.False(t, gotA.HotelRoomNeeded)
	assert.True(t, gotB.HotelRoomNeeded)
}

func TestDraftService_RoomPickerFlow(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	id := h.startWithDays(t)
	_, s, err := h.svc.AddSlot(ctx, id, 0)
	require.NoError(t, err)
	_, err = h.svc.UpdateSlot(ctx, id, 0, s.ID, itinerary.SlotHotelRoomNeeded, true, false)
	require.NoError(t, err)

	_, err = h.svc.OpenRoomPicker(ctx, id, 0, s.ID)
	require.NoError(t, err)
	_, err = h.svc.StageRoom(ctx, id, h.hotel.ID, &h.room.ID)
	require.NoError(t, err)
	d, err := h.svc.ConfirmRoom(ctx, id)
	require.NoError(t, err)

	got, _ := d.Slot(0, s.ID)
	assert.Equal(t, "Serena Hotel", got.HotelDetails)
	require.NotNil(t, got.SelectedRoom)
	assert.Equal(t, h.room.ID, got.SelectedRoom.ID)
	assert.False(t, d.RoomPicker.IsOpen())
}

func TestDraftService_StageRoom_RoomFromOtherHotel(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	id := h.startWithDays(t)
	h.room.HotelID = uuid.New()

	_, err := h.svc.StageRoom(ctx, id, h.hotel.ID, &h.room.ID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDraftService_StageRoom_UnknownHotel(t *testing.T) {
	h := newDraftHarness(t, nil)
	id := h.startWithDays(t)

	_, err := h.svc.StageRoom(context.Background(), id, uuid.New(), nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftService_VehiclePickerCancel(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	id := h.startWithDays(t)
	_, s, err := h.svc.AddSlot(ctx, id, 0)
	require.NoError(t, err)
	_, err = h.svc.UpdateSlot(ctx, id, 0, s.ID, itinerary.SlotTransportNeeded, true, false)
	require.NoError(t, err)

	_, err = h.svc.OpenVehiclePicker(ctx, id, 0, s.ID)
	require.NoError(t, err)
	_, err = h.svc.StageVehicle(ctx, id, h.vehicle.ID)
	require.NoError(t, err)
	d, err := h.svc.CancelVehicle(ctx, id)
	require.NoError(t, err)

	got, _ := d.Slot(0, s.ID)
	assert.Nil(t, got.SelectedVehicle)
	assert.Empty(t, got.TransportDetails)
}

func TestDraftService_VehiclePickerConfirm(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	id := h.startWithDays(t)
	_, s, err := h.svc.AddSlot(ctx, id, 0)
	require.NoError(t, err)
	_, err = h.svc.UpdateSlot(ctx, id, 0, s.ID, itinerary.SlotTransportNeeded, true, false)
	require.NoError(t, err)
	_, err = h.svc.OpenVehiclePicker(ctx, id, 0, s.ID)
	require.NoError(t, err)
	_, err = h.svc.StageVehicle(ctx, id, h.vehicle.ID)
	require.NoError(t, err)

	d, err := h.svc.ConfirmVehicle(ctx, id)

	require.NoError(t, err)
	got, _ := d.Slot(0, s.ID)
	assert.Equal(t, "Toyota Corolla (Sedan, 4 seats) - 5000/day", got.TransportDetails)
}

func TestDraftService_Submit_EndsSession(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	id := h.startWithDays(t)

	trip, err := h.svc.Submit(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, "Hunza Explorer", trip.Name)
	assert.Equal(t, 2, trip.NumberOfPeople)
	require.Len(t, h.created, 1)
	_, err = h.svc.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound, "session should be gone after submit")
}

func TestDraftService_Submit_FailureKeepsSession(t *testing.T) {
	h := newDraftHarness(t, errors.New("db down"))
	ctx := context.Background()
	id := h.startWithDays(t)

	_, err := h.svc.Submit(ctx, id)

	require.Error(t, err)
	d, err := h.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hunza Explorer", d.Name)
}

func TestDraftService_Submit_InvalidKeepsSession(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	d, err := h.svc.Start(ctx, domain.RoleCustomer)
	require.NoError(t, err)

	_, err = h.svc.Submit(ctx, d.ID)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, h.created)
	_, err = h.svc.Get(ctx, d.ID)
	assert.NoError(t, err)
}

func TestDraftService_SaveFailure(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	id := h.startWithDays(t)
	h.store.saveErr = errors.New("redis down")

	_, _, err := h.svc.AddSlot(ctx, id, 0)

	assert.ErrorContains(t, err, "redis down")
}

func TestDraftService_Discard(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	id := h.startWithDays(t)

	require.NoError(t, h.svc.Discard(ctx, id))

	_, err := h.svc.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftService_ReplaceDaySlots(t *testing.T) {
	h := newDraftHarness(t, nil)
	ctx := context.Background()
	id := h.startWithDays(t)

	d, err := h.svc.ReplaceDaySlots(ctx, id, 1, []domain.Slot{{Activity: "Boating"}, {Activity: "Camping"}})

	require.NoError(t, err)
	require.Len(t, d.Days[1].Slots, 2)
	assert.NotEmpty(t, d.Days[1].Slots[0].ID)

	_, err = h.svc.ReplaceDaySlots(ctx, id, 9, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
