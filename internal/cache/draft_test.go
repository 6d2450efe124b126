package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-builder/internal/cache"
	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/itinerary"
)

func TestDraftStore_SaveLoad(t *testing.T) {
	mr := newRedis(t)
	store := cache.NewDraftStore(cache.NewClient(mr.Addr(), "", 0), time.Hour)
	ctx := context.Background()

	d := itinerary.NewDraft(domain.RoleAdmin)
	require.NoError(t, d.SetField(itinerary.FieldName, "Skardu Package"))
	require.NoError(t, d.SetField(itinerary.FieldStartDate, "2025-07-01"))
	require.NoError(t, d.SetField(itinerary.FieldEndDate, "2025-07-02"))
	require.NoError(t, d.RegenerateDays())
	s, err := d.AddSlot(1)
	require.NoError(t, err)
	require.NoError(t, d.UpdateSlot(1, s.ID, itinerary.SlotHotelRoomNeeded, true))
	require.NoError(t, d.OpenRoomPicker(1, s.ID))

	require.NoError(t, store.Save(ctx, d))
	got, err := store.Load(ctx, d.ID)

	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, "Skardu Package", got.Name)
	require.Len(t, got.Days, 2)
	assert.Equal(t, "2025-07-02", got.Days[1].Date.Format("2006-01-02"))
	require.Len(t, got.Days[1].Slots, 1)
	assert.True(t, got.Days[1].Slots[0].HotelRoomNeeded)
	assert.True(t, got.RoomPicker.IsOpen())
	assert.Equal(t, s.ID, got.RoomPicker.SlotID)
}

func TestDraftStore_KeyAndSlidingTTL(t *testing.T) {
	mr := newRedis(t)
	store := cache.NewDraftStore(cache.NewClient(mr.Addr(), "", 0), time.Hour)
	ctx := context.Background()
	d := itinerary.NewDraft(domain.RoleCustomer)
	require.NoError(t, store.Save(ctx, d))

	key := "draft:" + d.ID.String()
	assert.True(t, mr.Exists(key))

	mr.FastForward(50 * time.Minute)
	_, err := store.Load(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL(key), "load should refresh the expiry")

	mr.FastForward(61 * time.Minute)
	_, err = store.Load(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftStore_LoadUnknown(t *testing.T) {
	mr := newRedis(t)
	store := cache.NewDraftStore(cache.NewClient(mr.Addr(), "", 0), time.Hour)

	_, err := store.Load(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftStore_Delete(t *testing.T) {
	mr := newRedis(t)
	store := cache.NewDraftStore(cache.NewClient(mr.Addr(), "", 0), time.Hour)
	ctx := context.Background()
	d := itinerary.NewDraft(domain.RoleCustomer)
	require.NoError(t, store.Save(ctx, d))

	require.NoError(t, store.Delete(ctx, d.ID))
	require.NoError(t, store.Delete(ctx, d.ID))

	_, err := store.Load(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
