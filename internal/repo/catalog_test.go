package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/repo"
)

type catalogFixture struct {
	serena, pc uuid.UUID
	deluxe     uuid.UUID
	corolla    uuid.UUID
}

// seedCatalog inserts two hotels in different cities, two rooms and two
// vehicles inside tx.
func seedCatalog(t *testing.T, tx pgx.Tx) catalogFixture {
	t.Helper()
	ctx := context.Background()
	var f catalogFixture

	insert := func(dst *uuid.UUID, q string, args ...any) {
		t.Helper()
		require.NoError(t, tx.QueryRow(ctx, q, args...).Scan(dst))
	}

	insert(&f.serena, `INSERT INTO hotels (name, city, rating, amenities) VALUES ('Serena Hotel', 'Hunza', 4.5, '{wifi,spa}') RETURNING id`)
	insert(&f.pc, `INSERT INTO hotels (name, city, rating) VALUES ('PC Hotel', 'Lahore', 4.0) RETURNING id`)
	insert(&f.deluxe, `INSERT INTO rooms (hotel_id, type, price, capacity) VALUES ($1, 'Deluxe', 18000, 2) RETURNING id`, f.serena)
	var twin uuid.UUID
	insert(&twin, `INSERT INTO rooms (hotel_id, type, price, capacity) VALUES ($1, 'Twin', 12000, 2) RETURNING id`, f.serena)
	insert(&f.corolla, `INSERT INTO vehicles (name, type, seats, price, features) VALUES ('Toyota Corolla', 'Sedan', 4, 5000, '{AC}') RETURNING id`)
	var hiace uuid.UUID
	insert(&hiace, `INSERT INTO vehicles (name, type, seats, price) VALUES ('Hiace', 'Van', 12, 8500) RETURNING id`)

	return f
}

func TestCatalogRepo_ListHotels(t *testing.T) {
	tx := newTestTx(t)
	seedCatalog(t, tx)
	r := repo.NewCatalogRepo(tx)
	ctx := context.Background()

	all, err := r.ListHotels(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "PC Hotel", all[0].Name, "ordered by name")

	hunza, err := r.ListHotels(ctx, "hunza")
	require.NoError(t, err)
	require.Len(t, hunza, 1)
	assert.Equal(t, "Serena Hotel", hunza[0].Name)
	assert.Equal(t, []string{"wifi", "spa"}, hunza[0].Amenities)
	assert.NotNil(t, hunza[0].Images)
}

func TestCatalogRepo_GetHotel(t *testing.T) {
	tx := newTestTx(t)
	f := seedCatalog(t, tx)
	r := repo.NewCatalogRepo(tx)

	h, err := r.GetHotel(context.Background(), f.serena)
	require.NoError(t, err)
	assert.Equal(t, f.serena, h.ID)

	_, err = r.GetHotel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepo_Rooms(t *testing.T) {
	tx := newTestTx(t)
	f := seedCatalog(t, tx)
	r := repo.NewCatalogRepo(tx)
	ctx := context.Background()

	rooms, err := r.ListRooms(ctx, f.serena)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "Twin", rooms[0].Type, "cheapest first")

	none, err := r.ListRooms(ctx, f.pc)
	require.NoError(t, err)
	assert.Empty(t, none)

	room, err := r.GetRoom(ctx, f.deluxe)
	require.NoError(t, err)
	assert.Equal(t, f.serena, room.HotelID)
	assert.Equal(t, 18000.0, room.Price)

	_, err = r.GetRoom(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepo_Vehicles(t *testing.T) {
	tx := newTestTx(t)
	f := seedCatalog(t, tx)
	r := repo.NewCatalogRepo(tx)
	ctx := context.Background()

	vehicles, err := r.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "Toyota Corolla", vehicles[0].Name)

	v, err := r.GetVehicle(ctx, f.corolla)
	require.NoError(t, err)
	assert.Equal(t, 4, v.Seats)
	assert.Equal(t, []string{"AC"}, v.Features)

	_, err = r.GetVehicle(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
