package service_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/itinerary"
	"github.com/pkordes/trip-builder/internal/repo"
	"github.com/pkordes/trip-builder/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list         func(ctx context.Context) ([]domain.Trip, error)
	listPaged    func(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error)
	updateStatus func(ctx context.Context, id uuid.UUID, status domain.TripStatus) (domain.Trip, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockTripRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) (domain.Trip, error) {
	return m.updateStatus(ctx, id, status)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockCatalogRepo struct {
	listHotels   func(ctx context.Context, city string) ([]domain.Hotel, error)
	getHotel     func(ctx context.Context, id uuid.UUID) (domain.Hotel, error)
	listRooms    func(ctx context.Context, hotelID uuid.UUID) ([]domain.Room, error)
	getRoom      func(ctx context.Context, id uuid.UUID) (domain.Room, error)
	listVehicles func(ctx context.Context) ([]domain.Vehicle, error)
	getVehicle   func(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
}

func (m *mockCatalogRepo) ListHotels(ctx context.Context, city string) ([]domain.Hotel, error) {
	return m.listHotels(ctx, city)
}
func (m *mockCatalogRepo) GetHotel(ctx context.Context, id uuid.UUID) (domain.Hotel, error) {
	return m.getHotel(ctx, id)
}
func (m *mockCatalogRepo) ListRooms(ctx context.Context, hotelID uuid.UUID) ([]domain.Room, error) {
	return m.listRooms(ctx, hotelID)
}
func (m *mockCatalogRepo) GetRoom(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	return m.getRoom(ctx, id)
}
func (m *mockCatalogRepo) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return m.listVehicles(ctx)
}
func (m *mockCatalogRepo) GetVehicle(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	return m.getVehicle(ctx, id)
}

var _ repo.CatalogRepo = (*mockCatalogRepo)(nil)

// fakeCache stores JSON like the Redis cache does, so values that survive it
// have been through the same encoding.
type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	delete(c.store, key)
	return nil
}

var _ service.Cache = (*fakeCache)(nil)

// memDraftStore keeps drafts as JSON so a loaded draft never aliases the
// stored one.
type memDraftStore struct {
	drafts  map[uuid.UUID][]byte
	saveErr error
}

func newMemDraftStore() *memDraftStore {
	return &memDraftStore{drafts: map[uuid.UUID][]byte{}}
}

func (s *memDraftStore) Load(_ context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	b, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	var d itinerary.Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *memDraftStore) Save(_ context.Context, d *itinerary.Draft) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.drafts[d.ID] = b
	return nil
}

func (s *memDraftStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.drafts, id)
	return nil
}

var _ service.DraftStore = (*memDraftStore)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
