package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/repo"
)

// Cache is a JSON key/value cache. Get reports whether key was present and,
// if so, decodes it into dst.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CatalogService serves hotel, room, and vehicle reads cache-aside.
// Cache failures are ignored; the repo is always the source of truth.
type CatalogService struct {
	repo     repo.CatalogRepo
	cache    Cache
	cacheTTL time.Duration
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(r repo.CatalogRepo, c Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl}
}

// ListHotels returns hotels, optionally filtered by city.
func (s *CatalogService) ListHotels(ctx context.Context, city string) ([]domain.Hotel, error) {
	city = strings.TrimSpace(city)
	key := "catalog:hotels:" + strings.ToLower(city)
	return cached(ctx, s, key, func() ([]domain.Hotel, error) {
		hotels, err := s.repo.ListHotels(ctx, city)
		if err != nil {
			return nil, fmt.Errorf("service.CatalogService.ListHotels: %w", err)
		}
		return hotels, nil
	})
}

// GetHotel returns domain.ErrNotFound for an unknown hotel.
func (s *CatalogService) GetHotel(ctx context.Context, id uuid.UUID) (domain.Hotel, error) {
	return cached(ctx, s, "catalog:hotel:"+id.String(), func() (domain.Hotel, error) {
		h, err := s.repo.GetHotel(ctx, id)
		if err != nil {
			return domain.Hotel{}, fmt.Errorf("service.CatalogService.GetHotel: %w", err)
		}
		return h, nil
	})
}

// ListRooms returns the rooms of a hotel.
// Returns domain.ErrNotFound if the hotel does not exist.
func (s *CatalogService) ListRooms(ctx context.Context, hotelID uuid.UUID) ([]domain.Room, error) {
	if _, err := s.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	return cached(ctx, s, "catalog:rooms:"+hotelID.String(), func() ([]domain.Room, error) {
		rooms, err := s.repo.ListRooms(ctx, hotelID)
		if err != nil {
			return nil, fmt.Errorf("service.CatalogService.ListRooms: %w", err)
		}
		return rooms, nil
	})
}

// GetRoom returns domain.ErrNotFound for an unknown room.
func (s *CatalogService) GetRoom(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	return cached(ctx, s, "catalog:room:"+id.String(), func() (domain.Room, error) {
		r, err := s.repo.GetRoom(ctx, id)
		if err != nil {
			return domain.Room{}, fmt.Errorf("service.CatalogService.GetRoom: %w", err)
		}
		return r, nil
	})
}

// ListVehicles returns the whole vehicle fleet.
func (s *CatalogService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return cached(ctx, s, "catalog:vehicles", func() ([]domain.Vehicle, error) {
		vs, err := s.repo.ListVehicles(ctx)
		if err != nil {
			return nil, fmt.Errorf("service.CatalogService.ListVehicles: %w", err)
		}
		return vs, nil
	})
}

// GetVehicle returns domain.ErrNotFound for an unknown vehicle.
func (s *CatalogService) GetVehicle(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	return cached(ctx, s, "catalog:vehicle:"+id.String(), func() (domain.Vehicle, error) {
		v, err := s.repo.GetVehicle(ctx, id)
		if err != nil {
			return domain.Vehicle{}, fmt.Errorf("service.CatalogService.GetVehicle: %w", err)
		}
		return v, nil
	})
}

// cached returns the value under key, loading and storing it on a miss.
// Errors from load are never cached.
func cached[T any](ctx context.Context, s *CatalogService, key string, load func() (T, error)) (T, error) {
	var v T
	if ok, _ := s.cache.Get(ctx, key, &v); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	_ = s.cache.Set(ctx, key, v, s.cacheTTL)
	return v, nil
}
