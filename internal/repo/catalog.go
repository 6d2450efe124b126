package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-builder/internal/domain"
)

// CatalogRepo reads the hotel, room, and vehicle catalog the pickers choose from.
type CatalogRepo interface {
	// ListHotels returns hotels ordered by name. A non-empty city filters
	// case-insensitively on exact city name.
	ListHotels(ctx context.Context, city string) ([]domain.Hotel, error)

	// GetHotel returns domain.ErrNotFound if no hotel with that ID exists.
	GetHotel(ctx context.Context, id uuid.UUID) (domain.Hotel, error)

	// ListRooms returns the rooms of one hotel ordered by price.
	ListRooms(ctx context.Context, hotelID uuid.UUID) ([]domain.Room, error)

	// GetRoom returns domain.ErrNotFound if no room with that ID exists.
	GetRoom(ctx context.Context, id uuid.UUID) (domain.Room, error)

	// ListVehicles returns all vehicles ordered by price.
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)

	// GetVehicle returns domain.ErrNotFound if no vehicle with that ID exists.
	GetVehicle(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
}

type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

const (
	hotelColumns   = `id, name, city, address, rating, amenities, images`
	roomColumns    = `id, hotel_id, type, price, capacity, amenities, images`
	vehicleColumns = `id, name, type, seats, price, features, images`
)

func (r *pgCatalogRepo) ListHotels(ctx context.Context, city string) ([]domain.Hotel, error) {
	q := `SELECT ` + hotelColumns + ` FROM hotels
		WHERE (@city::text = '' OR lower(city) = lower(@city::text))
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"city": city})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListHotels: %w", err)
	}
	hotels, err := collect(rows, scanHotel)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListHotels: %w", err)
	}
	return hotels, nil
}

func (r *pgCatalogRepo) GetHotel(ctx context.Context, id uuid.UUID) (domain.Hotel, error) {
	q := `SELECT ` + hotelColumns + ` FROM hotels WHERE id = @id`

	h, err := scanHotel(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("repo.CatalogRepo.GetHotel: %w", err)
	}
	return h, nil
}

func (r *pgCatalogRepo) ListRooms(ctx context.Context, hotelID uuid.UUID) ([]domain.Room, error) {
	q := `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = @hotel_id ORDER BY price, type`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"hotel_id": hotelID})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListRooms: %w", err)
	}
	rooms, err := collect(rows, scanRoom)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListRooms: %w", err)
	}
	return rooms, nil
}

func (r *pgCatalogRepo) GetRoom(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	q := `SELECT ` + roomColumns + ` FROM rooms WHERE id = @id`

	room, err := scanRoom(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.CatalogRepo.GetRoom: %w", err)
	}
	return room, nil
}

func (r *pgCatalogRepo) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY price, name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListVehicles: %w", err)
	}
	vehicles, err := collect(rows, scanVehicle)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListVehicles: %w", err)
	}
	return vehicles, nil
}

func (r *pgCatalogRepo) GetVehicle(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = @id`

	v, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.CatalogRepo.GetVehicle: %w", err)
	}
	return v, nil
}

func scanHotel(s scanner) (domain.Hotel, error) {
	var (
		h  domain.Hotel
		id pgtype.UUID
	)
	if err := s.Scan(&id, &h.Name, &h.City, &h.Address, &h.Rating, &h.Amenities, &h.Images); err != nil {
		return domain.Hotel{}, notFound(err)
	}
	h.ID = uuid.UUID(id.Bytes)
	h.Amenities = nonNil(h.Amenities)
	h.Images = nonNil(h.Images)
	return h, nil
}

func scanRoom(s scanner) (domain.Room, error) {
	var (
		r       domain.Room
		id      pgtype.UUID
		hotelID pgtype.UUID
	)
	if err := s.Scan(&id, &hotelID, &r.Type, &r.Price, &r.Capacity, &r.Amenities, &r.Images); err != nil {
		return domain.Room{}, notFound(err)
	}
	r.ID = uuid.UUID(id.Bytes)
	r.HotelID = uuid.UUID(hotelID.Bytes)
	r.Amenities = nonNil(r.Amenities)
	r.Images = nonNil(r.Images)
	return r, nil
}

func scanVehicle(s scanner) (domain.Vehicle, error) {
	var (
		v  domain.Vehicle
		id pgtype.UUID
	)
	if err := s.Scan(&id, &v.Name, &v.Type, &v.Seats, &v.Price, &v.Features, &v.Images); err != nil {
		return domain.Vehicle{}, notFound(err)
	}
	v.ID = uuid.UUID(id.Bytes)
	v.Features = nonNil(v.Features)
	v.Images = nonNil(v.Images)
	return v, nil
}

// notFound maps pgx.ErrNoRows to domain.ErrNotFound and passes anything else through.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// collect drains rows through scan, always closing them.
func collect[T any](rows pgx.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
