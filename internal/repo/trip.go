// Package repo contains all database access logic for the trip builder.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-builder/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for submitted trips.
// Create is the gateway a finished draft is written through: one insert of
// the whole record, itinerary included.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns every trip ordered by start_date descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListPaged returns one page of trips matching filter and the total count.
	ListPaged(ctx context.Context, filter domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// UpdateStatus sets the status of a trip and returns the updated record.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, description, start_date, end_date, budget, number_of_people,
	needs_car, car_type, preferences, status, trip_type, destinations, highlights,
	itinerary, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, description, start_date, end_date, budget, number_of_people,
		                   needs_car, car_type, preferences, status, trip_type,
		                   destinations, highlights, itinerary)
		VALUES (@name, @description, @start_date, @end_date, @budget, @number_of_people,
		        @needs_car, @car_type, @preferences, @status, @trip_type,
		        @destinations, @highlights, @itinerary)
		RETURNING ` + tripColumns

	itinerary, err := marshalItinerary(trip.Itinerary)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	args := pgx.NamedArgs{
		"name":             trip.Name,
		"description":      trip.Description,
		"start_date":       trip.StartDate,
		"end_date":         trip.EndDate,
		"budget":           trip.Budget, // nil becomes NULL
		"number_of_people": trip.NumberOfPeople,
		"needs_car":        trip.NeedsCar,
		"car_type":         trip.CarType,
		"preferences":      trip.Preferences,
		"status":           string(trip.Status),
		"trip_type":        string(trip.TripType),
		"destinations":     nonNil(trip.Destinations),
		"highlights":       nonNil(trip.Highlights),
		"itinerary":        itinerary,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by start_date descending (most recent first).
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

// ListPaged returns one page of trips ordered by start_date descending, plus
// the number of trips matching filter across all pages.
func (r *pgTripRepo) ListPaged(ctx context.Context, filter domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const where = `
		WHERE (@status::text = '' OR status = @status::text)
		  AND (@trip_type::text = '' OR trip_type = @trip_type::text)`

	args := pgx.NamedArgs{
		"status":    string(filter.Status),
		"trip_type": string(filter.TripType),
		"limit":     p.Limit,
		"offset":    p.Offset(),
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`+where, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + tripColumns + ` FROM trips` + where + `
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

// UpdateStatus sets a trip's status and bumps updated_at.
func (r *pgTripRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET status     = @status,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateStatus: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip. The itinerary is
// parsed and validated on the way out; a stored shape the editor cannot handle
// surfaces as domain.ErrValidation instead of reaching callers half-decoded.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		status    string
		tripType  string
		itinerary []byte
	)

	err := s.Scan(&id, &t.Name, &t.Description, &startDate, &endDate, &t.Budget, &t.NumberOfPeople,
		&t.NeedsCar, &t.CarType, &t.Preferences, &status, &tripType, &t.Destinations, &t.Highlights,
		&itinerary, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, notFound(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	t.Status = domain.TripStatus(status)
	t.TripType = domain.TripType(tripType)
	t.Destinations = nonNil(t.Destinations)
	t.Highlights = nonNil(t.Highlights)

	days, err := domain.ParseItinerary(itinerary)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("trip %s: %w", t.ID, err)
	}
	t.Itinerary = days

	return t, nil
}

func marshalItinerary(days []domain.Day) ([]byte, error) {
	if days == nil {
		days = []domain.Day{}
	}
	b, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("marshal itinerary: %w", err)
	}
	return b, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
