// Package service contains the business logic for the trip builder API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/itinerary"
	"github.com/pkordes/trip-builder/internal/observability"
	"github.com/pkordes/trip-builder/internal/repo"
)

// TripService implements business logic for stored trips.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Submit validates a finished draft, serializes it and persists the result
// in a single insert. The draft itself is never modified, so a failed submit
// can be retried as is.
// Returns a *itinerary.ValidationError (matching domain.ErrValidation) when
// the draft is incomplete; nothing is written in that case.
func (s *TripService) Submit(ctx context.Context, d *itinerary.Draft) (domain.Trip, error) {
	if err := d.Validate(); err != nil {
		observability.ObserveSubmit(observability.SubmitInvalid)
		return domain.Trip{}, err
	}

	trip, err := s.repo.Create(ctx, d.Serialize())
	if err != nil {
		observability.ObserveSubmit(observability.SubmitFailed)
		return domain.Trip{}, fmt.Errorf("service.TripService.Submit: %w", err)
	}
	observability.ObserveSubmit(observability.SubmitCreated)
	return trip, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPaged returns one page of trips matching filter and the total number
// of matches. Filter values are checked against the enums first.
func (s *TripService) ListPaged(ctx context.Context, filter domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	if filter.Status != "" {
		if _, err := domain.ParseTripStatus(string(filter.Status)); err != nil {
			return nil, 0, err
		}
	}
	if filter.TripType != "" {
		if _, err := domain.ParseTripType(string(filter.TripType)); err != nil {
			return nil, 0, err
		}
	}

	trips, total, err := s.repo.ListPaged(ctx, filter, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// UpdateStatus moves a trip to another lifecycle status.
// Returns domain.ErrValidation for an unknown status and domain.ErrConflict
// when the trip is already cancelled or completed.
func (s *TripService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) (domain.Trip, error) {
	if _, err := domain.ParseTripStatus(string(status)); err != nil {
		return domain.Trip{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateStatus: %w", err)
	}
	if current.Status == status {
		return current, nil
	}
	if current.Status == domain.StatusCancelled || current.Status == domain.StatusCompleted {
		return domain.Trip{}, fmt.Errorf("%w: trip is %s", domain.ErrConflict, current.Status)
	}

	result, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateStatus: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// isValidation reports whether err is a business-rule rejection rather than
// an infrastructure failure.
func isValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
