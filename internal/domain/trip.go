// Package domain contains the core data types for the trip builder.
// It performs no I/O and is imported by every other internal package
// (itinerary, repo, service, handler).
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a stored trip.
type TripStatus string

const (
	StatusPlanned   TripStatus = "planned"
	StatusActive    TripStatus = "active"
	StatusCompleted TripStatus = "completed"
	StatusCancelled TripStatus = "cancelled"
)

// ParseTripStatus validates s as a TripStatus.
func ParseTripStatus(s string) (TripStatus, error) {
	switch st := TripStatus(s); st {
	case StatusPlanned, StatusActive, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// TripType distinguishes customer-built trips from admin-curated packages.
type TripType string

const (
	TripTypeCustom  TripType = "custom"
	TripTypePackage TripType = "package"
)

// ParseTripType validates s as a TripType.
func ParseTripType(s string) (TripType, error) {
	switch tt := TripType(s); tt {
	case TripTypeCustom, TripTypePackage:
		return tt, nil
	}
	return "", fmt.Errorf("%w: unknown trip type %q", ErrValidation, s)
}

// Trip is the persisted record produced by submitting a draft.
// Destinations and Highlights are derived from the itinerary at submit time
// and stored alongside it for display and search.
type Trip struct {
	ID             uuid.UUID
	Name           string
	Description    string
	StartDate      time.Time
	EndDate        time.Time
	Budget         *float64 // nil when the author gave no budget
	NumberOfPeople int
	NeedsCar       bool
	CarType        *string
	Preferences    string
	Status         TripStatus
	TripType       TripType
	Destinations   []string
	Highlights     []string
	Itinerary      []Day
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TripFilter narrows a trip listing. Zero values mean "any".
type TripFilter struct {
	Status   TripStatus
	TripType TripType
}
