package itinerary

import "github.com/pkordes/trip-builder/internal/domain"

// Profile holds the role-specific defaults of the itinerary builder.
// Customers and admins share one builder; only these values differ.
type Profile struct {
	Role          domain.Role
	TripType      domain.TripType
	DefaultStatus domain.TripStatus

	// SlotStart and SlotEnd are the time window given to new slots.
	SlotStart string
	SlotEnd   string
}

// ProfileFor returns the builder profile for role. Unknown roles get the
// customer profile.
func ProfileFor(role domain.Role) Profile {
	p := Profile{
		Role:          domain.RoleCustomer,
		TripType:      domain.TripTypeCustom,
		DefaultStatus: domain.StatusPlanned,
		SlotStart:     "09:00",
		SlotEnd:       "18:00",
	}
	if role == domain.RoleAdmin {
		p.Role = domain.RoleAdmin
		p.TripType = domain.TripTypePackage
	}
	return p
}
