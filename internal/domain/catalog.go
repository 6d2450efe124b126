package domain

import "github.com/google/uuid"

// Hotel is a catalog entry that rooms belong to.
type Hotel struct {
	ID        uuid.UUID
	Name      string
	City      string
	Address   string
	Rating    float64
	Amenities []string
	Images    []string
}

// Room is a bookable hotel room. When chosen for a slot it is copied by value
// into the itinerary; later catalog edits do not reach stored trips.
type Room struct {
	ID        uuid.UUID `json:"id"`
	HotelID   uuid.UUID `json:"hotelId"`
	Type      string    `json:"type"`
	Price     float64   `json:"price"`
	Capacity  int       `json:"capacity"`
	Amenities []string  `json:"amenities"`
	Images    []string  `json:"images"`
}

// Vehicle is a rentable vehicle, copied by value into a slot when chosen.
type Vehicle struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Seats    int       `json:"seats"`
	Price    float64   `json:"price"` // per day
	Features []string  `json:"features"`
	Images   []string  `json:"images"`
}

// HotelSelection is what the room picker stages: the hotel's name plus an
// optional room. It has no identity of its own.
type HotelSelection struct {
	HotelName string `json:"hotelName"`
	Room      *Room  `json:"room,omitempty"`
}
