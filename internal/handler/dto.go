package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/itinerary"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Trip is the JSON form of a stored trip. The itinerary keeps its stored
// camelCase shape.
type Trip struct {
	Id             openapi_types.UUID `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	StartDate      openapi_types.Date `json:"start_date"`
	EndDate        openapi_types.Date `json:"end_date"`
	Budget         *float64           `json:"budget"`
	NumberOfPeople int                `json:"number_of_people"`
	NeedsCar       bool               `json:"needs_car"`
	CarType        *string            `json:"car_type"`
	Preferences    string             `json:"preferences"`
	Status         string             `json:"status"`
	TripType       string             `json:"trip_type"`
	Destinations   []string           `json:"destinations"`
	Highlights     []string           `json:"highlights"`
	Itinerary      []domain.Day       `json:"itinerary"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Hotel is the JSON form of a catalog hotel.
type Hotel struct {
	Id        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	City      string             `json:"city"`
	Address   string             `json:"address"`
	Rating    float64            `json:"rating"`
	Amenities []string           `json:"amenities"`
	Images    []string           `json:"images"`
}

// Draft is the JSON form of a draft session.
type Draft struct {
	Id             openapi_types.UUID  `json:"id"`
	Role           string              `json:"role"`
	TripType       string              `json:"trip_type"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	NumberOfPeople int                 `json:"number_of_people"`
	StartDate      *openapi_types.Date `json:"start_date"`
	EndDate        *openapi_types.Date `json:"end_date"`
	Budget         *float64            `json:"budget"`
	Preferences    string              `json:"preferences"`
	Days           []domain.Day        `json:"days"`
	RoomPicker     Picker              `json:"room_picker"`
	VehiclePicker  Picker              `json:"vehicle_picker"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// Picker is the JSON form of a room or vehicle picker. Staged holds a hotel
// selection or a vehicle depending on the picker.
type Picker struct {
	State    string `json:"state"`
	DayIndex *int   `json:"day_index,omitempty"`
	SlotId   string `json:"slot_id,omitempty"`
	Staged   any    `json:"staged"`
}

// SlotCreated is the body of POST /drafts/{id}/days/{day}/slots.
type SlotCreated struct {
	Slot  domain.Slot `json:"slot"`
	Draft Draft       `json:"draft"`
}

// --- request bodies ----------------------------------------------------------

// CreateDraftRequest is the body of POST /drafts.
type CreateDraftRequest struct {
	Role string `json:"role" validate:"required,oneof=customer admin"`
}

// UpdateDraftRequest is the body of PATCH /drafts/{id}. Keys of Fields are
// name, description, number_of_people, start_date, end_date, budget and
// preferences.
type UpdateDraftRequest struct {
	Fields map[string]any `json:"fields" validate:"required,min=1"`
}

// RegenerateDaysRequest is the optional body of POST /drafts/{id}/days.
type RegenerateDaysRequest struct {
	ConfirmDiscard  bool `json:"confirm_discard"`
	KeepOverlapping bool `json:"keep_overlapping"`
}

// ReplaceSlotsRequest is the body of PUT /drafts/{id}/days/{day}/slots.
type ReplaceSlotsRequest struct {
	Slots []domain.Slot `json:"slots" validate:"required"`
}

// UpdateSlotRequest is the body of PATCH /drafts/{id}/days/{day}/slots/{slot}.
// Confirm allows moving the day's hotel onto this slot.
type UpdateSlotRequest struct {
	Field   string `json:"field" validate:"required,oneof=activity location start_time end_time notes hotel_details transport_needed hotel_room_needed"`
	Value   any    `json:"value"`
	Confirm bool   `json:"confirm"`
}

// OpenPickerRequest is the body of POST /drafts/{id}/{room,vehicle}-picker/open.
type OpenPickerRequest struct {
	Day    *int   `json:"day" validate:"required,min=0"`
	SlotId string `json:"slot_id" validate:"required"`
}

// StageRoomRequest is the body of POST /drafts/{id}/room-picker/stage.
type StageRoomRequest struct {
	HotelId openapi_types.UUID  `json:"hotel_id" validate:"required"`
	RoomId  *openapi_types.UUID `json:"room_id"`
}

// StageVehicleRequest is the body of POST /drafts/{id}/vehicle-picker/stage.
type StageVehicleRequest struct {
	VehicleId openapi_types.UUID `json:"vehicle_id" validate:"required"`
}

// UpdateStatusRequest is the body of PATCH /trips/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planned active completed cancelled"`
}

// draftFields maps request keys onto draft fields.
var draftFields = map[string]itinerary.Field{
	"name":             itinerary.FieldName,
	"description":      itinerary.FieldDescription,
	"number_of_people": itinerary.FieldPeople,
	"start_date":       itinerary.FieldStartDate,
	"end_date":         itinerary.FieldEndDate,
	"budget":           itinerary.FieldBudget,
	"preferences":      itinerary.FieldPreferences,
}

// slotFields maps request field names onto slot fields.
var slotFields = map[string]itinerary.SlotField{
	"activity":          itinerary.SlotActivity,
	"location":          itinerary.SlotLocation,
	"start_time":        itinerary.SlotStartTime,
	"end_time":          itinerary.SlotEndTime,
	"notes":             itinerary.SlotNotes,
	"hotel_details":     itinerary.SlotHotelDetails,
	"transport_needed":  itinerary.SlotTransportNeeded,
	"hotel_room_needed": itinerary.SlotHotelRoomNeeded,
}

// --- mapping helpers ---------------------------------------------------------

func tripToResponse(t domain.Trip) Trip {
	itin := t.Itinerary
	if itin == nil {
		itin = []domain.Day{}
	}
	return Trip{
		Id:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		StartDate:      openapi_types.Date{Time: t.StartDate},
		EndDate:        openapi_types.Date{Time: t.EndDate},
		Budget:         t.Budget,
		NumberOfPeople: t.NumberOfPeople,
		NeedsCar:       t.NeedsCar,
		CarType:        t.CarType,
		Preferences:    t.Preferences,
		Status:         string(t.Status),
		TripType:       string(t.TripType),
		Destinations:   nonNil(t.Destinations),
		Highlights:     nonNil(t.Highlights),
		Itinerary:      itin,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func hotelToResponse(h domain.Hotel) Hotel {
	return Hotel{
		Id:        h.ID,
		Name:      h.Name,
		City:      h.City,
		Address:   h.Address,
		Rating:    h.Rating,
		Amenities: nonNil(h.Amenities),
		Images:    nonNil(h.Images),
	}
}

func draftToResponse(d *itinerary.Draft) Draft {
	days := d.Days
	if days == nil {
		days = []domain.Day{}
	}
	return Draft{
		Id:             d.ID,
		Role:           string(d.Role),
		TripType:       string(d.Profile().TripType),
		Name:           d.Name,
		Description:    d.Description,
		NumberOfPeople: d.People,
		StartDate:      optionalDate(d.StartDate),
		EndDate:        optionalDate(d.EndDate),
		Budget:         d.Budget,
		Preferences:    d.Preferences,
		Days:           days,
		RoomPicker:     pickerToResponse(d.RoomPicker),
		VehiclePicker:  pickerToResponse(d.VehiclePicker),
		UpdatedAt:      d.UpdatedAt,
	}
}

func pickerToResponse[T any](p itinerary.Picker[T]) Picker {
	out := Picker{State: string(itinerary.PickerClosed)}
	if !p.IsOpen() {
		return out
	}
	day := p.DayIndex
	out.State = string(p.State)
	out.DayIndex = &day
	out.SlotId = p.SlotID
	if p.Staged != nil {
		out.Staged = p.Staged
	}
	return out
}

func optionalDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
