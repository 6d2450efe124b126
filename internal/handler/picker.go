package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/trip-builder/internal/itinerary"
)

// OpenRoomPicker handles POST /drafts/{id}/room-picker/open.
func (s *Server) OpenRoomPicker(w http.ResponseWriter, r *http.Request) {
	s.openPicker(w, r, s.drafts.OpenRoomPicker)
}

// StageRoom handles POST /drafts/{id}/room-picker/stage.
func (s *Server) StageRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req StageRoomRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	d, err := s.drafts.StageRoom(r.Context(), id, req.HotelId, req.RoomId)
	s.respondDraft(w, r, d, err)
}

// ConfirmRoom handles POST /drafts/{id}/room-picker/confirm.
func (s *Server) ConfirmRoom(w http.ResponseWriter, r *http.Request) {
	s.pickerAction(w, r, s.drafts.ConfirmRoom)
}

// CancelRoom handles POST /drafts/{id}/room-picker/cancel.
func (s *Server) CancelRoom(w http.ResponseWriter, r *http.Request) {
	s.pickerAction(w, r, s.drafts.CancelRoom)
}

// OpenVehiclePicker handles POST /drafts/{id}/vehicle-picker/open.
func (s *Server) OpenVehiclePicker(w http.ResponseWriter, r *http.Request) {
	s.openPicker(w, r, s.drafts.OpenVehiclePicker)
}

// StageVehicle handles POST /drafts/{id}/vehicle-picker/stage.
func (s *Server) StageVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req StageVehicleRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	d, err := s.drafts.StageVehicle(r.Context(), id, req.VehicleId)
	s.respondDraft(w, r, d, err)
}

// ConfirmVehicle handles POST /drafts/{id}/vehicle-picker/confirm.
func (s *Server) ConfirmVehicle(w http.ResponseWriter, r *http.Request) {
	s.pickerAction(w, r, s.drafts.ConfirmVehicle)
}

// CancelVehicle handles POST /drafts/{id}/vehicle-picker/cancel.
func (s *Server) CancelVehicle(w http.ResponseWriter, r *http.Request) {
	s.pickerAction(w, r, s.drafts.CancelVehicle)
}

type openFunc func(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error)

func (s *Server) openPicker(w http.ResponseWriter, r *http.Request, open openFunc) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req OpenPickerRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	d, err := open(r.Context(), id, *req.Day, req.SlotId)
	s.respondDraft(w, r, d, err)
}

func (s *Server) pickerAction(w http.ResponseWriter, r *http.Request, action func(context.Context, uuid.UUID) (*itinerary.Draft, error)) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	d, err := action(r.Context(), id)
	s.respondDraft(w, r, d, err)
}
