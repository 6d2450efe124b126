package handler

import (
	"net/http"
	"strings"

	"github.com/pkordes/trip-builder/internal/domain"
)

// ListHotels handles GET /hotels. ?city= filters case-insensitively.
func (s *Server) ListHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := s.catalog.ListHotels(r.Context(), strings.TrimSpace(r.URL.Query().Get("city")))
	if err != nil {
		s.writeError(w, r, err, "hotel not found")
		return
	}
	out := make([]Hotel, len(hotels))
	for i, h := range hotels {
		out[i] = hotelToResponse(h)
	}
	writeJSON(w, http.StatusOK, out)
}

// ListRooms handles GET /hotels/{id}/rooms.
func (s *Server) ListRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	rooms, err := s.catalog.ListRooms(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "hotel not found")
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

// ListVehicles handles GET /vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.catalog.ListVehicles(r.Context())
	if err != nil {
		s.writeError(w, r, err, "vehicle not found")
		return
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}
