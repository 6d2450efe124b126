package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/itinerary"
)

const draftNotFound = "draft not found"

// CreateDraft handles POST /drafts.
func (s *Server) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		s.writeError(w, r, err, draftNotFound)
		return
	}
	d, err := s.drafts.Start(r.Context(), role)
	if err != nil {
		s.writeError(w, r, err, draftNotFound)
		return
	}
	w.Header().Set("Location", "/drafts/"+d.ID.String())
	writeJSON(w, http.StatusCreated, draftToResponse(d))
}

// GetDraft handles GET /drafts/{id}.
func (s *Server) GetDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	d, err := s.drafts.Get(r.Context(), id)
	s.respondDraft(w, r, d, err)
}

// DeleteDraft handles DELETE /drafts/{id}.
func (s *Server) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.drafts.Discard(r.Context(), id); err != nil {
		s.writeError(w, r, err, draftNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateDraft handles PATCH /drafts/{id}.
func (s *Server) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateDraftRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	fields := make(map[itinerary.Field]any, len(req.Fields))
	var unknown []string
	for k, v := range req.Fields {
		f, ok := draftFields[k]
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		fields[f] = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		writeJSON(w, http.StatusUnprocessableEntity,
			requestBody("unknown fields: "+strings.Join(unknown, ", ")))
		return
	}

	d, err := s.drafts.SetFields(r.Context(), id, fields)
	s.respondDraft(w, r, d, err)
}

// RegenerateDays handles POST /drafts/{id}/days. The body is optional.
func (s *Server) RegenerateDays(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req RegenerateDaysRequest
	if r.Body != nil && r.Body != http.NoBody {
		if !s.decodeOptionalJSON(w, r, &req) {
			return
		}
	}

	var opts []itinerary.RegenerateOption
	if req.ConfirmDiscard {
		opts = append(opts, itinerary.ConfirmDiscard())
	}
	if req.KeepOverlapping {
		opts = append(opts, itinerary.KeepOverlapping())
	}
	d, err := s.drafts.RegenerateDays(r.Context(), id, opts...)
	s.respondDraft(w, r, d, err)
}

// AddSlot handles POST /drafts/{id}/days/{day}/slots.
func (s *Server) AddSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	d, slot, err := s.drafts.AddSlot(r.Context(), id, day)
	if err != nil {
		s.writeError(w, r, err, draftNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, SlotCreated{Slot: slot, Draft: draftToResponse(d)})
}

// ReplaceDaySlots handles PUT /drafts/{id}/days/{day}/slots.
func (s *Server) ReplaceDaySlots(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	var req ReplaceSlotsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	d, err := s.drafts.ReplaceDaySlots(r.Context(), id, day, req.Slots)
	s.respondDraft(w, r, d, err)
}

// UpdateSlot handles PATCH /drafts/{id}/days/{day}/slots/{slot}.
func (s *Server) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	var req UpdateSlotRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	d, err := s.drafts.UpdateSlot(r.Context(), id, day, chi.URLParam(r, "slot"), slotFields[req.Field], req.Value, req.Confirm)
	s.respondDraft(w, r, d, err)
}

// RemoveSlot handles DELETE /drafts/{id}/days/{day}/slots/{slot}.
func (s *Server) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	d, err := s.drafts.RemoveSlot(r.Context(), id, day, chi.URLParam(r, "slot"))
	s.respondDraft(w, r, d, err)
}

// SubmitDraft handles POST /drafts/{id}/submit. A successful submit ends the
// draft session and returns the stored trip.
func (s *Server) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	trip, err := s.drafts.Submit(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, draftNotFound)
		return
	}
	w.Header().Set("Location", "/trips/"+trip.ID.String())
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

// respondDraft writes d, or the error from the call that produced it.
func (s *Server) respondDraft(w http.ResponseWriter, r *http.Request, d *itinerary.Draft, err error) {
	if err != nil {
		s.writeError(w, r, err, draftNotFound)
		return
	}
	writeJSON(w, http.StatusOK, draftToResponse(d))
}

// decodeOptionalJSON is decodeJSON for bodies that may be empty.
func (s *Server) decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge,
				errorBody("payload_too_large", fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)))
			return false
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("unreadable body: "+err.Error()))
		return false
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return true
	}
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	return s.decodeJSON(w, r, dst)
}
