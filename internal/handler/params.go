package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// pathUUID parses the named URL parameter as a UUID. On failure it writes a
// 400 response and returns false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "invalid "+name+": must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// pathInt parses the named URL parameter as a non-negative integer.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n < 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "invalid "+name+": must be a non-negative integer"))
		return 0, false
	}
	return n, true
}

// queryInt parses an optional integer query parameter. Absent parameters
// yield nil.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "invalid "+name+": must be an integer"))
		return nil, false
	}
	return &n, true
}
