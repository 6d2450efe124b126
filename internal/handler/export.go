package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/trip-builder/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_type", "trip_status", "trip_start_date", "trip_end_date",
	"day_date", "activity", "location", "start_time", "end_time",
	"hotel", "room", "vehicle", "notes",
}

// ExportRow is the JSON form of one export row. Day and slot columns are
// omitted for trips without slots.
type ExportRow struct {
	TripID        string `json:"trip_id"`
	TripName      string `json:"trip_name"`
	TripType      string `json:"trip_type"`
	TripStatus    string `json:"trip_status"`
	TripStartDate string `json:"trip_start_date"`
	TripEndDate   string `json:"trip_end_date"`
	DayDate       string `json:"day_date,omitempty"`
	Activity      string `json:"activity,omitempty"`
	Location      string `json:"location,omitempty"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`
	Hotel         string `json:"hotel,omitempty"`
	Room          string `json:"room,omitempty"`
	Vehicle       string `json:"vehicle,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// GetExport handles GET /export.
// It returns one row per itinerary slot across every stored trip.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "json" {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "format must be csv or json"))
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err, "export not found")
		return
	}

	if format == "csv" {
		body := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		body.WriteTo(w)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRow(r))
	}
	return out
}

// buildCSV encodes domain rows as CSV with a header row.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(csvRecord(r))
	}
	w.Flush()
	return &buf
}

func csvRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID, r.TripName, r.TripType, r.TripStatus, r.TripStartDate, r.TripEndDate,
		r.DayDate, r.Activity, r.Location, r.StartTime, r.EndTime,
		r.Hotel, r.Room, r.Vehicle, r.Notes,
	}
}
