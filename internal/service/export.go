package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/repo"
)

const exportDateLayout = "2006-01-02"

// ExportService assembles a flat export of every trip's itinerary.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per slot across all trips, in trip, day and
// slot order. Trips with no slots contribute one row with empty day and slot
// fields.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:        t.ID.String(),
			TripName:      t.Name,
			TripType:      string(t.TripType),
			TripStatus:    string(t.Status),
			TripStartDate: t.StartDate.Format(exportDateLayout),
			TripEndDate:   t.EndDate.Format(exportDateLayout),
		}

		n := 0
		for _, day := range t.Itinerary {
			for _, slot := range day.Slots {
				rows = append(rows, slotRow(base, day, slot))
				n++
			}
		}
		if n == 0 {
			rows = append(rows, base)
		}
	}
	return rows, nil
}

func slotRow(base domain.ExportRow, day domain.Day, slot domain.Slot) domain.ExportRow {
	row := base
	row.DayDate = day.Date.Format(exportDateLayout)
	row.Activity = slot.Activity
	row.Location = slot.Location
	row.StartTime = slot.StartTime
	row.EndTime = slot.EndTime
	row.Notes = slot.Notes
	if slot.HotelRoomNeeded {
		row.Hotel = slot.HotelDetails
		if slot.SelectedRoom != nil {
			row.Room = slot.SelectedRoom.Type
		}
	}
	if slot.TransportNeeded {
		row.Vehicle = slot.TransportDetails
	}
	return row
}
