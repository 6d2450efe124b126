package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per slot, with trip and day fields
// repeated for every slot. Trips with an empty itinerary yield one row with
// zero values for all day and slot fields.
type ExportRow struct {
	TripID        string
	TripName      string
	TripType      string
	TripStatus    string
	TripStartDate string // "2006-01-02" formatted date
	TripEndDate   string

	DayDate string // empty when the trip has no days

	Activity  string
	Location  string
	StartTime string
	EndTime   string
	Hotel     string // hotel name, empty unless a hotel is selected
	Room      string // room type
	Vehicle   string // vehicle summary
	Notes     string
}
