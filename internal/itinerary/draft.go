// Package itinerary implements the trip builder: a Draft holding trip details
// and a day-by-day itinerary, the slot editing rules that keep at most one
// hotel selection per day, the room and vehicle pickers, and the mapping of a
// finished draft onto a domain.Trip record.
//
// A Draft is plain state. It is not safe for concurrent use; callers load it,
// apply one operation and store it again.
package itinerary

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-builder/internal/domain"
)

// Field names a scalar detail of a draft settable through SetField.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldPeople      Field = "numberOfPeople"
	FieldStartDate   Field = "startDate"
	FieldEndDate     Field = "endDate"
	FieldBudget      Field = "budget"
	FieldPreferences Field = "preferences"
)

// Draft is an in-progress trip. It exists only until it is submitted.
type Draft struct {
	ID          uuid.UUID    `json:"id"`
	Role        domain.Role  `json:"role"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	People      int          `json:"numberOfPeople"`
	StartDate   *time.Time   `json:"startDate,omitempty"`
	EndDate     *time.Time   `json:"endDate,omitempty"`
	Budget      *float64     `json:"budget,omitempty"`
	Preferences string       `json:"preferences"`
	Days        []domain.Day `json:"days"`

	RoomPicker    Picker[domain.HotelSelection] `json:"roomPicker"`
	VehiclePicker Picker[domain.Vehicle]        `json:"vehiclePicker"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDraft returns an empty draft for role with one traveller.
func NewDraft(role domain.Role) *Draft {
	return &Draft{
		ID:     uuid.New(),
		Role:   ProfileFor(role).Role,
		People: 1,
		Days:   []domain.Day{},
	}
}

// Profile returns the builder profile for the draft's role.
func (d *Draft) Profile() Profile {
	return ProfileFor(d.Role)
}

// SetField sets one scalar detail. Values are coerced, not validated:
// the number of people falls back to 1 when it is not a positive number and
// budget may be negative until Validate rejects it. Dates must still parse.
func (d *Draft) SetField(field Field, value any) error {
	switch field {
	case FieldName, FieldDescription, FieldPreferences:
		s, err := coerceString(field, value)
		if err != nil {
			return err
		}
		switch field {
		case FieldName:
			d.Name = s
		case FieldDescription:
			d.Description = s
		default:
			d.Preferences = s
		}
	case FieldPeople:
		d.People = coercePeople(value)
	case FieldStartDate, FieldEndDate:
		t, err := coerceDate(value)
		if err != nil {
			return err
		}
		if field == FieldStartDate {
			d.StartDate = t
		} else {
			d.EndDate = t
		}
	case FieldBudget:
		b, err := coerceBudget(value)
		if err != nil {
			return err
		}
		d.Budget = b
	default:
		return fmt.Errorf("%w: unknown field %q", domain.ErrValidation, field)
	}
	return nil
}

// RegenerateOption adjusts RegenerateDays.
type RegenerateOption func(*regenerateConfig)

type regenerateConfig struct {
	confirmDiscard  bool
	keepOverlapping bool
}

// ConfirmDiscard records that the user accepted losing slots that do not
// survive the regeneration.
func ConfirmDiscard() RegenerateOption {
	return func(c *regenerateConfig) { c.confirmDiscard = true }
}

// KeepOverlapping carries slots over for dates that are in both the old and
// the new range.
func KeepOverlapping() RegenerateOption {
	return func(c *regenerateConfig) { c.keepOverlapping = true }
}

// RegenerateDays replaces Days with one entry per date in [StartDate, EndDate].
// The replace is refused with ErrConflict when it would drop existing slots,
// unless ConfirmDiscard is given. Open pickers are closed because their day
// indexes no longer apply.
func (d *Draft) RegenerateDays(opts ...RegenerateOption) error {
	var cfg regenerateConfig
	for _, o := range opts {
		o(&cfg)
	}
	if d.StartDate == nil || d.EndDate == nil {
		return fmt.Errorf("%w: start and end date are required", domain.ErrValidation)
	}
	if truncateDate(*d.EndDate).Before(truncateDate(*d.StartDate)) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	if n := tripLength(*d.StartDate, *d.EndDate); n > MaxTripDays {
		return fmt.Errorf("%w: trip spans %d days, at most %d are allowed", domain.ErrValidation, n, MaxTripDays)
	}
	dates := DateRange(*d.StartDate, *d.EndDate)

	inRange := make(map[string]bool, len(dates))
	for _, t := range dates {
		inRange[dateKey(t)] = true
	}
	existing := make(map[string][]domain.Slot, len(d.Days))
	lost := 0
	for _, day := range d.Days {
		key := dateKey(day.Date.Time)
		if cfg.keepOverlapping && inRange[key] {
			existing[key] = day.Slots
			continue
		}
		lost += len(day.Slots)
	}
	if lost > 0 && !cfg.confirmDiscard {
		return fmt.Errorf("%w: regenerating days would discard %d slot(s)", domain.ErrConflict, lost)
	}

	days := make([]domain.Day, len(dates))
	for i, t := range dates {
		slots := existing[dateKey(t)]
		if slots == nil {
			slots = []domain.Slot{}
		}
		days[i] = domain.Day{Date: openapi_types.Date{Time: t}, Slots: slots}
	}
	d.Days = days
	d.RoomPicker = Picker[domain.HotelSelection]{}
	d.VehiclePicker = Picker[domain.Vehicle]{}
	return nil
}

// UpdateDaySlots replaces the slot list of one day. The new list must itself
// respect the one-hotel-per-day rule, and slot ids must be unique within it.
func (d *Draft) UpdateDaySlots(dayIndex int, slots []domain.Slot) error {
	day, err := d.day(dayIndex)
	if err != nil {
		return err
	}
	hotels := 0
	seen := make(map[string]bool, len(slots))
	out := make([]domain.Slot, len(slots))
	for i, s := range slots {
		if err := domain.ValidateTimeOfDay(s.StartTime); err != nil {
			return err
		}
		if err := domain.ValidateTimeOfDay(s.EndTime); err != nil {
			return err
		}
		if s.HotelRoomNeeded {
			hotels++
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate slot id %q", domain.ErrValidation, s.ID)
		}
		seen[s.ID] = true
		out[i] = s.Clone()
	}
	if hotels > 1 {
		return fmt.Errorf("%w: a day can hold only one hotel selection", domain.ErrConflict)
	}
	day.Slots = out
	return nil
}

// ValidationError lists every submit precondition the draft fails.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return domain.ErrValidation.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

// Validate checks the preconditions for submitting the draft, including that
// Days still matches the date range after any date change. It returns nil or
// a *ValidationError.
func (d *Draft) Validate() error {
	var problems []string
	if strings.TrimSpace(d.Name) == "" {
		problems = append(problems, "name is required")
	}
	if d.StartDate == nil {
		problems = append(problems, "start date is required")
	}
	if d.EndDate == nil {
		problems = append(problems, "end date is required")
	}
	if d.StartDate != nil && d.EndDate != nil {
		switch {
		case truncateDate(*d.EndDate).Before(truncateDate(*d.StartDate)):
			problems = append(problems, "end date must not be before start date")
		case tripLength(*d.StartDate, *d.EndDate) > MaxTripDays:
			problems = append(problems, fmt.Sprintf("trip may span at most %d days", MaxTripDays))
		case !d.daysMatch(*d.StartDate, *d.EndDate):
			problems = append(problems, "itinerary is out of date; regenerate days")
		}
	}
	if d.People < 1 {
		problems = append(problems, "number of people must be at least 1")
	}
	if d.Budget != nil && *d.Budget < 0 {
		problems = append(problems, "budget must not be negative")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// daysMatch reports whether Days holds exactly one entry per date from start
// to end, in order.
func (d *Draft) daysMatch(start, end time.Time) bool {
	dates := DateRange(start, end)
	if len(dates) != len(d.Days) {
		return false
	}
	for i, t := range dates {
		if dateKey(d.Days[i].Date.Time) != dateKey(t) {
			return false
		}
	}
	return true
}

func (d *Draft) day(index int) (*domain.Day, error) {
	if index < 0 || index >= len(d.Days) {
		return nil, fmt.Errorf("%w: day %d is outside the itinerary (%d days)", domain.ErrInvalidState, index, len(d.Days))
	}
	return &d.Days[index], nil
}

// --- coercion ---------------------------------------------------------------

func coerceString(field Field, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("%w: %s must be a string", domain.ErrValidation, field)
}

func coercePeople(v any) int {
	n := 0
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n = int(x)
	case float64:
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			n = int(x)
		}
	case json.Number:
		if i, err := x.Int64(); err == nil {
			n = int(i)
		} else if f, err := x.Float64(); err == nil {
			n = int(f)
		}
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.Atoi(s); err == nil {
			n = i
		} else if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) {
			n = int(f)
		}
	}
	if n < 1 {
		return 1
	}
	return n
}

func coerceDate(v any) (*time.Time, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		t := truncateDate(x)
		return &t, nil
	case openapi_types.Date:
		t := truncateDate(x.Time)
		return &t, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return nil, nil
		}
		t, err := ParseDate(strings.TrimSpace(x))
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	return nil, fmt.Errorf("%w: date must be a YYYY-MM-DD string", domain.ErrValidation)
}

func coerceBudget(v any) (*float64, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil, nil
	case float64:
		f = x
	case int:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: budget must be a number", domain.ErrValidation)
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: budget must be a number", domain.ErrValidation)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("%w: budget must be a number", domain.ErrValidation)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: budget must be a finite number", domain.ErrValidation)
	}
	return &f, nil
}
