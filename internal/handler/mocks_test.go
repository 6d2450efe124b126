package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/handler"
	"github.com/pkordes/trip-builder/internal/itinerary"
)

// Test doubles for the handler servicer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged    func(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error)
	updateStatus func(ctx context.Context, id uuid.UUID, st domain.TripStatus) (domain.Trip, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockTripServicer) UpdateStatus(ctx context.Context, id uuid.UUID, st domain.TripStatus) (domain.Trip, error) {
	return m.updateStatus(ctx, id, st)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockCatalogServicer struct {
	listHotels   func(ctx context.Context, city string) ([]domain.Hotel, error)
	listRooms    func(ctx context.Context, hotelID uuid.UUID) ([]domain.Room, error)
	listVehicles func(ctx context.Context) ([]domain.Vehicle, error)
}

func (m *mockCatalogServicer) ListHotels(ctx context.Context, city string) ([]domain.Hotel, error) {
	return m.listHotels(ctx, city)
}
func (m *mockCatalogServicer) ListRooms(ctx context.Context, hotelID uuid.UUID) ([]domain.Room, error) {
	return m.listRooms(ctx, hotelID)
}
func (m *mockCatalogServicer) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return m.listVehicles(ctx)
}

var _ handler.CatalogServicer = (*mockCatalogServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// draftFn is the shape shared by the picker confirm/cancel calls.
type draftFn func(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error)

type mockDraftServicer struct {
	start           func(ctx context.Context, role domain.Role) (*itinerary.Draft, error)
	get             draftFn
	discard         func(ctx context.Context, id uuid.UUID) error
	setFields       func(ctx context.Context, id uuid.UUID, fields map[itinerary.Field]any) (*itinerary.Draft, error)
	regenerateDays  func(ctx context.Context, id uuid.UUID, opts ...itinerary.RegenerateOption) (*itinerary.Draft, error)
	replaceDaySlots func(ctx context.Context, id uuid.UUID, day int, slots []domain.Slot) (*itinerary.Draft, error)
	addSlot         func(ctx context.Context, id uuid.UUID, day int) (*itinerary.Draft, domain.Slot, error)
	updateSlot      func(ctx context.Context, id uuid.UUID, day int, slotID string, field itinerary.SlotField, value any, confirm bool) (*itinerary.Draft, error)
	removeSlot      func(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error)
	openRoom        func(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error)
	stageRoom       func(ctx context.Context, id, hotelID uuid.UUID, roomID *uuid.UUID) (*itinerary.Draft, error)
	confirmRoom     draftFn
	cancelRoom      draftFn
	openVehicle     func(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error)
	stageVehicle    func(ctx context.Context, id, vehicleID uuid.UUID) (*itinerary.Draft, error)
	confirmVehicle  draftFn
	cancelVehicle   draftFn
	submit          func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

func (m *mockDraftServicer) Start(ctx context.Context, role domain.Role) (*itinerary.Draft, error) {
	return m.start(ctx, role)
}
func (m *mockDraftServicer) Get(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	return m.get(ctx, id)
}
func (m *mockDraftServicer) Discard(ctx context.Context, id uuid.UUID) error {
	return m.discard(ctx, id)
}
func (m *mockDraftServicer) SetFields(ctx context.Context, id uuid.UUID, fields map[itinerary.Field]any) (*itinerary.Draft, error) {
	return m.setFields(ctx, id, fields)
}
func (m *mockDraftServicer) RegenerateDays(ctx context.Context, id uuid.UUID, opts ...itinerary.RegenerateOption) (*itinerary.Draft, error) {
	return m.regenerateDays(ctx, id, opts...)
}
func (m *mockDraftServicer) ReplaceDaySlots(ctx context.Context, id uuid.UUID, day int, slots []domain.Slot) (*itinerary.Draft, error) {
	return m.replaceDaySlots(ctx, id, day, slots)
}
func (m *mockDraftServicer) AddSlot(ctx context.Context, id uuid.UUID, day int) (*itinerary.Draft, domain.Slot, error) {
	return m.addSlot(ctx, id, day)
}
func (m *mockDraftServicer) UpdateSlot(ctx context.Context, id uuid.UUID, day int, slotID string, field itinerary.SlotField, value any, confirm bool) (*itinerary.Draft, error) {
	return m.updateSlot(ctx, id, day, slotID, field, value, confirm)
}
func (m *mockDraftServicer) RemoveSlot(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error) {
	return m.removeSlot(ctx, id, day, slotID)
}
func (m *mockDraftServicer) OpenRoomPicker(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error) {
	return m.openRoom(ctx, id, day, slotID)
}
func (m *mockDraftServicer) StageRoom(ctx context.Context, id, hotelID uuid.UUID, roomID *uuid.UUID) (*itinerary.Draft, error) {
	return m.stageRoom(ctx, id, hotelID, roomID)
}
func (m *mockDraftServicer) ConfirmRoom(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	return m.confirmRoom(ctx, id)
}
func (m *mockDraftServicer) CancelRoom(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	return m.cancelRoom(ctx, id)
}
func (m *mockDraftServicer) OpenVehiclePicker(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error) {
	return m.openVehicle(ctx, id, day, slotID)
}
func (m *mockDraftServicer) StageVehicle(ctx context.Context, id, vehicleID uuid.UUID) (*itinerary.Draft, error) {
	return m.stageVehicle(ctx, id, vehicleID)
}
func (m *mockDraftServicer) ConfirmVehicle(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	return m.confirmVehicle(ctx, id)
}
func (m *mockDraftServicer) CancelVehicle(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error) {
	return m.cancelVehicle(ctx, id)
}
func (m *mockDraftServicer) Submit(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.submit(ctx, id)
}

var _ handler.DraftServicer = (*mockDraftServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serve runs one request through the full router.
func serve(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// serveReader is serve for raw, possibly malformed, bodies.
func serveReader(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tripFixture() domain.Trip {
	budget := 120000.0
	now := time.Now().UTC()
	return domain.Trip{
		ID:             uuid.New(),
		Name:           "Hunza Explorer",
		StartDate:      date(2025, 6, 1),
		EndDate:        date(2025, 6, 3),
		Budget:         &budget,
		NumberOfPeople: 2,
		Status:         domain.StatusPlanned,
		TripType:       domain.TripTypePackage,
		Destinations:   []string{"Hunza Valley"},
		Highlights:     []string{"Hiking"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// draftFixture returns a customer draft with one day holding one slot.
func draftFixture() *itinerary.Draft {
	d := itinerary.NewDraft(domain.RoleCustomer)
	d.Name = "Weekend"
	start := date(2025, 6, 1)
	d.StartDate, d.EndDate = &start, &start
	d.Days = []domain.Day{{Slots: []domain.Slot{{ID: "s1", Activity: "Hiking", StartTime: "09:00", EndTime: "18:00"}}}}
	d.Days[0].Date.Time = start
	return d
}
