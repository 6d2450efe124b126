// Package handler implements the HTTP API for the trip builder.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, draft.go, picker.go, ...) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/itinerary"
)

// TripServicer defines the stored-trip operations the handlers depend on.
// Defined here, in the consumer package, so tests can inject a mock without
// touching the database or service layer.
type TripServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, filter domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DraftServicer defines the draft session operations.
type DraftServicer interface {
	Start(ctx context.Context, role domain.Role) (*itinerary.Draft, error)
	Get(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error)
	Discard(ctx context.Context, id uuid.UUID) error
	SetFields(ctx context.Context, id uuid.UUID, fields map[itinerary.Field]any) (*itinerary.Draft, error)
	RegenerateDays(ctx context.Context, id uuid.UUID, opts ...itinerary.RegenerateOption) (*itinerary.Draft, error)
	ReplaceDaySlots(ctx context.Context, id uuid.UUID, day int, slots []domain.Slot) (*itinerary.Draft, error)
	AddSlot(ctx context.Context, id uuid.UUID, day int) (*itinerary.Draft, domain.Slot, error)
	UpdateSlot(ctx context.Context, id uuid.UUID, day int, slotID string, field itinerary.SlotField, value any, confirm bool) (*itinerary.Draft, error)
	RemoveSlot(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error)

	OpenRoomPicker(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error)
	StageRoom(ctx context.Context, id, hotelID uuid.UUID, roomID *uuid.UUID) (*itinerary.Draft, error)
	ConfirmRoom(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error)
	CancelRoom(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error)

	OpenVehiclePicker(ctx context.Context, id uuid.UUID, day int, slotID string) (*itinerary.Draft, error)
	StageVehicle(ctx context.Context, id, vehicleID uuid.UUID) (*itinerary.Draft, error)
	ConfirmVehicle(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error)
	CancelVehicle(ctx context.Context, id uuid.UUID) (*itinerary.Draft, error)

	Submit(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// CatalogServicer defines the read-only catalog operations.
type CatalogServicer interface {
	ListHotels(ctx context.Context, city string) ([]domain.Hotel, error)
	ListRooms(ctx context.Context, hotelID uuid.UUID) ([]domain.Room, error)
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

// ExportServicer defines the export operation.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the handler dependencies.
type Server struct {
	trips    TripServicer
	drafts   DraftServicer
	catalog  CatalogServicer
	export   ExportServicer
	validate *validator.Validate
	log      *slog.Logger

	openAPI     []byte
	submitLimit func(http.Handler) http.Handler
	extraRoutes []func(chi.Router)
}

// Option configures optional Server behaviour.
type Option func(*Server)

// WithLogger sets the logger used for unexpected errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithOpenAPI serves doc at GET /openapi.yaml.
func WithOpenAPI(doc []byte) Option {
	return func(s *Server) { s.openAPI = doc }
}

// WithSubmitLimiter wraps POST /drafts/{id}/submit in mw.
func WithSubmitLimiter(mw func(http.Handler) http.Handler) Option {
	return func(s *Server) { s.submitLimit = mw }
}

// WithRoutes registers additional routes, such as /metrics, on the router.
func WithRoutes(fn func(chi.Router)) Option {
	return func(s *Server) { s.extraRoutes = append(s.extraRoutes, fn) }
}

// NewServer constructs the Server with all its dependencies. Any servicer may
// be nil in tests that do not exercise its routes.
func NewServer(trips TripServicer, drafts DraftServicer, catalog CatalogServicer, export ExportServicer, opts ...Option) *Server {
	s := &Server{
		trips:    trips,
		drafts:   drafts,
		catalog:  catalog,
		export:   export,
		validate: newValidator(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns the chi router with every API route registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if s.openAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}
	for _, fn := range s.extraRoutes {
		fn(r)
	}

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Get("/{id}", s.GetTrip)
		r.Patch("/{id}/status", s.UpdateTripStatus)
		r.Delete("/{id}", s.DeleteTrip)
	})
	r.Get("/export", s.GetExport)

	r.Get("/hotels", s.ListHotels)
	r.Get("/hotels/{id}/rooms", s.ListRooms)
	r.Get("/vehicles", s.ListVehicles)

	r.Route("/drafts", func(r chi.Router) {
		r.Post("/", s.CreateDraft)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetDraft)
			r.Patch("/", s.UpdateDraft)
			r.Delete("/", s.DeleteDraft)

			r.Post("/days", s.RegenerateDays)
			r.Post("/days/{day}/slots", s.AddSlot)
			r.Put("/days/{day}/slots", s.ReplaceDaySlots)
			r.Patch("/days/{day}/slots/{slot}", s.UpdateSlot)
			r.Delete("/days/{day}/slots/{slot}", s.RemoveSlot)

			r.Post("/room-picker/open", s.OpenRoomPicker)
			r.Post("/room-picker/stage", s.StageRoom)
			r.Post("/room-picker/confirm", s.ConfirmRoom)
			r.Post("/room-picker/cancel", s.CancelRoom)

			r.Post("/vehicle-picker/open", s.OpenVehiclePicker)
			r.Post("/vehicle-picker/stage", s.StageVehicle)
			r.Post("/vehicle-picker/confirm", s.ConfirmVehicle)
			r.Post("/vehicle-picker/cancel", s.CancelVehicle)

			submit := http.Handler(http.HandlerFunc(s.SubmitDraft))
			if s.submitLimit != nil {
				submit = s.submitLimit(submit)
			}
			r.Method(http.MethodPost, "/submit", submit)
		})
	})
	return r
}
