package service

import (
	"context"
	"fmt"
	"slices"

	"hotel/internal/domain"
	"hotel/internal/events"
	"hotel/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HotelService owns the room and booking lists for the lifetime of the
// process. Every successful mutation is written back to the store, rooms
// first, then bookings. It is not safe for concurrent use.
type HotelService struct {
	store    domain.Store
	registry domain.IDRegistry
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	newID    func() string

	rooms    []models.Room
	bookings []models.Booking
}

type Option func(*HotelService)

// WithIDGenerator replaces the random booking id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *HotelService) {
		s.newID = gen
	}
}

func NewHotelService(
	ctx context.Context,
	store domain.Store,
	registry domain.IDRegistry,
	eventBus domain.EventPublisher,
	logger *zerolog.Logger,
	opts ...Option,
) (*HotelService, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	s := &HotelService{
		store:    store,
		registry: registry,
		eventBus: eventBus,
		logger:   logger,
		newID:    randomBookingID,
	}
	for _, opt := range opts {
		opt(s)
	}

	rooms, err := store.LoadRooms()
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	bookings, err := store.LoadBookings()
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	s.rooms = rooms
	s.bookings = bookings

	if registry != nil && len(bookings) > 0 {
		ids := make([]string, 0, len(bookings))
		for _, b := range bookings {
			ids = append(ids, b.ID)
		}
		if err := registry.Seed(ctx, ids); err != nil {
			s.logger.Warn().Err(err).Int("bookings", len(ids)).Msg("seed id registry")
		}
	}

	s.logger.Info().Int("rooms", len(rooms)).Int("bookings", len(bookings)).Msg("Hotel state loaded")
	return s, nil
}

// ListAvailable returns bookable rooms of category in inventory order.
func (s *HotelService) ListAvailable(ctx context.Context, category string) []models.Room {
	var rooms []models.Room
	for _, r := range s.rooms {
		if r.Available && r.Matches(category) {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// Book reserves the lowest-numbered free room of category.
func (s *HotelService) Book(ctx context.Context, userName, category string) (models.Booking, error) {
	price := models.PriceFor(category)

	idx := slices.IndexFunc(s.rooms, func(r models.Room) bool {
		return r.Available && r.Matches(category)
	})
	if idx < 0 {
		return models.Booking{}, domain.ErrNotAvailable
	}

	id, err := s.nextBookingID(ctx)
	if err != nil {
		return models.Booking{}, err
	}

	room := &s.rooms[idx]
	booking := models.Booking{
		ID:         id,
		UserName:   userName,
		RoomNumber: room.Number,
		Category:   room.Category,
		Price:      price,
	}

	room.Available = false
	s.bookings = append(s.bookings, booking)

	if err := s.persist(); err != nil {
		room.Available = true
		s.bookings = s.bookings[:len(s.bookings)-1]
		s.restore()
		return models.Booking{}, fmt.Errorf("save booking %s: %w", id, err)
	}

	s.logger.Info().Str("booking_id", id).Int("room", booking.RoomNumber).Str("category", booking.Category).Msg("Room booked")
	s.publishEvent(events.EventBookingCreated, booking)
	return booking, nil
}

// Cancel removes the booking with bookingID and frees its room.
func (s *HotelService) Cancel(ctx context.Context, bookingID string) (models.Booking, error) {
	idx := slices.IndexFunc(s.bookings, func(b models.Booking) bool {
		return b.ID == bookingID
	})
	if idx < 0 {
		return models.Booking{}, domain.ErrNotFound
	}

	booking := s.bookings[idx]
	prevBookings := s.bookings
	s.bookings = slices.Concat(s.bookings[:idx], s.bookings[idx+1:])

	// The booking may reference a room that is no longer in the inventory.
	var room *models.Room
	var wasAvailable bool
	if i := slices.IndexFunc(s.rooms, func(r models.Room) bool { return r.Number == booking.RoomNumber }); i >= 0 {
		room = &s.rooms[i]
		wasAvailable = room.Available
		room.Available = true
	} else {
		s.logger.Warn().Str("booking_id", bookingID).Int("room", booking.RoomNumber).Msg("Canceled booking references unknown room")
	}

	if err := s.persist(); err != nil {
		s.bookings = prevBookings
		if room != nil {
			room.Available = wasAvailable
		}
		s.restore()
		return models.Booking{}, fmt.Errorf("save cancellation %s: %w", bookingID, err)
	}

	s.logger.Info().Str("booking_id", bookingID).Int("room", booking.RoomNumber).Msg("Booking canceled")
	s.publishEvent(events.EventBookingCanceled, booking)
	return booking, nil
}

// ListBookings returns all bookings in creation order.
func (s *HotelService) ListBookings(ctx context.Context) []models.Booking {
	return slices.Clone(s.bookings)
}

// Rooms returns the whole inventory in order.
func (s *HotelService) Rooms(ctx context.Context) []models.Room {
	return slices.Clone(s.rooms)
}

func (s *HotelService) persist() error {
	if err := s.store.SaveRooms(s.rooms); err != nil {
		return err
	}
	return s.store.SaveBookings(s.bookings)
}

// restore rewrites both stores from memory after a failed persist.
func (s *HotelService) restore() {
	if err := s.persist(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to restore stores after write error")
	}
}

func (s *HotelService) nextBookingID(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= models.BookingIDAttempts; attempt++ {
		id := s.newID()
		if id == "" || s.hasBooking(id) {
			continue
		}
		if s.registry == nil {
			return id, nil
		}

		fresh, err := s.registry.Reserve(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Str("booking_id", id).Msg("id registry unavailable, accepting id")
			return id, nil
		}
		if fresh {
			return id, nil
		}
		s.logger.Debug().Str("booking_id", id).Int("attempt", attempt).Msg("booking id issued before, regenerating")
	}
	return "", fmt.Errorf("no unused booking id after %d attempts", models.BookingIDAttempts)
}

func (s *HotelService) hasBooking(id string) bool {
	return slices.ContainsFunc(s.bookings, func(b models.Booking) bool { return b.ID == id })
}

func (s *HotelService) publishEvent(eventType string, booking models.Booking) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.PublishJSON(eventType, events.NewBookingPayload(booking)); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", booking.ID).Msg("publish event error")
	}
}

func randomBookingID() string {
	return uuid.NewString()[:models.BookingIDLength]
}
