package domain

import (
	"context"

	"hotel/internal/models"
)

type Store interface {
	LoadRooms() ([]models.Room, error)
	SaveRooms(rooms []models.Room) error
	LoadBookings() ([]models.Booking, error)
	SaveBookings(bookings []models.Booking) error
}

// IDRegistry remembers every booking id ever issued.
type IDRegistry interface {
	// Reserve records id and reports false if it was issued before.
	Reserve(ctx context.Context, id string) (bool, error)
	Seed(ctx context.Context, ids []string) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type HotelService interface {
	ListAvailable(ctx context.Context, category string) []models.Room
	Book(ctx context.Context, userName, category string) (models.Booking, error)
	Cancel(ctx context.Context, bookingID string) (models.Booking, error)
	ListBookings(ctx context.Context) []models.Booking
	Rooms(ctx context.Context) []models.Room
}
