package models

type Booking struct {
	ID         string `json:"id"`
	UserName   string `json:"user_name"`
	RoomNumber int    `json:"room_number"`
	Category   string `json:"category"`
	Price      int    `json:"price"`
}
