package models

import "strings"

type Room struct {
	Number    int    `json:"number"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
}

// Matches reports whether the room belongs to category, ignoring case.
func (r Room) Matches(category string) bool {
	return SameCategory(r.Category, category)
}

// SameCategory compares category labels case-insensitively.
func SameCategory(a, b string) bool {
	return strings.EqualFold(a, b)
}

// PriceFor returns the nightly price for a category. Unknown labels are
// charged at the Suite rate.
func PriceFor(category string) int {
	switch {
	case SameCategory(category, CategoryStandard):
		return PriceStandard
	case SameCategory(category, CategoryDeluxe):
		return PriceDeluxe
	default:
		return PriceSuite
	}
}

// DefaultInventory builds the ten-room inventory used on first run.
func DefaultInventory() []Room {
	rooms := make([]Room, 0, InventorySize)
	for n := 1; n <= InventorySize; n++ {
		category := CategorySuite
		switch {
		case n <= StandardRooms:
			category = CategoryStandard
		case n <= StandardRooms+DeluxeRooms:
			category = CategoryDeluxe
		}
		rooms = append(rooms, Room{Number: n, Category: category, Available: true})
	}
	return rooms
}
