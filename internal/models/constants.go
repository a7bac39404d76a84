package models

const (
	CategoryStandard = "Standard"
	CategoryDeluxe   = "Deluxe"
	CategorySuite    = "Suite"
)

// Categories lists room tiers from cheapest to most expensive.
var Categories = []string{CategoryStandard, CategoryDeluxe, CategorySuite}

const (
	PriceStandard = 3000
	PriceDeluxe   = 5000
	PriceSuite    = 8000
)

const (
	// InventorySize количество номеров в отеле
	InventorySize = 10

	// StandardRooms номера 1-4
	StandardRooms = 4

	// DeluxeRooms номера 5-7, остальные Suite
	DeluxeRooms = 3

	// BookingIDLength длина идентификатора брони
	BookingIDLength = 8

	// BookingIDAttempts попытки сгенерировать неиспользованный идентификатор
	BookingIDAttempts = 5
)
