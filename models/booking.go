package models

import "time"

// Booking is one confirmed (simulated) reservation record.
type Booking struct {
	ID             string    `json:"id" bson:"id"`
	AccountID      string    `json:"accountId" bson:"accountId"`
	RestaurantID   string    `json:"restaurantId" bson:"restaurantId"`
	RestaurantName string    `json:"restaurantName" bson:"restaurantName"`
	Date           string    `json:"date" bson:"date"` // YYYY-MM-DD
	Time           string    `json:"time" bson:"time"` // HH:MM or literal text
	PartySize      int       `json:"partySize" bson:"partySize"`
	Notes          string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// ReminderPayload is the queued reminder for a confirmed booking.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	AccountID string `json:"accountId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
