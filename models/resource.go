package models

import "time"

// Resource is a bookable entity: a venue (hall, hotel) or a service
// provider (freelancer).
type Resource struct {
	ResourceID            string    `json:"resourceid" bson:"resourceid"`
	Title                 string    `json:"title" bson:"title"`
	Category              string    `json:"category" bson:"category"`
	Price                 float64   `json:"price" bson:"price"`
	AllowMultipleBookings bool      `json:"allowMultipleBookings" bson:"allowMultipleBookings"`
	SlotMinutes           int       `json:"slotMinutes,omitempty" bson:"slotMinutes,omitempty"`
	OwnerID               string    `json:"ownerId" bson:"ownerId"`
	Contact               string    `json:"contact,omitempty" bson:"contact,omitempty"`
	CreatedAt             time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt" bson:"updatedAt"`
}
