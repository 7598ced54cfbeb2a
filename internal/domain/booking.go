package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusExpired   BookingStatus = "expired"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true if s is a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// BookingSlot is one date/time the booking occupies.
// Values keep the raw strings they were stored with.
type BookingSlot struct {
	Date string
	Time string
}

// ProductDetails carries optional product metadata
type ProductDetails struct {
	Technique *Technique
}

// Product describes what was booked
type Product struct {
	Type    ProductType
	Name    string
	Details ProductDetails
}

// ParticipantTechnique assigns a technique to one participant of a group class
type ParticipantTechnique struct {
	ParticipantNumber int
	Technique         Technique
}

// Booking represents one customer's reservation
type Booking struct {
	ID        int64
	Reference string

	Product              Product
	Technique            *Technique // resolved once at creation, nil for legacy rows
	ParticipantCount     int
	Slots                []BookingSlot
	TechniqueAssignments []ParticipantTechnique

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string

	Status             BookingStatus
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds seats
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusActive
}

// HasSlotOn returns true if any of the booking's slots falls on date (YYYY-MM-DD)
func (b *Booking) HasSlotOn(date string) bool {
	for _, s := range b.Slots {
		if s.Date == date {
			return true
		}
	}
	return false
}

// LastDate returns the latest slot date, or false when no slot date parses
func (b *Booking) LastDate() (time.Time, bool) {
	var (
		last  time.Time
		found bool
	)
	for _, s := range b.Slots {
		d, err := time.Parse(DateFormat, s.Date)
		if err != nil {
			continue
		}
		if !found || d.After(last) {
			last = d
			found = true
		}
	}
	return last, found
}

// BookingsFilter фильтр для получения бронирований на дату
type BookingsFilter struct {
	Date            *time.Time     // Дата слота (опционально, если nil - все даты)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, истекшие)
}
