package domain

// Resolver rules
const (
	// PrivateBookingThreshold is the participant count from which a booking
	// may be placed outside fixed-class times
	PrivateBookingThreshold = 3

	// ProtectionWindowMinutes surrounds every fixed class and booking
	ProtectionWindowMinutes = 120
)

// Default capacities
const (
	DefaultPottersWheelCapacity = 8
	DefaultHandModelingCapacity = 14
	DefaultPaintingCapacity     = 14
)

// Business validation constants
const (
	MinParticipants             = 1
	MaxParticipants             = 30
	MaxSlotsPerBooking          = 12
	MaxCustomerNameLength       = 200
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxAdvanceBookingDays       = 365
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Settings keys
const (
	SettingsKeyAvailability      = "availability"
	SettingsKeyScheduleOverrides = "scheduleOverrides"
)

// InactiveStatuses список статусов, которые не занимают места
var InactiveStatuses = []BookingStatus{
	StatusExpired,
	StatusCancelled,
}
