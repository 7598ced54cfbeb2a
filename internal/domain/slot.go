package domain

import "github.com/m04kA/SMC-CeramicsBooking/pkg/types"

// BlockedReason explains why a candidate time cannot be booked
type BlockedReason string

const (
	ReasonNone               BlockedReason = "none"
	ReasonFixedClassConflict BlockedReason = "fixed_class_conflict"
	ReasonBookingOverlap     BlockedReason = "booking_overlap"
	ReasonCapacity           BlockedReason = "capacity"
)

// SlotAvailability is the decision for one candidate time
type SlotAvailability struct {
	Time           types.TimeString
	CanBook        bool
	BlockedReason  BlockedReason
	BookedCount    int
	AvailableCount int
}

// IsFull returns true if no seats are left
func (s *SlotAvailability) IsFull() bool {
	return s.AvailableCount <= 0
}

// IsBlocked returns true if a rule other than raw capacity rejected the time
func (s *SlotAvailability) IsBlocked() bool {
	return s.BlockedReason != ReasonNone && s.BlockedReason != ReasonCapacity
}
