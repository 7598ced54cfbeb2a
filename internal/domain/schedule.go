package domain

import (
	"strings"
	"time"
)

// SlotDefinition is one recurring fixed class in the weekly schedule
type SlotDefinition struct {
	Time      string
	Technique Technique
}

// WeeklyAvailability maps a lower-case English weekday name to its fixed classes
type WeeklyAvailability map[string][]SlotDefinition

// ScheduleOverride replaces the weekday schedule for one date.
// Nil Slots means no fixed classes that day.
type ScheduleOverride struct {
	Slots []SlotDefinition
}

// IsClosed returns true if the override removes every fixed class
func (o *ScheduleOverride) IsClosed() bool {
	return o == nil || o.Slots == nil
}

// ScheduleOverrides maps a YYYY-MM-DD date to its override.
// A present key with a nil value also means no fixed classes that day.
type ScheduleOverrides map[string]*ScheduleOverride

// Weekdays lists valid WeeklyAvailability keys
var Weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// WeekdayKey returns the WeeklyAvailability key for a date
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// IsValidWeekday returns true if key is a known weekday name
func IsValidWeekday(key string) bool {
	for _, d := range Weekdays {
		if d == key {
			return true
		}
	}
	return false
}

// CapacityConfig holds total seats per technique
type CapacityConfig struct {
	PottersWheel int
	HandModeling int
	Painting     int
}

// DefaultCapacity returns the studio's standard seat counts
func DefaultCapacity() CapacityConfig {
	return CapacityConfig{
		PottersWheel: DefaultPottersWheelCapacity,
		HandModeling: DefaultHandModelingCapacity,
		Painting:     DefaultPaintingCapacity,
	}
}

// For returns the total seats for a technique, 0 for unknown ones
func (c CapacityConfig) For(t Technique) int {
	switch t {
	case TechniquePottersWheel:
		return c.PottersWheel
	case TechniqueHandModeling:
		return c.HandModeling
	case TechniquePainting:
		return c.Painting
	}
	return 0
}
