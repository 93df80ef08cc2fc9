package domain

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// SlotOccupancy headcount booked at an exact date+time against the global capacity
// Bookings at other times of the same day are not counted even if their services overlap
type SlotOccupancy struct {
	Date     time.Time
	Time     types.TimeString
	Occupied int
	Capacity int
}

// Remaining free places (may be negative after a forced admission)
func (s *SlotOccupancy) Remaining() int {
	return s.Capacity - s.Occupied
}

// IsFull returns true if the slot has no free places
func (s *SlotOccupancy) IsFull() bool {
	return s.Remaining() <= 0
}

// WouldExceed true if adding people exceeds capacity
func (s *SlotOccupancy) WouldExceed(people int) bool {
	return s.Occupied+people > s.Capacity
}

// OccupancyRate returns the occupancy rate as a percentage
func (s *SlotOccupancy) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Occupied) / float64(s.Capacity) * 100
}

// Override reason an admission check was bypassed by force
type Override string

const (
	OverrideNotAvailable      Override = "not_available"
	OverrideConstraintBlocked Override = "constraint_blocked"
	OverrideCapacityExceeded  Override = "capacity_exceeded"
)

// Admission result of the admission check
type Admission struct {
	Accepted  bool
	Forced    bool
	Overrides []Override // checks that failed but were bypassed by force
	Occupancy SlotOccupancy
	Range     *TimeRange // availability range containing the time
}

// Overridden true if the booking was accepted despite failed checks
func (a *Admission) Overridden() bool {
	return len(a.Overrides) > 0
}
