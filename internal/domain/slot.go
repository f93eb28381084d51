package domain

// TechnicianSlots is the availability of one technician for a date and period
type TechnicianSlots struct {
	Technician Technician
	DayType    DayType
	Capacity   int // slots of the applicable pool
	Used       int // slots consumed by non-closed bookings
	Remaining  int // max(0, Capacity-Used)
}

// IsFull returns true if the technician has no remaining slots
func (s *TechnicianSlots) IsFull() bool {
	return s.Remaining <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *TechnicianSlots) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	occupied := s.Capacity - s.Remaining
	return float64(occupied) / float64(s.Capacity) * 100
}
