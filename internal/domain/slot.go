package domain

// AvailabilitySlot represents one fixed-granularity candidate interval
// for availability display. Slots are computed on demand and never
// persisted.
type AvailabilitySlot struct {
	Range       TimeRange
	IsAvailable bool
	Price       float64 // Price for the slot at the room's current hourly rate
}
