package domain

// Price computes the total price of a booking interval at the given
// hourly rate. Fractional hours are charged exactly, without rounding:
// a 90-minute booking at rate R costs 1.5 * R.
func Price(r TimeRange, hourlyRate float64) float64 {
	return r.Duration().Hours() * hourlyRate
}
