package obituary

import "time"

// CalculateAge returns full elapsed years between birth and death. The second
// result is false when either date is missing or the age is not positive.
func CalculateAge(birth, death time.Time) (int, bool) {
	if birth.IsZero() || death.IsZero() {
		return 0, false
	}
	age := death.Year() - birth.Year()
	if death.Month() < birth.Month() || (death.Month() == birth.Month() && death.Day() < birth.Day()) {
		age--
	}
	if age <= 0 {
		return 0, false
	}
	return age, true
}
