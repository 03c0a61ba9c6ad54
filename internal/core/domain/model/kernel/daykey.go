package kernel

import (
	"time"
)

// DefaultBusinessOffset is India Standard Time, the store's trading timezone.
const DefaultBusinessOffset = 5*time.Hour + 30*time.Minute

const dayKeyLayout = "20060102"

// BusinessClock converts instants to the store's calendar. Order numbers reset
// at business-local midnight, not at UTC midnight.
type BusinessClock struct {
	zone *time.Location
}

// NewBusinessClock builds a clock for a fixed UTC offset.
func NewBusinessClock(offset time.Duration) BusinessClock {
	return BusinessClock{zone: time.FixedZone("business", int(offset/time.Second))}
}

// DayKey returns the YYYYMMDD key of the business-local date containing t.
func (c BusinessClock) DayKey(t time.Time) string {
	zone := c.zone
	if zone == nil {
		zone = time.FixedZone("business", int(DefaultBusinessOffset/time.Second))
	}
	return t.In(zone).Format(dayKeyLayout)
}
