package attendance

import (
	"fmt"
	"time"
)

const regularHours = 8

// deriveWorkHours formats the worked span as HH:MM with both parts
// floored. Extra hours only start counting past the eighth full hour and
// keep the same minute remainder. Never persisted; recomputed per read.
func deriveWorkHours(checkIn, checkOut *time.Time) (work, extra string) {
	if checkIn == nil || checkOut == nil || checkOut.Before(*checkIn) {
		return "00:00", "00:00"
	}

	diff := checkOut.Sub(*checkIn)
	hours := int(diff / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)

	work = fmt.Sprintf("%02d:%02d", hours, minutes)
	if hours > regularHours {
		extra = fmt.Sprintf("%02d:%02d", hours-regularHours, minutes)
	} else {
		extra = "00:00"
	}
	return work, extra
}
