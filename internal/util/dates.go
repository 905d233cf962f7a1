package util

import "time"

// IsWeekend reporta si la fecha cae sábado o domingo.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}
