package usecase

import (
	"strings"
	"time"
)

// Scheduling accepts either a fully-qualified RFC3339 timestamp or the
// timezone-naive form the frontend's datetime-local input emits
// (YYYY-MM-DDTHH:mm). The naive form gets :00 seconds appended and is read in
// the server's local timezone.
const datetimeLocalLayout = "2006-01-02T15:04:05"

func ParseScheduledAt(value string) (time.Time, error) {
	if isDatetimeLocal(value) {
		return time.ParseInLocation(datetimeLocalLayout, value+":00", time.Local)
	}
	return time.Parse(time.RFC3339, value)
}

func isDatetimeLocal(value string) bool {
	// YYYY-MM-DDTHH:mm exactly: 16 chars, one 'T', no zone suffix.
	if len(value) != 16 {
		return false
	}
	if value[10] != 'T' {
		return false
	}
	return !strings.ContainsAny(value[11:], "Z+-")
}
