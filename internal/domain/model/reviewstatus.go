package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ReviewStatus is the lifecycle state of a code review as reported by the backend.
// The set is open-ended; only the values below carry presentation rules.
type ReviewStatus string

const (
	ReviewStatusPending    ReviewStatus = "pending"
	ReviewStatusStarted    ReviewStatus = "started"
	ReviewStatusInProgress ReviewStatus = "in_progress"
	ReviewStatusCompleted  ReviewStatus = "completed"
	ReviewStatusFailed     ReviewStatus = "failed"
)

// Tag classes for the GOV.UK status tag.
const (
	TagClassBase  = "govuk-tag"
	TagClassRed   = "govuk-tag--red"
	TagClassGreen = "govuk-tag--green"
	TagClassBlue  = "govuk-tag--blue"
)

// pollableStatuses are the displayed (formatted, lower-cased) statuses that are
// still expected to change.
var pollableStatuses = map[string]struct{}{
	"pending":     {},
	"in progress": {},
	"started":     {},
}

// NeedsPolling reports whether a displayed status is still in flight. The match
// is case-insensitive and ignores surrounding whitespace.
func NeedsPolling(status string) bool {
	_, ok := pollableStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// FormatStatus turns a raw backend status into display text: the first
// underscore becomes a space and only the first character is upper-cased.
// Only one underscore is replaced per call, so formatting the output again
// changes statuses that contain more than one.
func FormatStatus(status string) string {
	formatted := strings.Replace(status, "_", " ", 1)
	r, size := utf8.DecodeRuneInString(formatted)
	if size == 0 || r == utf8.RuneError {
		return formatted
	}
	return string(unicode.ToUpper(r)) + formatted[size:]
}

// StatusAriaLabel returns the accessibility label announced for a status tag.
func StatusAriaLabel(status string) string {
	return "Review status: " + FormatStatus(status)
}

// StatusTagModifier returns the colour modifier class for a raw status.
func StatusTagModifier(status string) string {
	switch ReviewStatus(status) {
	case ReviewStatusFailed:
		return TagClassRed
	case ReviewStatusCompleted:
		return TagClassGreen
	default:
		return TagClassBlue
	}
}

// StatusTagClass returns the full class attribute for a status tag. The base
// class is always first so prior modifiers never survive an update.
func StatusTagClass(status string) string {
	return TagClassBase + " " + StatusTagModifier(status)
}

// ReviewStatusSnapshot is the payload of the status endpoint.
type ReviewStatusSnapshot struct {
	ID     string
	Status string
}
