package model

import "time"

// StatusEvent records a status observed for a review. Consecutive events for
// the same review always carry different statuses.
type StatusEvent struct {
	ID         int64
	ReviewID   string
	Status     string
	ObservedAt time.Time
}
