// Package age measures how long tasks stay open.
package age

import "time"

// Open returns how long a task has been open: from creation to completion
// when doneAt is set, from creation to now otherwise. It reports false when
// the creation time is unknown.
func Open(createdAt time.Time, doneAt *time.Time, now time.Time) (time.Duration, bool) {
	if createdAt.IsZero() {
		return 0, false
	}
	if doneAt != nil && !doneAt.IsZero() {
		return doneAt.Sub(createdAt), true
	}
	return now.Sub(createdAt), true
}
