package domain

import "time"

// Session is a bookable yoga class. TeacherID is empty when the session has
// no assigned teacher. UserIDs are the participants, ordered by signup.
type Session struct {
	ID          string
	Name        string
	Date        time.Time
	Description string
	TeacherID   string
	UserIDs     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
