package domain

import "time"

const (
	MeetingOnline  = "ONLINE"
	MeetingOffline = "OFFLINE"
)

// Meeting is a tutoring session at a specific room and address. The
// meeting table additionally carries a generated time_range column that
// backs the room- and tutor-exclusion constraints; it is never written
// by application code.
type Meeting struct {
	ID          int       `db:"meeting_id" json:"id"`
	CreatedBy   int       `db:"created_by" json:"created_by"`
	CourseID    *int      `db:"course_id" json:"course_id"`
	AddressID   int       `db:"address_id" json:"address_id"`
	RoomNumber  int       `db:"room_number" json:"room_number"`
	MeetingType string    `db:"meeting_type" json:"meeting_type"`
	MeetingDate time.Time `db:"meeting_date" json:"meeting_date"`
	StartTime   time.Time `db:"meeting_start_time" json:"start_time"`
	EndTime     time.Time `db:"meeting_end_time" json:"end_time"`
	Link        *string   `db:"meeting_link" json:"link"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type ScheduleMeetingRequest struct {
	CourseID    *int      `json:"course_id"`
	AddressID   int       `json:"address_id" validate:"required"`
	RoomNumber  int       `json:"room_number" validate:"required,min=1"`
	MeetingType string    `json:"meeting_type" validate:"required,oneof=ONLINE OFFLINE"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Link        *string   `json:"link"`
}
