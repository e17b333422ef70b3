package postgres

import (
	"context"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/utils"
)

// ScheduleMeeting inserts a meeting without any prior overlap check: the
// exclusion constraints validate the booking inside the insert's own
// transaction, so two concurrent requests for the same slot cannot both
// succeed. A rejected booking comes back as ErrRoomOccupied, ErrTutorBusy,
// ErrMeetingCrossesMidnight or ErrMeetingTooFarAhead.
func (s *Storage) ScheduleMeeting(ctx context.Context, tutorID int, req *domain.ScheduleMeetingRequest) (*domain.Meeting, error) {
	const query = `
		INSERT INTO meeting (created_by, course_id, address_id, room_number, meeting_type,
		                     meeting_date, meeting_start_time, meeting_end_time, meeting_link)
		VALUES ($1, $2, $3, $4, $5, $6::date, $6, $7, $8)
		RETURNING meeting_id, created_by, course_id, address_id, room_number, meeting_type,
		          meeting_date, meeting_start_time, meeting_end_time, meeting_link, created_at;
	`

	var m domain.Meeting
	err := s.pool.QueryRow(ctx, query,
		tutorID, req.CourseID, req.AddressID, req.RoomNumber, req.MeetingType,
		req.StartTime, req.EndTime, req.Link,
	).Scan(
		&m.ID, &m.CreatedBy, &m.CourseID, &m.AddressID, &m.RoomNumber, &m.MeetingType,
		&m.MeetingDate, &m.StartTime, &m.EndTime, &m.Link, &m.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &m, nil
}

// RescheduleMeeting replaces the time, room and address of an existing
// meeting. The update re-fires all four scheduling constraints, so a move
// into an occupied slot is rejected the same way a fresh booking is.
func (s *Storage) RescheduleMeeting(ctx context.Context, id, tutorID int, req *domain.ScheduleMeetingRequest) (*domain.Meeting, error) {
	const query = `
		UPDATE meeting
		SET course_id = $1, address_id = $2, room_number = $3, meeting_type = $4,
		    meeting_date = $5::date, meeting_start_time = $5, meeting_end_time = $6, meeting_link = $7
		WHERE meeting_id = $8 AND created_by = $9
		RETURNING meeting_id, created_by, course_id, address_id, room_number, meeting_type,
		          meeting_date, meeting_start_time, meeting_end_time, meeting_link, created_at;
	`

	var m domain.Meeting
	err := s.pool.QueryRow(ctx, query,
		req.CourseID, req.AddressID, req.RoomNumber, req.MeetingType,
		req.StartTime, req.EndTime, req.Link, id, tutorID,
	).Scan(
		&m.ID, &m.CreatedBy, &m.CourseID, &m.AddressID, &m.RoomNumber, &m.MeetingType,
		&m.MeetingDate, &m.StartTime, &m.EndTime, &m.Link, &m.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &m, nil
}

func (s *Storage) CancelMeeting(ctx context.Context, id, tutorID int) error {
	const query = `DELETE FROM meeting WHERE meeting_id = $1 AND created_by = $2;`

	tag, err := s.pool.Exec(ctx, query, id, tutorID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}

	return nil
}

func (s *Storage) GetMeetingByID(ctx context.Context, id int) (*domain.Meeting, error) {
	const query = `
		SELECT meeting_id, created_by, course_id, address_id, room_number, meeting_type,
		       meeting_date, meeting_start_time, meeting_end_time, meeting_link, created_at
		FROM meeting WHERE meeting_id = $1;
	`

	var m domain.Meeting
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.CreatedBy, &m.CourseID, &m.AddressID, &m.RoomNumber, &m.MeetingType,
		&m.MeetingDate, &m.StartTime, &m.EndTime, &m.Link, &m.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &m, nil
}

func (s *Storage) ListMeetingsForCourse(ctx context.Context, courseID int) ([]domain.Meeting, error) {
	const query = `
		SELECT meeting_id, created_by, course_id, address_id, room_number, meeting_type,
		       meeting_date, meeting_start_time, meeting_end_time, meeting_link, created_at
		FROM meeting
		WHERE course_id = $1
		ORDER BY meeting_start_time;
	`

	return s.queryMeetings(ctx, query, courseID)
}

func (s *Storage) ListMeetingsForTutor(ctx context.Context, tutorID int) ([]domain.Meeting, error) {
	const query = `
		SELECT meeting_id, created_by, course_id, address_id, room_number, meeting_type,
		       meeting_date, meeting_start_time, meeting_end_time, meeting_link, created_at
		FROM meeting
		WHERE created_by = $1
		ORDER BY meeting_start_time;
	`

	return s.queryMeetings(ctx, query, tutorID)
}

func (s *Storage) queryMeetings(ctx context.Context, query string, args ...any) ([]domain.Meeting, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		var m domain.Meeting
		err := rows.Scan(
			&m.ID, &m.CreatedBy, &m.CourseID, &m.AddressID, &m.RoomNumber, &m.MeetingType,
			&m.MeetingDate, &m.StartTime, &m.EndTime, &m.Link, &m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}

	return meetings, rows.Err()
}
