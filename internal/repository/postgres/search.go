package postgres

import (
	"context"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
)

// SearchTutors finds tutors whose full name contains the search string,
// case-insensitive, matching both "first last" and "last first" orders.
func (s *Storage) SearchTutors(ctx context.Context, name string) ([]domain.Tutor, error) {
	const query = `
		SELECT u.user_id, u.first_name, u.last_name, u.email, u.description, u.university_id, u.created_at,
		       COALESCE(AVG(tr.points), 0)
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.user_id
		JOIN roles r ON r.role_id = ur.role_id
		LEFT JOIN tutor_ratings tr ON tr.tutor_id = u.user_id
		WHERE r.role_name = 'TUTOR'
		  AND (LOWER(u.first_name || ' ' || u.last_name) LIKE LOWER('%' || $1 || '%')
		   OR  LOWER(u.last_name || ' ' || u.first_name) LIKE LOWER('%' || $1 || '%'))
		GROUP BY u.user_id
		ORDER BY u.last_name, u.first_name;
	`

	rows, err := s.pool.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tutors []domain.Tutor
	for rows.Next() {
		var t domain.Tutor
		err := rows.Scan(
			&t.ID, &t.FirstName, &t.LastName, &t.Email,
			&t.Description, &t.UniversityID, &t.CreatedAt,
			&t.AverageRating,
		)
		if err != nil {
			return nil, err
		}
		t.Roles = []string{domain.RoleTutor}
		tutors = append(tutors, t)
	}

	return tutors, rows.Err()
}

func (s *Storage) SearchCoursesByName(ctx context.Context, name string) ([]domain.CourseWithRating, error) {
	const query = `
		SELECT c.course_id, c.course_name, c.tutor_id, c.description_short, c.description_long,
		       c.start_date, c.end_date, c.created_on,
		       u.first_name || ' ' || u.last_name,
		       COALESCE(AVG(r.points), 0)
		FROM course c
		JOIN users u ON u.user_id = c.tutor_id
		LEFT JOIN course_ratings r ON r.course_id = c.course_id
		WHERE LOWER(c.course_name) LIKE LOWER('%' || $1 || '%')
		GROUP BY c.course_id, u.first_name, u.last_name
		ORDER BY c.course_name;
	`

	return s.queryCourses(ctx, query, name)
}

func (s *Storage) SearchCoursesByTutorName(ctx context.Context, tutorName string) ([]domain.CourseWithRating, error) {
	const query = `
		SELECT c.course_id, c.course_name, c.tutor_id, c.description_short, c.description_long,
		       c.start_date, c.end_date, c.created_on,
		       u.first_name || ' ' || u.last_name,
		       COALESCE(AVG(r.points), 0)
		FROM course c
		JOIN users u ON u.user_id = c.tutor_id
		LEFT JOIN course_ratings r ON r.course_id = c.course_id
		WHERE LOWER(u.first_name || ' ' || u.last_name) LIKE LOWER('%' || $1 || '%')
		   OR LOWER(u.last_name || ' ' || u.first_name) LIKE LOWER('%' || $1 || '%')
		GROUP BY c.course_id, u.first_name, u.last_name
		ORDER BY c.course_name;
	`

	return s.queryCourses(ctx, query, tutorName)
}
