package postgres

import (
	"context"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
)

// RateCourse records a student's rating for a course. A student holds at
// most one rating per course; rating again overwrites the previous one.
func (s *Storage) RateCourse(ctx context.Context, studentID, courseID int, req *domain.RateRequest) (*domain.CourseRating, error) {
	const query = `
		INSERT INTO course_ratings (student_id, course_id, points, review)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, course_id)
		DO UPDATE SET points = EXCLUDED.points, review = EXCLUDED.review
		RETURNING rating_id, student_id, course_id, points, review, created_at;
	`

	var rating domain.CourseRating
	err := s.pool.QueryRow(ctx, query, studentID, courseID, req.Points, req.Review).Scan(
		&rating.ID, &rating.StudentID, &rating.CourseID,
		&rating.Points, &rating.Review, &rating.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &rating, nil
}

func (s *Storage) RateTutor(ctx context.Context, studentID, tutorID int, req *domain.RateRequest) (*domain.TutorRating, error) {
	const query = `
		INSERT INTO tutor_ratings (student_id, tutor_id, points, review)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, tutor_id)
		DO UPDATE SET points = EXCLUDED.points, review = EXCLUDED.review
		RETURNING rating_id, student_id, tutor_id, points, review, created_at;
	`

	var rating domain.TutorRating
	err := s.pool.QueryRow(ctx, query, studentID, tutorID, req.Points, req.Review).Scan(
		&rating.ID, &rating.StudentID, &rating.TutorID,
		&rating.Points, &rating.Review, &rating.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &rating, nil
}

func (s *Storage) AverageTutorRating(ctx context.Context, tutorID int) (float64, error) {
	const query = `
		SELECT COALESCE(AVG(points), 0) FROM tutor_ratings WHERE tutor_id = $1;
	`

	var avg float64
	err := s.pool.QueryRow(ctx, query, tutorID).Scan(&avg)
	return avg, err
}
