package postgres

import (
	"context"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/utils"
)

func (s *Storage) CreateCourse(ctx context.Context, tutorID int, req *domain.CreateCourseRequest) (*domain.Course, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// course names are unique; a duplicate surfaces as ErrAlreadyExists
	const insertCourse = `
		INSERT INTO course (course_name, tutor_id, description_short, description_long, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING course_id, course_name, tutor_id, description_short, description_long, start_date, end_date, created_on;
	`

	var course domain.Course
	err = tx.QueryRow(ctx, insertCourse,
		req.CourseName, tutorID, req.DescriptionShort, req.DescriptionLong, req.StartDate, req.EndDate,
	).Scan(
		&course.ID, &course.CourseName, &course.TutorID, &course.DescriptionShort,
		&course.DescriptionLong, &course.StartDate, &course.EndDate, &course.CreatedOn,
	)
	if err != nil {
		return nil, translateError(err)
	}

	const linkCategory = `
		INSERT INTO course_categories (course_id, category_id) VALUES ($1, $2);
	`
	for _, categoryID := range req.CategoryIDs {
		if _, err := tx.Exec(ctx, linkCategory, course.ID, categoryID); err != nil {
			return nil, translateError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &course, nil
}

func (s *Storage) GetCourseByID(ctx context.Context, id int) (*domain.CourseWithRating, error) {
	const query = `
		SELECT c.course_id, c.course_name, c.tutor_id, c.description_short, c.description_long,
		       c.start_date, c.end_date, c.created_on,
		       u.first_name || ' ' || u.last_name,
		       COALESCE(AVG(r.points), 0)
		FROM course c
		JOIN users u ON u.user_id = c.tutor_id
		LEFT JOIN course_ratings r ON r.course_id = c.course_id
		WHERE c.course_id = $1
		GROUP BY c.course_id, u.first_name, u.last_name;
	`

	var course domain.CourseWithRating
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&course.ID, &course.CourseName, &course.TutorID, &course.DescriptionShort,
		&course.DescriptionLong, &course.StartDate, &course.EndDate, &course.CreatedOn,
		&course.TutorName, &course.AverageRating,
	)
	if err != nil {
		return nil, translateError(err)
	}

	course.Categories, err = s.courseCategories(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (s *Storage) ListCourses(ctx context.Context) ([]domain.CourseWithRating, error) {
	const query = `
		SELECT c.course_id, c.course_name, c.tutor_id, c.description_short, c.description_long,
		       c.start_date, c.end_date, c.created_on,
		       u.first_name || ' ' || u.last_name,
		       COALESCE(AVG(r.points), 0)
		FROM course c
		JOIN users u ON u.user_id = c.tutor_id
		LEFT JOIN course_ratings r ON r.course_id = c.course_id
		GROUP BY c.course_id, u.first_name, u.last_name
		ORDER BY c.course_name;
	`

	return s.queryCourses(ctx, query)
}

func (s *Storage) ListCoursesByCategory(ctx context.Context, categoryName string) ([]domain.CourseWithRating, error) {
	const query = `
		SELECT c.course_id, c.course_name, c.tutor_id, c.description_short, c.description_long,
		       c.start_date, c.end_date, c.created_on,
		       u.first_name || ' ' || u.last_name,
		       COALESCE(AVG(r.points), 0)
		FROM course c
		JOIN users u ON u.user_id = c.tutor_id
		JOIN course_categories cc ON cc.course_id = c.course_id
		JOIN categories cat ON cat.category_id = cc.category_id
		LEFT JOIN course_ratings r ON r.course_id = c.course_id
		WHERE LOWER(cat.category_name) = LOWER($1)
		GROUP BY c.course_id, u.first_name, u.last_name
		ORDER BY c.course_name;
	`

	return s.queryCourses(ctx, query, categoryName)
}

func (s *Storage) UpdateCourse(ctx context.Context, id int, req *domain.CreateCourseRequest) (*domain.Course, error) {
	const query = `
		UPDATE course
		SET course_name = $1, description_short = $2, description_long = $3, start_date = $4, end_date = $5
		WHERE course_id = $6
		RETURNING course_id, course_name, tutor_id, description_short, description_long, start_date, end_date, created_on;
	`

	var course domain.Course
	err := s.pool.QueryRow(ctx, query,
		req.CourseName, req.DescriptionShort, req.DescriptionLong, req.StartDate, req.EndDate, id,
	).Scan(
		&course.ID, &course.CourseName, &course.TutorID, &course.DescriptionShort,
		&course.DescriptionLong, &course.StartDate, &course.EndDate, &course.CreatedOn,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &course, nil
}

// DeleteCourse removes the course; its meetings, enrollments, ratings and
// category links cascade at the schema level.
func (s *Storage) DeleteCourse(ctx context.Context, id int) error {
	const query = `DELETE FROM course WHERE course_id = $1;`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}

	return nil
}

func (s *Storage) CountCourses(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM course;`).Scan(&count)
	return count, err
}

func (s *Storage) EnrollStudent(ctx context.Context, studentID, courseID int) error {
	const query = `
		INSERT INTO course_enrollments (student_id, course_id)
		VALUES ($1, $2);
	`

	_, err := s.pool.Exec(ctx, query, studentID, courseID)
	return translateError(err)
}

func (s *Storage) queryCourses(ctx context.Context, query string, args ...any) ([]domain.CourseWithRating, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.CourseWithRating
	for rows.Next() {
		var c domain.CourseWithRating
		err := rows.Scan(
			&c.ID, &c.CourseName, &c.TutorID, &c.DescriptionShort,
			&c.DescriptionLong, &c.StartDate, &c.EndDate, &c.CreatedOn,
			&c.TutorName, &c.AverageRating,
		)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

func (s *Storage) courseCategories(ctx context.Context, courseID int) ([]string, error) {
	const query = `
		SELECT cat.category_name
		FROM categories cat
		JOIN course_categories cc ON cc.category_id = cat.category_id
		WHERE cc.course_id = $1
		ORDER BY cat.category_name;
	`

	rows, err := s.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
