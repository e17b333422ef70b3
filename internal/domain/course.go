package domain

import "time"

type Course struct {
	ID               int        `db:"course_id" json:"id"`
	CourseName       string     `db:"course_name" json:"course_name"`
	TutorID          int        `db:"tutor_id" json:"tutor_id"`
	DescriptionShort string     `db:"description_short" json:"description_short"`
	DescriptionLong  *string    `db:"description_long" json:"description_long"`
	StartDate        *time.Time `db:"start_date" json:"start_date"`
	EndDate          *time.Time `db:"end_date" json:"end_date"`
	CreatedOn        time.Time  `db:"created_on" json:"created_on"`
}

type CourseWithRating struct {
	Course
	TutorName     string   `json:"tutor_name"`
	AverageRating float64  `json:"average_rating"`
	Categories    []string `json:"categories,omitempty"`
}

type CreateCourseRequest struct {
	CourseName       string     `json:"course_name" validate:"required"`
	DescriptionShort string     `json:"description_short" validate:"required"`
	DescriptionLong  *string    `json:"description_long"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	CategoryIDs      []int      `json:"category_ids"`
}

type Category struct {
	ID        int       `db:"category_id" json:"id"`
	Name      string    `db:"category_name" json:"name"`
	CreatedOn time.Time `db:"created_on" json:"created_on"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}
