package domain

import "time"

type CourseRating struct {
	ID        int       `db:"rating_id" json:"id"`
	StudentID int       `db:"student_id" json:"student_id"`
	CourseID  int       `db:"course_id" json:"course_id"`
	Points    float64   `db:"points" json:"points"`
	Review    *string   `db:"review" json:"review"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type TutorRating struct {
	ID        int       `db:"rating_id" json:"id"`
	StudentID int       `db:"student_id" json:"student_id"`
	TutorID   int       `db:"tutor_id" json:"tutor_id"`
	Points    float64   `db:"points" json:"points"`
	Review    *string   `db:"review" json:"review"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type RateRequest struct {
	Points float64 `json:"points" validate:"required,min=1,max=5"`
	Review *string `json:"review"`
}
