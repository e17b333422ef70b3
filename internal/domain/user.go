package domain

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleVerifier = "VERIFIER"
	RoleTutor    = "TUTOR"
	RoleStudent  = "STUDENT"
)

type User struct {
	ID           int       `db:"user_id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Description  *string   `db:"description" json:"description"`
	UniversityID *int      `db:"university_id" json:"university_id"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=STUDENT TUTOR"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateUserRequest struct {
	FirstName    string  `json:"first_name" validate:"required"`
	LastName     string  `json:"last_name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Description  *string `json:"description"`
	UniversityID *int    `json:"university_id"`
}

// Tutor is a user projection returned by tutor search, carrying the
// average rating received from students.
type Tutor struct {
	User
	AverageRating float64 `json:"average_rating"`
}

type Stats struct {
	Students int64 `json:"students"`
	Tutors   int64 `json:"tutors"`
	Courses  int64 `json:"courses"`
}
