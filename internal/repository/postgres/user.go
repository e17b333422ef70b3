package postgres

import (
	"context"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/utils"
)

func (s *Storage) CreateUser(ctx context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertUser = `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, first_name, last_name, email, description, university_id, created_at;
	`

	var user domain.User
	err = tx.QueryRow(ctx, insertUser,
		req.FirstName, req.LastName, req.Email, passwordHash,
	).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.Description, &user.UniversityID, &user.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	const linkRole = `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, role_id FROM roles WHERE role_name = $2;
	`
	if _, err := tx.Exec(ctx, linkRole, user.ID, req.Role); err != nil {
		return nil, translateError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	user.Roles = []string{req.Role}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
		SELECT user_id, first_name, last_name, email, password_hash, description, university_id, created_at
		FROM users WHERE email = $1;
	`

	var user domain.User
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.Description, &user.UniversityID, &user.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	user.Roles, err = s.userRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	const query = `
		SELECT user_id, first_name, last_name, email, description, university_id, created_at
		FROM users WHERE user_id = $1;
	`

	var user domain.User
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.Description, &user.UniversityID, &user.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	user.Roles, err = s.userRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Storage) UpdateUser(ctx context.Context, id int, req *domain.UpdateUserRequest) (*domain.User, error) {
	const query = `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, description = $4, university_id = $5
		WHERE user_id = $6
		RETURNING user_id, first_name, last_name, email, description, university_id, created_at;
	`

	var user domain.User
	err := s.pool.QueryRow(ctx, query,
		req.FirstName, req.LastName, req.Email, req.Description, req.UniversityID, id,
	).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.Description, &user.UniversityID, &user.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	user.Roles, err = s.userRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes the user row; courses, meetings, enrollments and
// ratings owned by the user go with it via ON DELETE CASCADE.
func (s *Storage) DeleteUser(ctx context.Context, id int) error {
	const query = `DELETE FROM users WHERE user_id = $1;`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}

	return nil
}

func (s *Storage) CountByRole(ctx context.Context, role string) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.user_id
		JOIN roles r ON r.role_id = ur.role_id
		WHERE r.role_name = $1;
	`

	var count int64
	err := s.pool.QueryRow(ctx, query, role).Scan(&count)
	return count, err
}

func (s *Storage) userRoles(ctx context.Context, userID int) ([]string, error) {
	const query = `
		SELECT r.role_name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.role_id
		WHERE ur.user_id = $1
		ORDER BY r.role_name;
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}
