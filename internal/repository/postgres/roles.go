package postgres

import (
	"context"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
)

// EnsureRoles seeds the fixed role set on startup. Inserting with
// ON CONFLICT DO NOTHING keeps the call idempotent across restarts.
func (s *Storage) EnsureRoles(ctx context.Context) error {
	const query = `
		INSERT INTO roles (role_name)
		VALUES ($1)
		ON CONFLICT (role_name) DO NOTHING;
	`

	roles := []string{domain.RoleAdmin, domain.RoleVerifier, domain.RoleTutor, domain.RoleStudent}
	for _, role := range roles {
		if _, err := s.pool.Exec(ctx, query, role); err != nil {
			return err
		}
	}

	return nil
}
