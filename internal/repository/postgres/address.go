package postgres

import (
	"context"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
)

// CreateUniversityWithAddress creates the address and, if needed, the
// university it belongs to. An existing university of the same name is
// reused rather than duplicated.
func (s *Storage) CreateUniversityWithAddress(ctx context.Context, req *domain.CreateUniversityRequest) (*domain.Address, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const upsertUniversity = `
		INSERT INTO universities (university_name)
		VALUES ($1)
		ON CONFLICT (university_name) DO UPDATE SET university_name = EXCLUDED.university_name
		RETURNING university_id;
	`

	var universityID int
	if err := tx.QueryRow(ctx, upsertUniversity, req.UniversityName).Scan(&universityID); err != nil {
		return nil, translateError(err)
	}

	const insertAddress = `
		INSERT INTO addresses (university_id, campus_name, street, house_number, postal_code, city, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING address_id, university_id, campus_name, street, house_number, postal_code, city, country;
	`

	var address domain.Address
	err = tx.QueryRow(ctx, insertAddress,
		universityID, req.CampusName, req.Street, req.HouseNumber, req.PostalCode, req.City, req.Country,
	).Scan(
		&address.ID, &address.UniversityID, &address.CampusName, &address.Street,
		&address.HouseNumber, &address.PostalCode, &address.City, &address.Country,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &address, nil
}

func (s *Storage) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	const query = `
		SELECT address_id, university_id, campus_name, street, house_number, postal_code, city, country
		FROM addresses
		ORDER BY address_id;
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		err := rows.Scan(
			&a.ID, &a.UniversityID, &a.CampusName, &a.Street,
			&a.HouseNumber, &a.PostalCode, &a.City, &a.Country,
		)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}

	return addresses, rows.Err()
}
