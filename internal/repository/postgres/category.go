package postgres

import (
	"context"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
)

func (s *Storage) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	const query = `
		INSERT INTO categories (category_name)
		VALUES ($1)
		RETURNING category_id, category_name, created_on;
	`

	var category domain.Category
	err := s.pool.QueryRow(ctx, query, name).Scan(&category.ID, &category.Name, &category.CreatedOn)
	if err != nil {
		return nil, translateError(err)
	}

	return &category, nil
}

func (s *Storage) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const query = `
		SELECT category_id, category_name, created_on
		FROM categories
		ORDER BY category_name;
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedOn); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}
