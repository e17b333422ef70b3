package postgres

import (
	"context"
	"errors"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	pool *pgxpool.Pool
}

// NewConnection returns *Storage so the pool is shared
func NewConnection(connString string) (*Storage, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	return &Storage{
		pool: pool,
	}, nil
}

// Close closes the database connection pool
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping verifies the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const (
	pgUniqueViolation    = "23505"
	pgForeignKeyMissing  = "23503"
	pgCheckViolation     = "23514"
	pgExclusionViolation = "23P01"
)

// translateError maps Postgres constraint violations onto the domain
// sentinels in utils. Exclusion violations are distinguished by the
// constraint that fired, so the caller can tell a busy room from a busy
// tutor without parsing error text.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return utils.ErrAlreadyExists
	case pgForeignKeyMissing:
		return utils.ErrNotFound
	case pgExclusionViolation:
		switch pgErr.ConstraintName {
		case constraintRoomOverlap:
			return utils.ErrRoomOccupied
		case constraintTutorOverlap:
			return utils.ErrTutorBusy
		}
		return err
	case pgCheckViolation:
		switch pgErr.ConstraintName {
		case constraintSameDay:
			return utils.ErrMeetingCrossesMidnight
		case constraintDateLimit:
			return utils.ErrMeetingTooFarAhead
		}
		return err
	}

	return err
}
