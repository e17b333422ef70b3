package postgres

import (
	"context"
	"fmt"
)

// Constraint names on the meeting table. translateError keys on these,
// so renaming one here must be mirrored there.
const (
	constraintRoomOverlap  = "no_overlapping_meetings"
	constraintTutorOverlap = "no_tutor_overlapping_meetings"
	constraintSameDay      = "no_cross_day_meetings"
	constraintDateLimit    = "meeting_date_limit"
)

// meetingConstraintStmts rebuilds the generated time_range column and the
// four scheduling invariants from scratch. Drop-then-add keeps the
// bootstrap idempotent and lets the interval definition evolve without
// hand-written migrations; the base schema itself stays with the
// migrator.
var meetingConstraintStmts = []string{
	// tsrange equality/overlap in a GiST index needs btree_gist
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,

	`ALTER TABLE meeting DROP COLUMN IF EXISTS time_range`,

	// closed-open interval [start, end), so back-to-back meetings in the
	// same room do not conflict
	`ALTER TABLE meeting
		ADD COLUMN time_range tsrange
		GENERATED ALWAYS AS (tsrange(meeting_start_time, meeting_end_time)) STORED`,

	`CREATE INDEX IF NOT EXISTS idx_meeting_room_gist
		ON meeting USING gist (room_number, address_id)`,

	`ALTER TABLE meeting DROP CONSTRAINT IF EXISTS ` + constraintRoomOverlap,
	`ALTER TABLE meeting DROP CONSTRAINT IF EXISTS ` + constraintTutorOverlap,
	`ALTER TABLE meeting DROP CONSTRAINT IF EXISTS ` + constraintSameDay,
	`ALTER TABLE meeting DROP CONSTRAINT IF EXISTS ` + constraintDateLimit,

	// no two meetings may overlap in the same room at the same address
	`ALTER TABLE meeting
		ADD CONSTRAINT ` + constraintRoomOverlap + `
		EXCLUDE USING gist (time_range WITH &&, room_number WITH =, address_id WITH =)`,

	// a tutor cannot hold two overlapping meetings, regardless of room
	`ALTER TABLE meeting
		ADD CONSTRAINT ` + constraintTutorOverlap + `
		EXCLUDE USING gist (time_range WITH &&, created_by WITH =)`,

	// meetings must start and end on the same calendar day
	`ALTER TABLE meeting
		ADD CONSTRAINT ` + constraintSameDay + `
		CHECK (meeting_start_time::date = meeting_end_time::date)`,

	// meetings cannot be scheduled more than a year out
	`ALTER TABLE meeting
		ADD CONSTRAINT ` + constraintDateLimit + `
		CHECK (meeting_date <= CURRENT_DATE + INTERVAL '1 year')`,
}

// ApplyMeetingConstraints installs the scheduling invariants on the
// meeting table. It is safe to run on every process start: each statement
// either creates from a clean slate or drops what a previous run left
// behind. Conflict detection itself happens inside the insert/update
// transaction, so concurrent bookings need no application-level locking.
//
// The returned string is a human-readable outcome for startup logs. On
// error the schema may be left without enforcement; the caller decides
// whether that is fatal.
func (s *Storage) ApplyMeetingConstraints(ctx context.Context) (string, error) {
	for _, stmt := range meetingConstraintStmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Sprintf("applying meeting constraints: %v", err), fmt.Errorf("apply meeting constraints: %w", err)
		}
	}
	return "meeting scheduling constraints applied successfully", nil
}
