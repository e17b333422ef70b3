package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/utils"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real database because the invariants under
// test live in the schema, not in Go code. They are skipped when
// DATABASE_URL is not set.
func setupStorage(t *testing.T) *Storage {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	storage, err := NewConnection(dbURL)
	require.NoError(t, err)
	t.Cleanup(storage.Close)

	ctx := context.Background()
	require.NoError(t, storage.EnsureRoles(ctx))

	_, err = storage.ApplyMeetingConstraints(ctx)
	require.NoError(t, err)

	return storage
}

func createTutor(t *testing.T, s *Storage) *domain.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), &domain.RegisterRequest{
		Email:     fmt.Sprintf("tutor_%s", gofakeit.Email()),
		Password:  "irrelevant",
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Role:      domain.RoleTutor,
	}, gofakeit.LetterN(60))
	require.NoError(t, err)

	return user
}

func createAddress(t *testing.T, s *Storage) *domain.Address {
	t.Helper()

	address, err := s.CreateUniversityWithAddress(context.Background(), &domain.CreateUniversityRequest{
		UniversityName: fmt.Sprintf("%s University %s", gofakeit.City(), gofakeit.LetterN(8)),
		Street:         gofakeit.Street(),
		HouseNumber:    "1",
		PostalCode:     gofakeit.Zip(),
		City:           gofakeit.City(),
		Country:        gofakeit.Country(),
	})
	require.NoError(t, err)

	return address
}

// testDay returns midnight of a random day 1-10 months out, inside the
// one-year scheduling window.
func testDay() time.Time {
	day := time.Now().UTC().AddDate(0, 0, gofakeit.Number(30, 300))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

func meetingAt(addressID, room int, start, end time.Time) *domain.ScheduleMeetingRequest {
	return &domain.ScheduleMeetingRequest{
		AddressID:   addressID,
		RoomNumber:  room,
		MeetingType: domain.MeetingOffline,
		StartTime:   start,
		EndTime:     end,
	}
}

func TestApplyMeetingConstraints_Idempotent(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	first, err := storage.ApplyMeetingConstraints(ctx)
	require.NoError(t, err)

	second, err := storage.ApplyMeetingConstraints(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScheduleMeeting_RoomExclusion(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	tutor1 := createTutor(t, storage)
	tutor2 := createTutor(t, storage)
	address := createAddress(t, storage)
	day := testDay()
	room := 101

	_, err := storage.ScheduleMeeting(ctx, tutor1.ID,
		meetingAt(address.ID, room, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	require.NoError(t, err)

	// overlapping slot in the same room at the same address, different tutor
	_, err = storage.ScheduleMeeting(ctx, tutor2.ID,
		meetingAt(address.ID, room, day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute)))
	assert.ErrorIs(t, err, utils.ErrRoomOccupied)

	// same room at a different address is free
	otherAddress := createAddress(t, storage)
	_, err = storage.ScheduleMeeting(ctx, tutor2.ID,
		meetingAt(otherAddress.ID, room, day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute)))
	assert.NoError(t, err)
}

func TestScheduleMeeting_TutorExclusion(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	tutor := createTutor(t, storage)
	address := createAddress(t, storage)
	day := testDay()

	_, err := storage.ScheduleMeeting(ctx, tutor.ID,
		meetingAt(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	require.NoError(t, err)

	// same tutor, different room, overlapping time
	_, err = storage.ScheduleMeeting(ctx, tutor.ID,
		meetingAt(address.ID, 102, day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute)))
	assert.ErrorIs(t, err, utils.ErrTutorBusy)
}

func TestScheduleMeeting_BackToBackAllowed(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	tutor := createTutor(t, storage)
	address := createAddress(t, storage)
	day := testDay()

	_, err := storage.ScheduleMeeting(ctx, tutor.ID,
		meetingAt(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	require.NoError(t, err)

	// closed-open intervals: [10,11) and [11,12) do not overlap
	_, err = storage.ScheduleMeeting(ctx, tutor.ID,
		meetingAt(address.ID, 101, day.Add(11*time.Hour), day.Add(12*time.Hour)))
	assert.NoError(t, err)
}

func TestScheduleMeeting_CrossMidnightRejected(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	tutor := createTutor(t, storage)
	address := createAddress(t, storage)
	day := testDay()

	_, err := storage.ScheduleMeeting(ctx, tutor.ID,
		meetingAt(address.ID, 101, day.Add(23*time.Hour+30*time.Minute), day.Add(24*time.Hour+30*time.Minute)))
	assert.ErrorIs(t, err, utils.ErrMeetingCrossesMidnight)
}

func TestScheduleMeeting_DateLimitRejected(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	tutor := createTutor(t, storage)
	address := createAddress(t, storage)

	farOut := time.Now().UTC().AddDate(0, 0, 400)
	day := time.Date(farOut.Year(), farOut.Month(), farOut.Day(), 0, 0, 0, 0, time.UTC)

	_, err := storage.ScheduleMeeting(ctx, tutor.ID,
		meetingAt(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	assert.ErrorIs(t, err, utils.ErrMeetingTooFarAhead)
}

// The scenario from the scheduling design: T1 books room 101. T2 cannot
// take room 101 in an overlapping slot, T1 cannot take room 102 in an
// overlapping slot, but T2 in room 102 is fine.
func TestScheduleMeeting_ConflictScenario(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	tutor1 := createTutor(t, storage)
	tutor2 := createTutor(t, storage)
	address := createAddress(t, storage)
	day := testDay()

	overlapStart := day.Add(10*time.Hour + 30*time.Minute)
	overlapEnd := day.Add(11*time.Hour + 30*time.Minute)

	_, err := storage.ScheduleMeeting(ctx, tutor1.ID,
		meetingAt(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	require.NoError(t, err)

	_, err = storage.ScheduleMeeting(ctx, tutor2.ID,
		meetingAt(address.ID, 101, overlapStart, overlapEnd))
	assert.ErrorIs(t, err, utils.ErrRoomOccupied)

	_, err = storage.ScheduleMeeting(ctx, tutor1.ID,
		meetingAt(address.ID, 102, overlapStart, overlapEnd))
	assert.ErrorIs(t, err, utils.ErrTutorBusy)

	meeting, err := storage.ScheduleMeeting(ctx, tutor2.ID,
		meetingAt(address.ID, 102, overlapStart, overlapEnd))
	require.NoError(t, err)
	assert.Equal(t, tutor2.ID, meeting.CreatedBy)
	assert.Equal(t, 102, meeting.RoomNumber)
}

func TestRescheduleMeeting_RevalidatesConstraints(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	tutor1 := createTutor(t, storage)
	tutor2 := createTutor(t, storage)
	address := createAddress(t, storage)
	day := testDay()

	_, err := storage.ScheduleMeeting(ctx, tutor1.ID,
		meetingAt(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	require.NoError(t, err)

	meeting, err := storage.ScheduleMeeting(ctx, tutor2.ID,
		meetingAt(address.ID, 101, day.Add(14*time.Hour), day.Add(15*time.Hour)))
	require.NoError(t, err)

	// moving into tutor1's slot must fail like a fresh booking
	_, err = storage.RescheduleMeeting(ctx, meeting.ID, tutor2.ID,
		meetingAt(address.ID, 101, day.Add(10*time.Hour+15*time.Minute), day.Add(10*time.Hour+45*time.Minute)))
	assert.ErrorIs(t, err, utils.ErrRoomOccupied)

	// moving to a free slot succeeds
	moved, err := storage.RescheduleMeeting(ctx, meeting.ID, tutor2.ID,
		meetingAt(address.ID, 101, day.Add(16*time.Hour), day.Add(17*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, day.Add(16*time.Hour), moved.StartTime.UTC())
}

func TestCancelMeeting_FreesSlot(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	tutor1 := createTutor(t, storage)
	tutor2 := createTutor(t, storage)
	address := createAddress(t, storage)
	day := testDay()

	meeting, err := storage.ScheduleMeeting(ctx, tutor1.ID,
		meetingAt(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	require.NoError(t, err)

	require.NoError(t, storage.CancelMeeting(ctx, meeting.ID, tutor1.ID))

	_, err = storage.ScheduleMeeting(ctx, tutor2.ID,
		meetingAt(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	assert.NoError(t, err)
}

// Concurrent overlapping bookings for the same room: exactly one wins,
// with no application-level locking involved.
func TestScheduleMeeting_ConcurrentBookings(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	address := createAddress(t, storage)
	day := testDay()

	const bookers = 8
	tutors := make([]*domain.User, bookers)
	for i := range tutors {
		tutors[i] = createTutor(t, storage)
	}

	var wg sync.WaitGroup
	errs := make([]error, bookers)
	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = storage.ScheduleMeeting(ctx, tutors[i].ID,
				meetingAt(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, utils.ErrRoomOccupied)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestCancelMeeting_WrongTutor(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	tutor := createTutor(t, storage)
	other := createTutor(t, storage)
	address := createAddress(t, storage)
	day := testDay()

	meeting, err := storage.ScheduleMeeting(ctx, tutor.ID,
		meetingAt(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	require.NoError(t, err)

	err = storage.CancelMeeting(ctx, meeting.ID, other.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
