package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/repository/postgres"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAddress(t *testing.T, storage *postgres.Storage) *domain.Address {
	t.Helper()

	address, err := storage.CreateUniversityWithAddress(context.Background(), &domain.CreateUniversityRequest{
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

func meetingBody(addressID, room int, start, end time.Time) domain.ScheduleMeetingRequest {
	return domain.ScheduleMeetingRequest{
		AddressID:   addressID,
		RoomNumber:  room,
		MeetingType: domain.MeetingOffline,
		StartTime:   start,
		EndTime:     end,
	}
}

func TestScheduleMeeting_ConflictOverHTTP(t *testing.T) {
	e, storage := setupServer(t)

	tutor1, _ := registerUser(t, e, domain.RoleTutor)
	tutor2, _ := registerUser(t, e, domain.RoleTutor)
	address := createTestAddress(t, storage)

	day := time.Now().UTC().AddDate(0, 0, gofakeit.Number(30, 300))
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	rec := doJSON(t, e, http.MethodPost, "/api/meetings", tutor1.Token,
		meetingBody(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// same room, overlapping slot, different tutor
	rec = doJSON(t, e, http.MethodPost, "/api/meetings", tutor2.Token,
		meetingBody(address.ID, 101, day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute)))
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// same tutor, different room, overlapping slot
	rec = doJSON(t, e, http.MethodPost, "/api/meetings", tutor1.Token,
		meetingBody(address.ID, 102, day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute)))
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// different room and tutor succeeds
	rec = doJSON(t, e, http.MethodPost, "/api/meetings", tutor2.Token,
		meetingBody(address.ID, 102, day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute)))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestScheduleMeeting_InvariantBreaches(t *testing.T) {
	e, storage := setupServer(t)

	tutor, _ := registerUser(t, e, domain.RoleTutor)
	address := createTestAddress(t, storage)

	day := time.Now().UTC().AddDate(0, 0, gofakeit.Number(30, 300))
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	// crosses midnight
	rec := doJSON(t, e, http.MethodPost, "/api/meetings", tutor.Token,
		meetingBody(address.ID, 101, day.Add(23*time.Hour+30*time.Minute), day.Add(24*time.Hour+30*time.Minute)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	// more than a year out
	farOut := time.Now().UTC().AddDate(0, 0, 400)
	farDay := time.Date(farOut.Year(), farOut.Month(), farOut.Day(), 0, 0, 0, 0, time.UTC)
	rec = doJSON(t, e, http.MethodPost, "/api/meetings", tutor.Token,
		meetingBody(address.ID, 101, farDay.Add(10*time.Hour), farDay.Add(11*time.Hour)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestScheduleMeeting_StudentForbidden(t *testing.T) {
	e, storage := setupServer(t)

	student, _ := registerUser(t, e, domain.RoleStudent)
	address := createTestAddress(t, storage)

	day := time.Now().UTC().AddDate(0, 0, 60)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	rec := doJSON(t, e, http.MethodPost, "/api/meetings", student.Token,
		meetingBody(address.ID, 101, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCourseLifecycleOverHTTP(t *testing.T) {
	e, _ := setupServer(t)

	tutor, _ := registerUser(t, e, domain.RoleTutor)
	student, _ := registerUser(t, e, domain.RoleStudent)

	courseName := fmt.Sprintf("Linear Algebra %s", gofakeit.LetterN(10))
	rec := doJSON(t, e, http.MethodPost, "/api/courses", tutor.Token, domain.CreateCourseRequest{
		CourseName:       courseName,
		DescriptionShort: "Vectors, matrices and linear maps.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// duplicate course name
	rec = doJSON(t, e, http.MethodPost, "/api/courses", tutor.Token, domain.CreateCourseRequest{
		CourseName:       courseName,
		DescriptionShort: "Duplicate.",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// students cannot create courses
	rec = doJSON(t, e, http.MethodPost, "/api/courses", student.Token, domain.CreateCourseRequest{
		CourseName:       courseName + " II",
		DescriptionShort: "Should be rejected.",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// the new course is searchable by name
	rec = doJSON(t, e, http.MethodGet, "/api/search/courses?name="+url.QueryEscape(courseName), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), courseName)
}
