package utils

import "errors"

var ErrInvalidToken = errors.New("invalid token")
var ErrExpiredToken = errors.New("token has expired")
var ErrUnauthorized = errors.New("unauthorized")
var ErrValueConversion = errors.New("could not convert value")

// Storage-level sentinels. The scheduling conflict errors are produced by
// translating Postgres exclusion/check constraint violations, never by
// application-level overlap checks.
var ErrNotFound = errors.New("record not found")
var ErrAlreadyExists = errors.New("record already exists")
var ErrRoomOccupied = errors.New("room is occupied for the requested time range")
var ErrTutorBusy = errors.New("tutor already has a meeting in the requested time range")
var ErrMeetingCrossesMidnight = errors.New("meeting must start and end on the same day")
var ErrMeetingTooFarAhead = errors.New("meeting date must be within one year from today")
