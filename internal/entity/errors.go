package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")
	ErrEventFull     = errors.New("event is full")
	ErrEventDatePast = errors.New("event date cannot be in the past")

	// Registration errors
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Comment errors
	ErrCommentNotFound = errors.New("comment not found")

	// General errors
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden operation")
)
