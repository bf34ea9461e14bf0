package usecase

import "errors"

// Categories. Every error returned by this package matches exactly one of
// these with errors.Is; the HTTP layer maps categories to status codes.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidState          = errors.New("invalid state")
	ErrWindowClosed          = errors.New("window closed")
	ErrTooEarly              = errors.New("too early")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrTooManyRequests       = errors.New("too many requests")
)

// Error is a named failure with a client-facing message. It unwraps to its
// category.
type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

var (
	ErrMissingToken       = newError(ErrUnauthorized, "Missing authorization token")
	ErrInvalidToken       = newError(ErrUnauthorized, "Invalid or expired token")
	ErrInvalidCredentials = newError(ErrUnauthorized, "Invalid email or password")

	ErrSiteAdminRequired = newError(ErrForbidden, "Site admin access required")
	ErrNotClubAdmin      = newError(ErrForbidden, "Forbidden: not a club admin for this club")

	ErrClubNotFound        = newError(ErrNotFound, "Club not found")
	ErrTemplateNotFound    = newError(ErrNotFound, "Template not found")
	ErrCompetitionNotFound = newError(ErrNotFound, "Competition not found")
	ErrUserNotFound        = newError(ErrNotFound, "User not found")
	ErrFixtureNotFound     = newError(ErrNotFound, "Fixture not found")

	ErrTemplateNotPublished = newError(ErrInvalidState, "Template is not published")
	ErrOnlyDraftCanOpen     = newError(ErrInvalidState, "Only DRAFT competitions can be opened")
	ErrCompetitionNotOpen   = newError(ErrInvalidState, "This competition is not currently open for new entries")
	ErrRoundClosed          = newError(ErrInvalidState, "This round is no longer accepting picks")
	ErrUserNotRegistered    = newError(ErrInvalidState, "User must register before becoming a club admin")

	ErrActivationWindowClosed = newError(ErrWindowClosed, "Activation window is closed")
	ErrJoinWindowClosed       = newError(ErrWindowClosed, "Join window has closed")
	ErrDeadlinePassed         = newError(ErrWindowClosed, "Pick deadline has passed")
	ErrTooEarlyToOpen         = newError(ErrTooEarly, "You can't open entries yet")

	ErrInvalidTeamSelection = newError(ErrInvalidInput, "Invalid team selection")

	ErrAlreadyJoined = newError(ErrConflict, "You have already joined this competition")
	ErrSlugTaken     = newError(ErrConflict, "Club slug is already taken")
	ErrEmailTaken    = newError(ErrConflict, "Email is already registered")

	ErrRateLimited = newError(ErrTooManyRequests, "Too many requests, try again shortly")
)

// Issue is one field-level validation problem.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports request validation failures field by field.
type ValidationError struct {
	Message string
	Issues  []Issue
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "Validation failed"
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalidField(field, message string) error {
	return &ValidationError{Issues: []Issue{{Field: field, Message: message}}}
}
