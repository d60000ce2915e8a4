package usecase

import "errors"

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotOwner            = errors.New("forbidden")
	ErrInvalidState        = errors.New("cannot change appointment in current state")
	ErrSlotTaken           = errors.New("slot not available")
	ErrSlotInPast          = errors.New("slot must be in the future")
	ErrSlotUnpublished     = errors.New("slot not published by doctor")
	ErrSummaryForbidden    = errors.New("forbidden")
)

// ValidationError marks request-payload failures that map to 400 with the
// underlying message intact (for example, which vital field is missing).
type ValidationError struct {
	message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{message: message}
}

func (e *ValidationError) Error() string {
	return e.message
}
