package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Callers match with errors.Is.
var (
	ErrValidation                 = errors.New("validation failed")
	ErrInsufficientAuthority      = errors.New("insufficient approval authority")
	ErrNotAuthorized              = errors.New("not authorized")
	ErrIneligibleGuarantor        = errors.New("ineligible guarantor")
	ErrOverCommit                 = errors.New("guarantor shares exceed application amount")
	ErrAlreadyResponded           = errors.New("guarantor request already responded")
	ErrAlreadyAtTop               = errors.New("already at top approval level")
	ErrConcurrentModification     = errors.New("concurrent modification")
	ErrInvalidDuration            = errors.New("invalid duration")
	ErrInvalidTransition          = errors.New("invalid state transition")
	ErrNotFound                   = errors.New("not found")
	ErrGuarantorConsensusRequired = errors.New("guarantor consensus required")
)

const (
	CodeValidation                 = "VALIDATION_ERROR"
	CodeInsufficientAuthority      = "INSUFFICIENT_AUTHORITY"
	CodeNotAuthorized              = "NOT_AUTHORIZED"
	CodeIneligibleGuarantor        = "INELIGIBLE_GUARANTOR"
	CodeOverCommit                 = "OVER_COMMIT"
	CodeAlreadyResponded           = "ALREADY_RESPONDED"
	CodeAlreadyAtTop               = "ALREADY_AT_TOP"
	CodeConcurrentModification     = "CONCURRENT_MODIFICATION"
	CodeInvalidDuration            = "INVALID_DURATION"
	CodeInvalidTransition          = "INVALID_TRANSITION"
	CodeNotFound                   = "NOT_FOUND"
	CodeGuarantorConsensusRequired = "GUARANTOR_CONSENSUS_REQUIRED"
	CodeInternal                   = "INTERNAL_ERROR"
)

// Error carries a stable code and a human message on top of one of the kinds above.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(code, message string, kind error) *Error {
	return &Error{Code: code, Message: message, Err: kind}
}

func Validation(format string, args ...any) *Error {
	return New(CodeValidation, fmt.Sprintf(format, args...), ErrValidation)
}

func InsufficientAuthority(format string, args ...any) *Error {
	return New(CodeInsufficientAuthority, fmt.Sprintf(format, args...), ErrInsufficientAuthority)
}

func NotAuthorized(format string, args ...any) *Error {
	return New(CodeNotAuthorized, fmt.Sprintf(format, args...), ErrNotAuthorized)
}

func IneligibleGuarantor(format string, args ...any) *Error {
	return New(CodeIneligibleGuarantor, fmt.Sprintf(format, args...), ErrIneligibleGuarantor)
}

func OverCommit(format string, args ...any) *Error {
	return New(CodeOverCommit, fmt.Sprintf(format, args...), ErrOverCommit)
}

func AlreadyResponded(assignmentID string) *Error {
	return New(CodeAlreadyResponded, fmt.Sprintf("guarantor request %s was already answered", assignmentID), ErrAlreadyResponded)
}

func AlreadyAtTop() *Error {
	return New(CodeAlreadyAtTop, "application already requires the highest approval level", ErrAlreadyAtTop)
}

func ConcurrentModification(entity, id string) *Error {
	return New(CodeConcurrentModification, fmt.Sprintf("%s %s was modified concurrently", entity, id), ErrConcurrentModification)
}

func InvalidDuration(months int) *Error {
	return New(CodeInvalidDuration, fmt.Sprintf("duration must be positive, got %d months", months), ErrInvalidDuration)
}

func InvalidTransition(format string, args ...any) *Error {
	return New(CodeInvalidTransition, fmt.Sprintf(format, args...), ErrInvalidTransition)
}

func NotFound(entity, id string) *Error {
	return New(CodeNotFound, fmt.Sprintf("%s %s not found", entity, id), ErrNotFound)
}

func GuarantorConsensusRequired() *Error {
	return New(CodeGuarantorConsensusRequired, "all guarantors must accept before approval", ErrGuarantorConsensusRequired)
}

// CodeOf returns the stable code for err, or CodeInternal when err is not an *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
