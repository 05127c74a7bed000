package reviewskim

import (
	"errors"
	"fmt"
	"strings"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// Extraction error codes.
	ESTRUCTURE   = "structural_mismatch"   // expected unique anchor missing or duplicated
	EPATTERN     = "pattern_mismatch"      // text found but not in the expected shape
	EFETCH       = "fetch_failure"         // network or HTTP failure after retries
	ECONSISTENCY = "consistency_violation" // cross-field invariant broken
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("reviewskim error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ExtractionError reports which field of which document could not be
// extracted. ReviewerID is zero when the reviewer was not yet known.
type ExtractionError struct {
	Code       string
	Field      string
	ReviewerID int
	URL        string
	Offset     int
	Message    string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	var b strings.Builder
	b.WriteString("extract ")
	b.WriteString(e.Field)
	if e.ReviewerID != 0 {
		fmt.Fprintf(&b, " (reviewer %d)", e.ReviewerID)
	}
	if e.URL != "" {
		fmt.Fprintf(&b, " at %s", e.URL)
	}
	fmt.Fprintf(&b, ": %s: %s", e.Code, e.Message)
	return b.String()
}

// Extractf returns an ExtractionError for field with a formatted message.
func Extractf(code, field string, format string, args ...any) *ExtractionError {
	return &ExtractionError{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	var x *ExtractionError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	} else if errors.As(err, &x) {
		return x.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	var x *ExtractionError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	} else if errors.As(err, &x) {
		return x.Error()
	}
	return "Internal error."
}
