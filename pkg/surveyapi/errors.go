package surveyapi

import (
	"errors"
	"fmt"
)

// ErrAPI matches every error produced by a client call.
var ErrAPI = errors.New("survey api error")

const (
	STATUS_SUCCESS                  = 0
	STATUS_NOT_AUTHENTICATED        = 1
	STATUS_INVALID_USER_CREDENTIALS = 2
	STATUS_INVALID_REQUEST          = 3
	STATUS_UNKNOWN_USER             = 4
	STATUS_SYSTEM_ERROR             = 5
)

var statusReasons = map[int]string{
	STATUS_SUCCESS:                  "Success",
	STATUS_NOT_AUTHENTICATED:        "Not Authenticated",
	STATUS_INVALID_USER_CREDENTIALS: "Invalid User Credentials",
	STATUS_INVALID_REQUEST:          "Invalid Request",
	STATUS_UNKNOWN_USER:             "Unknown User",
	STATUS_SYSTEM_ERROR:             "System Error",
}

// StatusReason maps a provider status code to its description.
func StatusReason(status int) string {
	if reason, ok := statusReasons[status]; ok {
		return reason
	}
	return fmt.Sprintf("Unknown status %d", status)
}

// TransportError wraps network failures and unreadable HTTP responses.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrAPI }

// DecodeError is returned when the body is not the expected JSON envelope.
type DecodeError struct {
	Method string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: cannot decode response: %v", e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrAPI }

// StatusError carries a non-zero envelope status.
type StatusError struct {
	Method  string
	Status  int
	Reason  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Method, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Method, e.Reason)
}

func (e *StatusError) Is(target error) bool { return target == ErrAPI }
