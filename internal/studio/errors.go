package studio

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidToken is returned by NewClient when the basic token is missing
// or too short to be real.
var ErrInvalidToken = errors.New("basic token must be at least 10 characters")

// errTimerFired is the cancellation cause set by the request timer.
var errTimerFired = errors.New("request timer fired")

// OutcomeKind names the terminal state of one widget request.
type OutcomeKind int

const (
	// OutcomeNotStarted means no request was issued, e.g. the element was missing.
	OutcomeNotStarted OutcomeKind = iota
	OutcomeSuccess
	OutcomeClientError
	OutcomeServerError
	OutcomeTimeout
	OutcomeNetworkFailure
	OutcomeParseFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeClientError:
		return "client_error"
	case OutcomeServerError:
		return "server_error"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeNetworkFailure:
		return "network_failure"
	case OutcomeParseFailure:
		return "parse_failure"
	default:
		return "not_started"
	}
}

// Classify maps an error returned by the client to its outcome. A nil error
// is a success.
func Classify(err error) OutcomeKind {
	var (
		rejected *RejectedError
		status   *StatusError
		timeout  *TimeoutError
		network  *NetworkError
		parse    *ParseError
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &rejected):
		return OutcomeClientError
	case errors.As(err, &status):
		return OutcomeServerError
	case errors.As(err, &timeout):
		return OutcomeTimeout
	case errors.As(err, &network):
		return OutcomeNetworkFailure
	case errors.As(err, &parse):
		return OutcomeParseFailure
	default:
		return OutcomeNotStarted
	}
}

// ElementNotFoundError means the target locator resolved to nothing, so no
// request was sent.
type ElementNotFoundError struct {
	Locator string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element %q not found", e.Locator)
}

// RejectedError is an HTTP 422 from the API with its validation details.
type RejectedError struct {
	Details ValidationDetails
}

func (e *RejectedError) Error() string {
	if e.Details.Message != "" {
		return "api rejected parameters: " + e.Details.Message
	}
	return "api rejected parameters"
}

// StatusError is any other non-200 response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d", e.Code)
}

// TimeoutError means the request timer fired before a response was handled.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s", e.After)
}

// NetworkError is a transport failure other than the request timer.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "execute request: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseStage says which body could not be decoded.
type ParseStage int

const (
	// StageImage is the body of a 200 response.
	StageImage ParseStage = iota
	// StageRejection is the body of a 422 response.
	StageRejection
)

// ParseError means a response body could not be decoded.
type ParseError struct {
	Stage ParseStage
	Err   error
}

func (e *ParseError) Error() string {
	if e.Stage == StageRejection {
		return "decode validation errors: " + e.Err.Error()
	}
	return "decode response: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
