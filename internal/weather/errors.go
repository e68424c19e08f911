package weather

import (
	"errors"
	"fmt"
)

// Kind classifies a failed weather query.
type Kind string

const (
	KindEmptyInput  Kind = "empty_input"
	KindNotFound    Kind = "not_found"
	KindAuth        Kind = "auth_failed"
	KindRateLimited Kind = "rate_limited"
	KindServer      Kind = "server_error"
	KindTimeout     Kind = "timeout"
	KindNetwork     Kind = "network_error"
	KindParse       Kind = "parse_error"
	KindUnavailable Kind = "unavailable"
	KindUnknown     Kind = "unknown"
)

// User-facing messages for each failure kind.
const (
	MsgEmptyInput  = "Please enter a city name"
	MsgNotFound    = "City not found. Please check the spelling and try again."
	MsgAuth        = "API authentication failed. Please contact support."
	MsgRateLimited = "Too many requests. Please try again in a minute."
	MsgTimeout     = "Request timed out. Please check your internet connection."
	MsgNetwork     = "Network error. Please check your internet connection."
	MsgParse       = "Unexpected response from the weather service. Please try again later."
	MsgUnavailable = "Weather service is temporarily unavailable. Please try again shortly."
)

// Error is the error type returned by gateways.
type Error struct {
	Kind    Kind
	Status  int // upstream HTTP status, 0 when no response was received
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error with the default message for kind.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: defaultMessage(kind), Err: err}
}

// StatusError maps a non-2xx upstream status to an Error.
func StatusError(status int) *Error {
	switch status {
	case 404:
		return &Error{Kind: KindNotFound, Status: status, Message: MsgNotFound}
	case 401:
		return &Error{Kind: KindAuth, Status: status, Message: MsgAuth}
	case 429:
		return &Error{Kind: KindRateLimited, Status: status, Message: MsgRateLimited}
	default:
		return &Error{
			Kind:    KindServer,
			Status:  status,
			Message: fmt.Sprintf("Server error (%d). Please try again later.", status),
		}
	}
}

// KindOf reports the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return KindUnknown
}

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	var we *Error
	if errors.As(err, &we) && we.Message != "" {
		return we.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func defaultMessage(kind Kind) string {
	switch kind {
	case KindEmptyInput:
		return MsgEmptyInput
	case KindNotFound:
		return MsgNotFound
	case KindAuth:
		return MsgAuth
	case KindRateLimited:
		return MsgRateLimited
	case KindTimeout:
		return MsgTimeout
	case KindNetwork:
		return MsgNetwork
	case KindParse:
		return MsgParse
	case KindUnavailable:
		return MsgUnavailable
	default:
		return "Something went wrong. Please try again later."
	}
}
