package inference

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a model call failed
type ErrorKind int

const (
	KindNetwork ErrorKind = iota + 1
	KindAuth
	KindQuota
	KindMalformed
	KindAPI
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindQuota:
		return "quota"
	case KindMalformed:
		return "malformed response"
	case KindAPI:
		return "api"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is returned by Client implementations for every failed call
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a model call that ran out of time
func IsTimeout(err error) bool {
	var inferenceErr *Error
	if errors.As(err, &inferenceErr) {
		return inferenceErr.Kind == KindTimeout
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// NewStatusError classifies a non-2xx response
func NewStatusError(statusCode int, message string) *Error {
	kind := KindAPI
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		kind = KindAuth
	case statusCode == http.StatusTooManyRequests:
		kind = KindQuota
	}
	return &Error{Kind: kind, StatusCode: statusCode, Message: message}
}

// NewTransportError classifies an error raised before a response was received
func NewTransportError(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "the model did not answer in time", Err: err}
	}
	return &Error{Kind: KindNetwork, Err: err}
}

// NewMalformedError reports a response that could not be turned into text
func NewMalformedError(format string, args ...any) *Error {
	return &Error{Kind: KindMalformed, Message: fmt.Sprintf(format, args...)}
}
