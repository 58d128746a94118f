package inference

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies an inference failure.
type ErrorKind string

const (
	KindTransientUnavailable ErrorKind = "transient-unavailable"
	KindTransportFailure     ErrorKind = "transport-failure"
	KindMalformedResponse    ErrorKind = "malformed-response"
	KindEmptyResult          ErrorKind = "empty-result"
)

// ErrNoContent is wrapped by the empty-result error of GeneratedText.
var ErrNoContent = errors.New("no content generated")

// Error is the error type returned by Client and the normalizers.
type Error struct {
	Kind       ErrorKind
	Endpoint   Endpoint
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("inference")
	if e.Endpoint != "" {
		b.WriteString(" ")
		b.WriteString(string(e.Endpoint))
	}
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": http %d", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if body := snippet(e.Body); body != "" {
		b.WriteString(": ")
		b.WriteString(body)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or "" if err is not an inference error.
func KindOf(err error) ErrorKind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}

// IsTransient reports whether err is a model warm-up (HTTP 503) failure.
func IsTransient(err error) bool {
	return KindOf(err) == KindTransientUnavailable
}

func snippet(body string) string {
	body = strings.TrimSpace(body)
	const limit = 200
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
