package gemproxy

import (
	"errors"
	"net/http"
)

// ErrMissingCredential is reported when no upstream API key is configured.
// Its message is returned to callers as the 500 details string.
var ErrMissingCredential = errors.New("GEMINI_API_KEY environment variable not set.")

// missingKeyError names the variable a non-Gemini provider reads its key from.
// It matches ErrMissingCredential under errors.Is.
type missingKeyError struct {
	env string
}

func (e *missingKeyError) Error() string {
	return e.env + " environment variable not set."
}

func (e *missingKeyError) Is(target error) bool {
	return target == ErrMissingCredential
}

// missingCredential returns the credential error for p.
func missingCredential(p Provider) error {
	if p == ProviderOpenAI {
		return &missingKeyError{env: "OPENAI_API_KEY"}
	}
	return ErrMissingCredential
}

// RequestErrorKind classifies client-side validation failures.
type RequestErrorKind int

const (
	MethodNotAllowed RequestErrorKind = iota + 1
	MissingBody
	MalformedBody
	MissingQuery
)

// RequestError is a terminal validation failure raised before any upstream call.
type RequestError struct {
	Kind   RequestErrorKind
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail == "" {
		return e.Label()
	}
	return e.Label() + ": " + e.Detail
}

// Label is the short error string placed in the response body.
func (e *RequestError) Label() string {
	switch e.Kind {
	case MethodNotAllowed:
		return "Method Not Allowed"
	case MissingBody:
		return "Missing request body"
	case MalformedBody:
		return "Invalid JSON body"
	case MissingQuery:
		return "Missing query"
	default:
		return "Bad Request"
	}
}

// StatusCode maps the kind to its HTTP status.
func (e *RequestError) StatusCode() int {
	if e.Kind == MethodNotAllowed {
		return http.StatusMethodNotAllowed
	}
	return http.StatusBadRequest
}
