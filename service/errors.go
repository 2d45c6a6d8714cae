package service

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidViewState is returned when a ViewState cannot drive the pipeline
	ErrInvalidViewState = errors.New("invalid view state")
	// ErrSessionNotFound is returned for an unknown browse session id
	ErrSessionNotFound = errors.New("session not found")
	// ErrSuperseded is returned by a computation whose view state was replaced while it ran
	ErrSuperseded = errors.New("view state superseded")
)

// NetworkError is a transport or HTTP-level failure talking to the upstream API
type NetworkError struct {
	URL        string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NotFoundError reports an unknown category or entity name
type NotFoundError struct {
	Kind string // "type" or "pokemon"
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// MalformedChainError reports an evolution chain missing an expected link
type MalformedChainError struct {
	URL    string
	Reason string
}

func (e *MalformedChainError) Error() string {
	return fmt.Sprintf("malformed evolution chain %s: %s", e.URL, e.Reason)
}

// asNotFound converts an upstream 404 into a NotFoundError and passes any other error through
func asNotFound(err error, kind, name string) error {
	var netErr *NetworkError
	if errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound {
		return &NotFoundError{Kind: kind, Name: name, Err: err}
	}
	return err
}
