package model

import "fmt"

// ErrorKind classifies failures crossing an adapter boundary.
type ErrorKind string

const (
	ErrorKindTransport ErrorKind = "transport" // Network or connection failure.
	ErrorKindProtocol  ErrorKind = "protocol"  // Non-success API response or unparseable body.
	ErrorKindStore     ErrorKind = "store"     // Credential or preference store failure.
)

// FallbackErrorMessage is used when the remote API reports a failure without
// an error string.
const FallbackErrorMessage = "unknown error"

// RemoteError is returned by the status client. Message is what the user sees in
// the result banner; Err is the underlying cause, if any.
type RemoteError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// StoreError wraps a persistence failure that was absorbed with a fallback value.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Kind returns ErrorKindStore.
func (e *StoreError) Kind() ErrorKind {
	return ErrorKindStore
}
