package core

import (
	"errors"
	"fmt"
)

// The error taxonomy maps directly onto the run's propagation policy:
// LoadError, ConfigError and ConnectionError are fatal to the run;
// TransportError is isolated to the offending contact; CloseError is
// swallowed by the send loop.

// LoadError indicates the contact source or template could not be read
// or parsed. Always fatal, before any send is attempted.
type LoadError struct {
	// Source identifies what failed to load (file path or "reader").
	Source string

	// Message describes the failure.
	Message string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load error for %s: %s", e.Source, e.Message)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is.
func (e *LoadError) Is(target error) bool {
	_, ok := target.(*LoadError)
	return ok
}

// ConfigError indicates required configuration is absent or invalid.
// Always fatal, reported before any connection attempt.
type ConfigError struct {
	// Field is the name of the configuration field.
	Field string

	// Message is the validation error message.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// Is implements error matching for errors.Is.
func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}

// ConnectionError indicates the transport failed to connect, upgrade or
// authenticate. Fatal: no sends are possible without a connection.
type ConnectionError struct {
	// Transport is the name of the transport that failed.
	Transport string

	// Message describes the failure.
	Message string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("transport %s connection error: %s", e.Transport, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is.
func (e *ConnectionError) Is(target error) bool {
	_, ok := target.(*ConnectionError)
	return ok
}

// TransportError indicates a single send was rejected or the connection
// dropped mid-send. Recovered locally: the send loop records the contact
// as failed and continues.
type TransportError struct {
	// Transport is the name of the transport that failed.
	Transport string

	// Recipient is the address the failed message was bound for.
	Recipient string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed to send to %s: %v", e.Transport, e.Recipient, e.Cause)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is.
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// CloseError indicates releasing the connection at the end of a run
// failed. Never affects the run outcome.
type CloseError struct {
	// Transport is the name of the transport that failed.
	Transport string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *CloseError) Error() string {
	return fmt.Sprintf("transport %s close error: %v", e.Transport, e.Cause)
}

// Unwrap returns the underlying error.
func (e *CloseError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is.
func (e *CloseError) Is(target error) bool {
	_, ok := target.(*CloseError)
	return ok
}

// Constructor functions for errors

// NewLoadError creates a new load error.
func NewLoadError(source, message string, cause error) *LoadError {
	return &LoadError{Source: source, Message: message, Cause: cause}
}

// NewConfigError creates a new config error.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConnectionError creates a new connection error.
func NewConnectionError(transport, message string, cause error) *ConnectionError {
	return &ConnectionError{Transport: transport, Message: message, Cause: cause}
}

// NewTransportError creates a new transport error.
func NewTransportError(transport, recipient string, cause error) *TransportError {
	return &TransportError{Transport: transport, Recipient: recipient, Cause: cause}
}

// NewCloseError creates a new close error.
func NewCloseError(transport string, cause error) *CloseError {
	return &CloseError{Transport: transport, Cause: cause}
}

// IsFatal reports whether an error must abort the run. Only load, config
// and connection failures are run-fatal; everything else stays isolated
// to the offending contact.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var le *LoadError
	var cfe *ConfigError
	var cne *ConnectionError
	return errors.As(err, &le) || errors.As(err, &cfe) || errors.As(err, &cne)
}
