package apperrors

import "fmt"

// InputError rejects empty or invalid user input before any side effect.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func NewInputError(message string) *InputError {
	return &InputError{Message: message}
}

// GatewayError covers any failure from a remote service, transport or
// semantic. Callers must treat it uniformly regardless of cause.
type GatewayError struct {
	Service string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s gateway failure: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s gateway failure", e.Service)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func NewGatewayError(service string, err error) *GatewayError {
	return &GatewayError{Service: service, Err: err}
}

// UpstreamError is a GatewayError variant that carries the remote status
// code so the transcription relay can pass it through verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

// StorageCorruption marks a malformed persisted catalog. It degrades to an
// empty catalog and is logged, never surfaced as a request failure.
type StorageCorruption struct {
	Err error
}

func (e *StorageCorruption) Error() string {
	return fmt.Sprintf("stored catalog is corrupted: %v", e.Err)
}

func (e *StorageCorruption) Unwrap() error {
	return e.Err
}

// ConfigurationError signals a missing service credential or similar
// misconfiguration. Mapped to a 500-class response, never silently ignored.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Message: message}
}
