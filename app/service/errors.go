package service

import "errors"

var (
	ErrInvalidAmount    = errors.New("amount must be a positive integer")
	ErrUpstreamFailure  = errors.New("payment provider request failed")
	ErrSignatureInvalid = errors.New("webhook signature verification failed")
)

// UpstreamError carries the processor's error text verbatim.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstreamFailure, e.Err}
}

// SignatureError carries the verification library's reason.
type SignatureError struct {
	Reason string
	Err    error
}

func (e *SignatureError) Error() string {
	return e.Reason
}

func (e *SignatureError) Unwrap() []error {
	return []error{ErrSignatureInvalid, e.Err}
}
