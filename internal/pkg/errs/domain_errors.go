package errs

import "errors"

// Domain-specific sentinel errors for the checkout usecase layers
var (
	// Session errors
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrSessionTerminated = errors.New("checkout session terminated")

	// Collaborator errors
	ErrSourceUnavailable = errors.New("order source unavailable")
	ErrGatewayError      = errors.New("payment gateway error")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")
)
