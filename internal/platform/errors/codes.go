// Package errors provides structured error handling with i18n support.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Validation errors
	CodeInvalidParameter Code = "INVALID_PARAMETER"
	CodeInvalidGenotype  Code = "INVALID_GENOTYPE"
	CodeDivisionByZero   Code = "DIVISION_BY_ZERO"

	// Routing errors
	CodeUnknownExperiment Code = "UNKNOWN_EXPERIMENT"
	CodeInvalidRequest    Code = "INVALID_REQUEST"
)

// Sentinel values for errors.Is checks. Matching is by code only.
var (
	ErrInvalidParameter  = New(CodeInvalidParameter, "invalid parameter")
	ErrInvalidGenotype   = New(CodeInvalidGenotype, "invalid genotype")
	ErrDivisionByZero    = New(CodeDivisionByZero, "division by zero")
	ErrUnknownExperiment = New(CodeUnknownExperiment, "unknown experiment")
	ErrInvalidRequest    = New(CodeInvalidRequest, "invalid request")
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInvalidParameter,
		CodeInvalidGenotype,
		CodeDivisionByZero,
		CodeInvalidRequest:
		return codes.InvalidArgument

	// NotFound - no module registered for the experiment
	case CodeUnknownExperiment:
		return codes.NotFound

	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the code describes a user-correctable failure.
func (c Code) IsClientError() bool {
	status := c.HTTPStatus()
	return status >= 400 && status < 500
}
