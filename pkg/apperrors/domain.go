package apperrors

import (
	"fmt"
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a duplicate-row error into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrMethodNotAllowed answers requests that hit a known path with the wrong
// HTTP method.
var ErrMethodNotAllowed = New(
	CodeMethodNotAllowed,
	"request",
	"Method not allowed",
	http.StatusMethodNotAllowed,
)

// --- Auth & account status ---

// ErrInvalidCredentials is deliberately generic: the same message covers
// unknown email, wrong password and wrong role, so callers cannot enumerate
// accounts.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 6 characters long",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"auth",
	"Invalid role",
	http.StatusBadRequest,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token has expired",
	http.StatusUnauthorized,
)

var ErrTokenNotYetValid = New(
	CodeInvalidToken,
	"auth",
	"Token is not valid yet",
	http.StatusUnauthorized,
)

var ErrTokenMalformed = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrAccountStatus surfaces a non-accepted account status (pending approval,
// suspended, inactive) as a 403, keeping the status visible to the caller.
func ErrAccountStatus(status string) *AppError {
	return New(
		CodeForbidden,
		"auth",
		fmt.Sprintf("Account is %s. Please contact support.", status),
		http.StatusForbidden,
	).WithDetails(map[string]string{"account_status": status})
}

// --- Rate limiting ---

var ErrTooManyRequests = New(
	CodeRateLimited,
	"rate_limit",
	"Too many requests. Please try again later.",
	http.StatusTooManyRequests,
)

// --- Payments ---

// ErrPaymentGateway wraps a failure talking to the payment provider.
func ErrPaymentGateway(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "payment", "Payment provider error", http.StatusInternalServerError)
}

var ErrPaymentNotFound = New(
	CodeNotFound,
	"payment",
	"Payment not found",
	http.StatusNotFound,
)

var ErrInvalidPaymentAmount = New(
	CodeValidationFailed,
	"payment",
	"Invalid payment amount",
	http.StatusBadRequest,
)
