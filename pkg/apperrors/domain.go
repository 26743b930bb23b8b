package apperrors

import (
	"net/http"
)

/*
Factories and predefined values for the marketplace business errors.
Factories wrap causes coming out of repositories; predefined variables
cover frequent static cases.
*/

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a unique-key collision into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general conflict factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation flags an operation the business rules forbid.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus flags a state transition the workflow forbids.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// --- Auth & account ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Agents ---

var ErrRegistrationNumberTaken = New(
	CodeAlreadyExists,
	"agent",
	"Registration number already in use",
	http.StatusConflict,
)

var ErrAgentNotVerified = New(
	CodeForbidden,
	"agent",
	"Agent profile is not approved yet",
	http.StatusForbidden,
)

var ErrListingLimitReached = New(
	CodeLimitExceeded,
	"agent",
	"Active listing limit for the current plan has been reached",
	http.StatusForbidden,
)

// --- Properties ---

var ErrNotPropertyOwner = New(
	CodeForbidden,
	"property",
	"Only the listing agent can modify this property",
	http.StatusForbidden,
)

var ErrPropertyNotActive = New(
	CodeInvalidStatus,
	"property",
	"Property is not active",
	http.StatusConflict,
)

// --- Reviews ---

var ErrReviewTargetMissing = New(
	CodeValidationFailed,
	"review",
	"A review must reference exactly one property or agent",
	http.StatusBadRequest,
)

var ErrAlreadyReviewed = New(
	CodeAlreadyExists,
	"review",
	"You have already reviewed this target",
	http.StatusConflict,
)

var ErrSelfReview = New(
	CodeInvalidOperation,
	"review",
	"Reviewing yourself is not allowed",
	http.StatusBadRequest,
)

// --- Favorites ---

var ErrAlreadyFavorited = New(
	CodeAlreadyExists,
	"favorite",
	"Property is already in favorites",
	http.StatusConflict,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// --- Subscriptions & payments ---

var ErrSubscriptionCancelled = New(
	CodeInvalidOperation,
	"subscription",
	"Subscription is already cancelled",
	http.StatusBadRequest,
)

var ErrInvalidPaymentAmount = New(
	CodeConflict,
	"payment",
	"Invalid payment amount",
	http.StatusConflict,
)
