package apperrors

import (
	"fmt"
	"net/http"
)

/*
Factories and predefined variables for the business errors of the
marketplace: OTP/auth lifecycle, moderation workflow, advertisements
and outbound collaborators.
*/

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict reports a uniqueness or state conflict. The original API
// contract surfaces these as 400, not 409.
func ErrConflict(domain, message string) *AppError {
	return New(CodeConflict, domain, message, http.StatusBadRequest)
}

// ErrUpstream wraps a dependency failure (SMS gateway, geocoder).
func ErrUpstream(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusInternalServerError)
}

// --- Auth / OTP ---

var (
	// ErrInvalidPhone rejects phone numbers outside the accepted mobile range.
	ErrInvalidPhone = New(CodeValidationFailed, "auth", "Please enter a valid 10-digit mobile number", http.StatusBadRequest)

	// ErrPhoneRoleRequired is returned when phone or role is missing on OTP issue/verify.
	ErrPhoneRoleRequired = New(CodeValidationFailed, "auth", "Phone number and role are required", http.StatusBadRequest)

	// ErrOtpResendWait enforces the resend cooldown window.
	ErrOtpResendWait = New(CodeRateLimited, "auth", "Please wait 30 seconds before requesting a new OTP", http.StatusTooManyRequests)

	// ErrOtpNotFound is returned by resend when no OTP was ever issued.
	ErrOtpNotFound = New(CodeNotFound, "auth", "No OTP request found for this number", http.StatusBadRequest)

	// ErrOtpExpired is returned by verify when no live session exists.
	ErrOtpExpired = New(CodeValidationFailed, "auth", "OTP has expired. Please request a new one", http.StatusBadRequest)

	// ErrOtpIncorrect leaves the session intact so the correct code still works.
	ErrOtpIncorrect = New(CodeValidationFailed, "auth", "Incorrect OTP. Please try again", http.StatusBadRequest)

	// ErrOtpDispatchFailed surfaces a synchronous SMS gateway failure.
	ErrOtpDispatchFailed = New(CodeExternalServiceError, "auth", "Failed to send OTP. Please try again later", http.StatusInternalServerError)

	ErrTokenMissing = New(CodeUnauthorized, "auth", "Authorization token missing", http.StatusUnauthorized)

	// ErrTokenExpired hints the client to use the refresh token.
	ErrTokenExpired = New(CodeTokenExpired, "auth", "Access token expired. Use refresh token to get a new one", http.StatusUnauthorized)

	// ErrTokenInvalid hints the client to re-authenticate.
	ErrTokenInvalid = New(CodeInvalidToken, "auth", "Invalid token. Please login again", http.StatusUnauthorized)

	// ErrTokenStale means the token version no longer matches the account.
	ErrTokenStale = New(CodeStaleToken, "auth", "Access token invalidated. Please login again", http.StatusUnauthorized)

	ErrUserNotFound = New(CodeNotFound, "auth", "User not found", http.StatusNotFound)

	// ErrAccountDeleted rejects credentials of a soft-deleted account.
	ErrAccountDeleted = New(CodeForbidden, "auth", "This account has been deleted", http.StatusForbidden)

	ErrNotAuthorized = New(CodeForbidden, "auth", "You are not authorized to perform this action", http.StatusForbidden)
)

// ErrRoleConflict rejects a registration under a different role than the
// one the phone number already holds.
func ErrRoleConflict(existingRole string) *AppError {
	return New(
		CodeConflict,
		"auth",
		fmt.Sprintf("This phone number is already registered as %s. You cannot register as a different role.", existingRole),
		http.StatusBadRequest,
	)
}

// --- Moderation workflow ---

var (
	// ErrRejectionReasonRequired guards the reject transition.
	ErrRejectionReasonRequired = New(CodeValidationFailed, "moderation", "Rejection reason is required", http.StatusBadRequest)

	// ErrModerationForbidden guards approve/reject for non-admin actors.
	ErrModerationForbidden = New(CodeForbidden, "moderation", "Only an administrator can moderate submissions", http.StatusForbidden)
)

// --- Locations ---

var (
	ErrQueryTooShort   = New(CodeValidationFailed, "location", "Query must be at least 2 characters", http.StatusBadRequest)
	ErrLatLonRequired  = New(CodeValidationFailed, "location", "Latitude and longitude are required", http.StatusBadRequest)
	ErrLocationUnknown = New(CodeNotFound, "location", "Location not found", http.StatusNotFound)
)
