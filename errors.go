package blog

import (
	"github.com/goliatone/go-errors"
)

// ErrDuplicateEmail is returned when signup hits the unique email constraint
var ErrDuplicateEmail = errors.New("email already registered", errors.CategoryConflict).
	WithCode(errors.CodeConflict).
	WithTextCode("DUPLICATE_EMAIL")

// ErrUserNotFound is returned when no account matches the given email
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("USER_NOT_FOUND")

// ErrInvalidCredentials is returned when the password does not match
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrInvalidToken is the single error for every token validation failure.
// Callers cannot tell an expired token from a forged one.
var ErrInvalidToken = errors.New("invalid authentication token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INVALID_TOKEN")

// ErrNotOwner is returned when the acting identity does not own the entity
var ErrNotOwner = errors.New("not the owner of this resource", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden).
	WithTextCode("NOT_OWNER")

// ErrStoreUnavailable wraps store round-trip failures; never retried here
var ErrStoreUnavailable = errors.New("store unavailable", errors.CategoryInternal).
	WithCode(errors.CodeInternal).
	WithTextCode("STORE_UNAVAILABLE")

// ErrNoEmptyPassword rejects empty passwords before hashing
var ErrNoEmptyPassword = errors.New("password must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest).
	WithTextCode("EMPTY_PASSWORD")

// IsDuplicateEmail will check for unique email violations
func IsDuplicateEmail(err error) bool {
	return hasTextCode(err, ErrDuplicateEmail.TextCode)
}

// IsUserNotFound will check for missing accounts
func IsUserNotFound(err error) bool {
	return hasTextCode(err, ErrUserNotFound.TextCode)
}

// IsInvalidCredentials will check for password mismatches
func IsInvalidCredentials(err error) bool {
	return hasTextCode(err, ErrInvalidCredentials.TextCode)
}

// IsInvalidToken will check for token validation failures
func IsInvalidToken(err error) bool {
	return hasTextCode(err, ErrInvalidToken.TextCode)
}

// IsNotOwner will check for ownership rejections
func IsNotOwner(err error) bool {
	return hasTextCode(err, ErrNotOwner.TextCode)
}

// IsStoreUnavailable will check for store round-trip failures
func IsStoreUnavailable(err error) bool {
	return hasTextCode(err, ErrStoreUnavailable.TextCode)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}
