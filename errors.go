package publishing

import (
	"github.com/goliatone/go-errors"
)

// ErrMissingCredentials is returned when the password path is selected but
// login or password is absent
var ErrMissingCredentials = errors.New("login and password are required", errors.CategoryAuth).
	WithTextCode("missing_credentials").
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is returned when the login is unknown or the
// password does not verify
var ErrInvalidCredentials = errors.New("invalid login or password", errors.CategoryAuth).
	WithTextCode("invalid_credentials").
	WithCode(errors.CodeUnauthorized)

// ErrInvalidAuthenticationCode is returned when the provider rejects the
// exchange code or the profile fetch fails
var ErrInvalidAuthenticationCode = errors.New("authentication code is invalid", errors.CategoryAuth).
	WithTextCode("invalid_code").
	WithCode(errors.CodeUnauthorized)

// ErrMissingAuthorization is returned by the gate when the Authorization
// header is absent or not of the form "Bearer <token>". No credential was
// supplied, so this stays an authentication failure (401).
var ErrMissingAuthorization = errors.New("missing or malformed authorization header", errors.CategoryAuth).
	WithTextCode("missing_or_malformed").
	WithCode(errors.CodeUnauthorized)

// ErrInvalidAccessToken is returned when a supplied bearer token does not
// resolve to a stored session. A credential was supplied but is invalid,
// which the wire contract treats as an authorization failure (403).
var ErrInvalidAccessToken = errors.New("access token does not resolve to a session", errors.CategoryAuthz).
	WithTextCode("invalid_token").
	WithCode(errors.CodeForbidden)

// ErrNoEmptyString is returned when hashing an empty password
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the opaque mismatch result of a password
// comparison; callers translate it to ErrInvalidCredentials at the boundary
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// NewFieldViolation builds a validation error carrying per-field messages,
// e.g. a uniqueness violation surfaced as "has already been taken". The
// jsonapi mapper fans the fields metadata out into one error object per
// field.
func NewFieldViolation(message string, fields map[string][]string) *errors.Error {
	return errors.New(message, errors.CategoryValidation).
		WithCode(errors.CodeBadRequest).
		WithTextCode("invalid_record").
		WithMetadata(map[string]any{
			"fields": fields,
		})
}
