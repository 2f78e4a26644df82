package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown user and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized: token missing, malformed, badly signed or lacking sub/id.
	ErrUnauthorized = errors.New("could not validate user")

	// ErrBadRequest: token decodes but carries no expiry.
	ErrBadRequest = errors.New("no access token supplied")

	// ErrForbidden: token is well formed but expired.
	ErrForbidden = errors.New("token expired")

	// ErrDecode is the codec's failure signal. The guard never lets it escape.
	ErrDecode = errors.New("token decode failed")
)
