package domain

import "errors"

var ErrTokenExpired = errors.New("token has expired")
var ErrTokenInvalid = errors.New("invalid token")

// Identity is the authenticated principal derived from a verified token.
// It lives for the duration of a single request and is never persisted.
type Identity struct {
	ID   string
	Role string
}
