package ports

import "github.com/buildscape/marketplace-api/internal/core/domain"

// TokenService signs and verifies the compact bearer tokens used by the API.
// Verification is stateless: expiry is the only termination mechanism, there
// is no server-side revocation.
type TokenService interface {
	// Issue produces a signed token asserting {id, role} with a bounded TTL.
	Issue(subjectID, role string) (string, error)
	// Verify validates signature and expiry. It fails with
	// domain.ErrTokenExpired past the expiry boundary and
	// domain.ErrTokenInvalid on a bad signature or malformed token.
	Verify(token string) (domain.Identity, error)
}
