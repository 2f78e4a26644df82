package auth

import "time"

// Guard turns a bearer token into an Identity or an authorization error.
type Guard struct {
	codec TokenDecoder
	now   func() time.Time
}

func NewGuard(codec TokenDecoder) *Guard {
	return &Guard{codec: codec, now: time.Now}
}

// Resolve checks token in a fixed order and stops at the first failure:
// empty or undecodable or missing sub/id gives ErrUnauthorized, missing exp
// gives ErrBadRequest, expired gives ErrForbidden.
func (g *Guard) Resolve(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrUnauthorized
	}

	claims, err := g.codec.Decode(token)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	if claims.Subject == nil || claims.SubjectID == nil {
		return Identity{}, ErrUnauthorized
	}

	if claims.ExpiresAt == nil {
		return Identity{}, ErrBadRequest
	}

	if g.now().After(*claims.ExpiresAt) {
		return Identity{}, ErrForbidden
	}

	return Identity{SubjectName: *claims.Subject, SubjectID: *claims.SubjectID}, nil
}
