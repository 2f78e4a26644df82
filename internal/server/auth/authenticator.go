package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// UserFinder looks up a single user by exact login name. It returns
// common.ErrorNotFound when no such user exists.
type UserFinder interface {
	FindUserByName(ctx context.Context, name string) (*models.User, error)
}

// dummyPassword is hashed once and verified against when the user does not
// exist, so a miss costs about as much as a wrong password.
const dummyPassword = "gophtasks-dummy-password"

// Authenticator verifies username/password pairs.
type Authenticator struct {
	users  UserFinder
	hasher PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthenticator(users UserFinder, hasher PasswordHasher) *Authenticator {
	return &Authenticator{users: users, hasher: hasher}
}

// Authenticate returns the identity of the user named username when password
// matches. Unknown user and wrong password both yield ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	user, err := a.users.FindUserByName(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.hasher.Verify(password, a.dummy())
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("%w: find user: %w", common.ErrorInternal, err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{SubjectName: user.Name, SubjectID: user.ID}, nil
}

func (a *Authenticator) dummy() string {
	a.dummyOnce.Do(func() {
		h, err := a.hasher.Hash(dummyPassword)
		if err == nil {
			a.dummyHash = h
		}
	})
	return a.dummyHash
}
