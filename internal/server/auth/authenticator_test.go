package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserFinder struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUserFinder) FindUserByName(_ context.Context, name string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type countingHasher struct {
	PasswordHasher
	verifies int
}

func (c *countingHasher) Verify(password, hash string) bool {
	c.verifies++
	return c.PasswordHasher.Verify(password, hash)
}

func newTestAuthenticator(t *testing.T) (*Authenticator, *countingHasher) {
	t.Helper()

	h := &countingHasher{PasswordHasher: NewBcryptHasher(bcrypt.MinCost)}
	hash, err := h.Hash("testpassword")
	require.NoError(t, err)

	finder := &fakeUserFinder{users: map[string]*models.User{
		"testuser": {ID: 1, Name: "testuser", Email: "test@example.com", PasswordHash: hash},
	}}
	return NewAuthenticator(finder, h), h
}

func TestAuthenticator_Success(t *testing.T) {
	t.Parallel()

	a, _ := newTestAuthenticator(t)

	id, err := a.Authenticate(context.Background(), "testuser", "testpassword")
	require.NoError(t, err)
	assert.Equal(t, Identity{SubjectName: "testuser", SubjectID: 1}, id)
}

func TestAuthenticator_UniformFailure(t *testing.T) {
	t.Parallel()

	a, h := newTestAuthenticator(t)

	_, errWrongPass := a.Authenticate(context.Background(), "testuser", "wrongpassword")
	_, errNoUser := a.Authenticate(context.Background(), "nosuchuser", "testpassword")

	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass, errNoUser)
	assert.Equal(t, 2, h.verifies, "unknown user must still run a hash verification")
}

func TestAuthenticator_EmptyPassword(t *testing.T) {
	t.Parallel()

	a, _ := newTestAuthenticator(t)

	_, err := a.Authenticate(context.Background(), "testuser", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticator_LookupFailure(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection refused")
	a := NewAuthenticator(&fakeUserFinder{err: dbErr}, NewBcryptHasher(bcrypt.MinCost))

	_, err := a.Authenticate(context.Background(), "testuser", "testpassword")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
