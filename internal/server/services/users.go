// Package services contains server-side business logic on top of the
// repositories: user accounts, login and per-user tasks.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/dbx"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
)

// UserService handles registration, login and account maintenance.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	authn       *auth.Authenticator
	issuer      *auth.Issuer
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, issuer *auth.Issuer) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		authn:       auth.NewAuthenticator(m.Users(db), hasher),
		issuer:      issuer,
	}
}

// UserUpdate carries the new account fields. An empty Password keeps the
// current one.
type UserUpdate struct {
	Name     string
	Email    string
	Password string
}

// Register validates the input and stores a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if err := validateUserName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	return s.repomanager.Users(s.db).Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
}

// Login authenticates the credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	id, err := s.authn.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.issuer.IssueDefault(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return token, nil
}

// List returns every user, or common.ErrorNotFound when there are none.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, common.ErrorNotFound
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// Update changes the account id. Only the account owner may do so.
func (s *UserService) Update(ctx context.Context, caller auth.Identity, id int64, upd UserUpdate) (*models.User, error) {
	if caller.SubjectID != id {
		return nil, common.ErrorForbidden
	}
	if err := validateUserName(upd.Name); err != nil {
		return nil, err
	}
	if err := validateEmail(upd.Email); err != nil {
		return nil, err
	}

	var newHash string
	if upd.Password != "" {
		if err := validatePassword(upd.Password); err != nil {
			return nil, err
		}
		h, err := s.hasher.Hash(upd.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
		}
		newHash = h
	}

	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		u.Name = upd.Name
		u.Email = upd.Email
		if newHash != "" {
			u.PasswordHash = newHash
		}

		if err := repo.Update(ctx, u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account id together with its tasks. Only the account
// owner may do so.
func (s *UserService) Delete(ctx context.Context, caller auth.Identity, id int64) error {
	if caller.SubjectID != id {
		return common.ErrorForbidden
	}
	return s.repomanager.Users(s.db).Delete(ctx, id)
}
