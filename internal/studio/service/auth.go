package service

import (
	"context"
	"errors"
	"time"

	"github.com/lotusloft/studio/internal/studio/domain"
	"github.com/lotusloft/studio/internal/studio/store"
	"github.com/lotusloft/studio/pkg/cryptox"
	"github.com/lotusloft/studio/pkg/httpx"
	"github.com/lotusloft/studio/pkg/idx"
	"github.com/lotusloft/studio/pkg/jwtx"
	"github.com/lotusloft/studio/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
)

// dummyHash is verified against when login hits an unknown email, so the
// unknown-account path costs the same as a wrong-password path.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=2$AAAAAAAAAAAAAAAAAAAAAA$cNzNuDGmT7dTmDILnVOnD0LK/RskLAq8zL9nMRs6RQ8"

// AuthService owns the login/registration flow and acts as the principal
// resolver for the authentication filter.
type AuthService struct {
	Store store.Store
	Codec *jwtx.Codec
}

// LoginResult carries the issued token together with the account it was
// issued for, so the handler can shape its response without a second lookup.
type LoginResult struct {
	Token string
	User  domain.User
}

// Login verifies the credentials and issues a bearer token with the email
// as subject. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("password verification failed", "email", email)
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.Codec.Issue(u.Email, time.Now())
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: u}, nil
}

// RegisterParams are the fields accepted at signup.
type RegisterParams struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register creates a new non-admin account. Returns ErrEmailTaken when the
// email is already in use.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) error {
	taken, err := s.Store.Users().ExistsByEmail(ctx, p.Email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return err
	}

	err = s.Store.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PasswordHash: hash,
		Admin:        false,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race with a concurrent signup for the same email.
		return ErrEmailTaken
	}
	return err
}

// Resolve loads the account behind a token subject and projects its
// authenticated-principal view. The lookup is an exact email match, as
// stored. The password hash stays behind this boundary.
func (s *AuthService) Resolve(ctx context.Context, subject string) (httpx.Principal, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, subject)
	if err != nil {
		return httpx.Principal{}, err
	}

	return httpx.Principal{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Admin:     u.Admin,
	}, nil
}
