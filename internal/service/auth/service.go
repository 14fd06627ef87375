package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecomcart/internal/domain"
	userrepo "ecomcart/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when username/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUsernameRequired rejects registration without a username.
	ErrUsernameRequired = errors.New("username is required")
	// ErrPasswordTooShort rejects registration with a too-short password.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", passwordMin)
)

const (
	defaultBalance = 5000
	passwordMin    = 6
)

// Service handles registration, login and token-based user lookup.
type Service struct {
	repo      userrepo.Repository
	tokens    *tokenManager
	accessTTL time.Duration
}

// New creates a Service with sane defaults.
func New(repo userrepo.Repository, tokens tokenRepo) *Service {
	return &Service{
		repo:      repo,
		tokens:    newTokenManager(tokens),
		accessTTL: 48 * time.Hour,
	}
}

// Register creates a new account with the default wallet balance and empty
// cart, addresses and orders.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, ErrUsernameRequired
	}
	password = strings.TrimSpace(password)
	if len(password) < passwordMin {
		return nil, ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, domain.User{
		Username:     username,
		PasswordHash: string(hashed),
		Balance:      defaultBalance,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

// Login validates credentials and returns the user plus an issued access token.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, access, nil
}

// LookupByToken returns the user bound to a valid access token. The user row
// is re-read on every call so handlers always see the current document.
func (s *Service) LookupByToken(ctx context.Context, tok string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, tok)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}
