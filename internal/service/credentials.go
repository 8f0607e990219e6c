package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eventschedule/eventschedule/internal/events"
	"github.com/eventschedule/eventschedule/internal/hash"
	"github.com/eventschedule/eventschedule/internal/logging"
	"github.com/eventschedule/eventschedule/internal/models"
	"github.com/eventschedule/eventschedule/internal/repo"
	"github.com/eventschedule/eventschedule/internal/tokens"
)

var (
	ErrValidation = errors.New("username and password are required")

	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// so a caller cannot tell registered usernames from unregistered ones.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type CredentialService struct {
	Accounts repo.AccountRepository
	Hasher   *hash.Hasher
	Codec    *tokens.Codec
	Producer *events.Producer
}

type RegisterParams struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *models.Account
}

// Register creates an account with role "user". The surrounding layer admits
// only admin callers here. Duplicate username or email surfaces as the
// store's repo.ErrDuplicateUsername / repo.ErrDuplicateEmail.
func (s *CredentialService) Register(ctx context.Context, p RegisterParams) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if p.Username == "" || p.Password == "" {
		return nil, ErrValidation
	}

	digest, err := s.Hasher.Hash(p.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.New(),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: digest,
		Role:         models.RoleUser,
	}

	if err := s.Accounts.Create(ctx, account); err != nil {
		l.Warn("register_error", "error", err)
		return nil, err
	}

	s.publish(ctx, account.ID.String(), map[string]any{
		"type":     events.TypeAccountRegistered,
		"UserID":   account.ID.String(),
		"username": account.Username,
	})

	return account, nil
}

// Login verifies the credentials and issues a bearer token carrying the
// account's identity and role claims. The unknown-username path still burns a
// bcrypt verification so its timing matches the wrong-password path.
func (s *CredentialService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if username == "" || password == "" {
		return nil, ErrValidation
	}

	account, err := s.Accounts.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Hasher.CheckDummy(password)
			l.Warn("login_failed", "reason", "unknown username")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, fmt.Errorf("loading account: %w", err)
	}

	if !s.Hasher.Check(account.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Codec.Issue(account)
	if err != nil {
		l.Error("login_failed", "error", err)
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.publish(ctx, account.ID.String(), map[string]any{
		"type":     events.TypeAccountLoggedIn,
		"UserID":   account.ID.String(),
		"username": account.Username,
	})

	return &LoginResult{Token: token, ExpiresAt: exp, Account: account}, nil
}

// Elevate sets the account's role to target and persists it. Re-applying the
// role the account already holds is a no-op success.
func (s *CredentialService) Elevate(ctx context.Context, username string, target models.Role) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "auth.elevate", "username", username, "role", target)

	if !target.Valid() {
		return nil, repo.ErrInvalidRole
	}

	account, err := s.Accounts.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account.Role == target {
		return account, nil
	}

	account.Role = target
	if err := s.Accounts.Save(ctx, account); err != nil {
		l.Warn("elevate_error", "error", err)
		return nil, err
	}

	s.publish(ctx, account.ID.String(), map[string]any{
		"type":     events.TypeRoleChanged,
		"UserID":   account.ID.String(),
		"username": account.Username,
		"role":     account.Role.String(),
	})

	return account, nil
}

// publish sends an auth event to kafka. Delivery problems are logged and
// swallowed: the request already succeeded.
func (s *CredentialService) publish(ctx context.Context, key string, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_error", "error", err)
	}
}
