package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eventschedule/eventschedule/internal/models"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username is already taken")
	ErrDuplicateEmail    = errors.New("email is already in use")
	ErrConflict          = errors.New("account was modified concurrently")
	ErrInvalidRole       = errors.New("role is not one of user, editor, admin")
)

// AccountRepository is the contract the relational-storage collaborator has
// to satisfy. Username and email lookups are exact, case-sensitive matches.
type AccountRepository interface {
	ByUsername(ctx context.Context, username string) (*models.Account, error)
	ByEmail(ctx context.Context, email string) (*models.Account, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	Create(ctx context.Context, a *models.Account) error
	Save(ctx context.Context, a *models.Account) error
}
