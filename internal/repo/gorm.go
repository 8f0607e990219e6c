package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventschedule/eventschedule/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) ByUsername(ctx context.Context, username string) (*models.Account, error) {
	var a models.Account
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) ByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) ByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var a models.Account
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new account after checking username and email uniqueness.
// The check-then-insert pair is not atomic; a race that slips past the checks
// hits the unique indexes and surfaces as ErrConflict, which callers may
// retry or report.
func (r *GormRepo) Create(ctx context.Context, a *models.Account) error {
	if !a.Role.Valid() {
		return ErrInvalidRole
	}

	db := r.DB.WithContext(ctx)

	var existing models.Account
	if err := db.Where("username = ?", a.Username).First(&existing).Error; err == nil {
		return ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := db.Where("email = ?", a.Email).First(&existing).Error; err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *GormRepo) Save(ctx context.Context, a *models.Account) error {
	if !a.Role.Valid() {
		return ErrInvalidRole
	}

	tx := r.DB.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"first_name":    a.FirstName,
			"last_name":     a.LastName,
			"username":      a.Username,
			"email":         a.Email,
			"password_hash": a.PasswordHash,
			"role":          a.Role,
		})
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
