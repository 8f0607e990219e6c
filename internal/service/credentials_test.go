package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eventschedule/eventschedule/internal/hash"
	"github.com/eventschedule/eventschedule/internal/models"
	"github.com/eventschedule/eventschedule/internal/repo"
	"github.com/eventschedule/eventschedule/internal/tokens"
)

func newTestCredentials(t *testing.T) *CredentialService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open in-memory db")
	require.NoError(t, db.AutoMigrate(&models.Account{}), "failed to migrate")

	return &CredentialService{
		Accounts: &repo.GormRepo{DB: db},
		Hasher:   hash.New(bcrypt.MinCost),
		Codec: &tokens.Codec{
			Secret:   []byte("test-jwt-secret"),
			Issuer:   "eventschedule",
			Audience: "eventschedule-clients",
			TTL:      time.Hour,
		},
	}
}

func registerAlice(t *testing.T, svc *CredentialService) *models.Account {
	t.Helper()

	account, err := svc.Register(context.Background(), RegisterParams{
		FirstName: "Alice",
		LastName:  "Smith",
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "secret1",
	})
	require.NoError(t, err)
	return account
}

func TestCredentialService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestCredentials(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret"},
		{name: "empty password", username: "user", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, RegisterParams{Username: tt.username, Password: tt.password})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCredentialService_Register(t *testing.T) {
	t.Parallel()

	svc := newTestCredentials(t)
	account := registerAlice(t, svc)

	assert.Equal(t, models.RoleUser, account.Role)
	assert.NotEmpty(t, account.ID)
	assert.NotEqual(t, "secret1", account.PasswordHash)
	assert.True(t, svc.Hasher.Check(account.PasswordHash, "secret1"))
}

func TestCredentialService_Register_Duplicates(t *testing.T) {
	t.Parallel()

	svc := newTestCredentials(t)
	registerAlice(t, svc)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, repo.ErrDuplicateUsername)

	_, err = svc.Register(ctx, RegisterParams{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)
}

func TestCredentialService_Login_TokenCarriesIdentity(t *testing.T) {
	t.Parallel()

	svc := newTestCredentials(t)
	account := registerAlice(t, svc)

	res, err := svc.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, 2*time.Second)

	claims, err := svc.Codec.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, account.ID.String(), claims.UserID)
	assert.Equal(t, "Alice", claims.FirstName)
	assert.Equal(t, "Smith", claims.LastName)
}

func TestCredentialService_Login_UnknownUserAndWrongPasswordIndistinguishable(t *testing.T) {
	t.Parallel()

	svc := newTestCredentials(t)
	registerAlice(t, svc)
	ctx := context.Background()

	_, errUnknown := svc.Login(ctx, "nobody", "secret1")
	_, errWrongPw := svc.Login(ctx, "alice", "wrong-password")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestCredentialService_Login_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestCredentials(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret"},
		{name: "empty password", username: "user", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(ctx, tt.username, tt.password)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCredentialService_Elevate(t *testing.T) {
	t.Parallel()

	svc := newTestCredentials(t)
	registerAlice(t, svc)
	ctx := context.Background()

	account, err := svc.Elevate(ctx, "alice", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, account.Role)

	reloaded, err := svc.Accounts.ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, reloaded.Role)

	res, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	claims, err := svc.Codec.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestCredentialService_Elevate_Idempotent(t *testing.T) {
	t.Parallel()

	svc := newTestCredentials(t)
	registerAlice(t, svc)
	ctx := context.Background()

	first, err := svc.Elevate(ctx, "alice", models.RoleAdmin)
	require.NoError(t, err)
	second, err := svc.Elevate(ctx, "alice", models.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, first.Role, second.Role)
	assert.Equal(t, first.ID, second.ID)
}

func TestCredentialService_Elevate_Errors(t *testing.T) {
	t.Parallel()

	svc := newTestCredentials(t)
	ctx := context.Background()

	_, err := svc.Elevate(ctx, "nobody", models.RoleAdmin)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	registerAlice(t, svc)
	_, err = svc.Elevate(ctx, "alice", models.Role("superuser"))
	assert.ErrorIs(t, err, repo.ErrInvalidRole)
}
