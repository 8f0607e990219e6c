package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/eventschedule/eventschedule/internal/events"
	"github.com/eventschedule/eventschedule/internal/hash"
	"github.com/eventschedule/eventschedule/internal/logging"
	"github.com/eventschedule/eventschedule/internal/mail"
	"github.com/eventschedule/eventschedule/internal/repo"
	"github.com/eventschedule/eventschedule/internal/tokens"
)

// ErrMalformedCapability marks a validly-signed token that cannot serve as a
// reset capability because it carries no account id claim.
var ErrMalformedCapability = errors.New("reset capability carries no account id")

// ResetFlow issues and redeems password-reset capabilities. A capability is
// an ordinary signed token scoped to one account and bounded by the codec's
// TTL; there is no consumed-token ledger, so expiry is the only thing that
// ends its validity.
type ResetFlow struct {
	Accounts repo.AccountRepository
	Hasher   *hash.Hasher
	Codec    *tokens.Codec
	Relay    mail.Relay
	Producer *events.Producer
	BaseURL  string
}

// RequestReset issues a reset capability for the account holding email and
// hands the reset link to the mail relay. The capability is returned to the
// caller either way: a relay failure is logged, never propagated, because the
// flow's correctness depends only on the token.
func (f *ResetFlow) RequestReset(ctx context.Context, email string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.reset_request")

	account, err := f.Accounts.ByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	capability, _, err := f.Codec.Issue(account)
	if err != nil {
		l.Error("reset_request_error", "error", err)
		return "", fmt.Errorf("issuing reset capability: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		f.BaseURL, url.QueryEscape(capability), url.QueryEscape(account.Email))
	body := fmt.Sprintf("<p>Please click the following link to reset your password: <a href='%s'>Reset Password</a></p>", link)

	if err := f.Relay.Send(ctx, account.Email, "Password Reset Instructions", body); err != nil {
		l.Error("reset_mail_error", "error", err)
	}

	f.publish(ctx, account.ID.String(), map[string]any{
		"type":     events.TypePasswordResetIssued,
		"UserID":   account.ID.String(),
		"username": account.Username,
	})

	return capability, nil
}

// Redeem validates the capability and replaces the account's stored digest
// with a hash of newPassword. Every token-validation failure is collapsed to
// tokens.ErrInvalidToken on the way out; the specific cause is logged here
// and goes no further.
func (f *ResetFlow) Redeem(ctx context.Context, capability, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.reset_redeem")

	if newPassword == "" {
		return ErrValidation
	}

	claims, err := f.Codec.Validate(capability)
	if err != nil {
		l.Warn("reset_redeem_rejected", "error", err)
		return tokens.ErrInvalidToken
	}

	if claims.UserID == "" {
		return ErrMalformedCapability
	}
	accountID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ErrMalformedCapability
	}

	account, err := f.Accounts.ByID(ctx, accountID)
	if err != nil {
		return err
	}

	digest, err := f.Hasher.Hash(newPassword)
	if err != nil {
		l.Error("reset_redeem_error", "error", err)
		return fmt.Errorf("hashing password: %w", err)
	}

	account.PasswordHash = digest
	if err := f.Accounts.Save(ctx, account); err != nil {
		return err
	}

	f.publish(ctx, account.ID.String(), map[string]any{
		"type":     events.TypePasswordResetRedeemed,
		"UserID":   account.ID.String(),
		"username": account.Username,
	})

	return nil
}

func (f *ResetFlow) publish(ctx context.Context, key string, event map[string]any) {
	if err := f.Producer.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_error", "error", err)
	}
}
