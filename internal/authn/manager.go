package authn

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"account-service/internal/apperr"
	"account-service/internal/cache"
	"account-service/internal/notify"
	"account-service/internal/user/domain"
)

// UserLookup is the minimal user store needed for existence preconditions.
// FindByPhoneNumber returns (nil, nil) when no user exists.
type UserLookup interface {
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error)
}

// Manager orchestrates authentication challenges. It holds no challenge
// state itself: the cache store owns all of it, and its TTL eviction is the
// sole expiry mechanism.
type Manager struct {
	users    UserLookup
	store    cache.Store
	notifier notify.Notifier
	ttl      time.Duration
	log      *zap.Logger
}

// NewManager returns a Manager storing challenges for ttl.
func NewManager(users UserLookup, store cache.Store, notifier notify.Notifier, ttl time.Duration, log *zap.Logger) *Manager {
	return &Manager{users: users, store: store, notifier: notifier, ttl: ttl, log: log}
}

// RequestChallenge checks the operation's existence precondition, then
// generates a code, stores it under the challenge key with the configured
// TTL, and sends it to phoneNumber. A repeated request overwrites the prior
// code and resets the TTL. The notification is sent in the background:
// failure to deliver is logged but never fails the request, and the code is
// already stored by then.
func (m *Manager) RequestChallenge(ctx context.Context, typ OperationType, phoneNumber string) (string, error) {
	if err := m.checkPrecondition(ctx, typ, phoneNumber); err != nil {
		return "", err
	}

	code, err := GenerateCode()
	if err != nil {
		return "", err
	}
	if err := m.store.Set(ctx, ChallengeKey(typ, phoneNumber), code, m.ttl); err != nil {
		return "", err
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		msg := fmt.Sprintf("Enter the authentication number [%s].", code)
		if err := m.notifier.Send(sendCtx, phoneNumber, msg); err != nil {
			m.log.Warn("failed to send authentication number",
				zap.String("target", phoneNumber),
				zap.String("type", string(typ)),
				zap.Error(err))
		}
	}()

	return code, nil
}

// VerifyChallenge compares code against the stored challenge. It fails with
// AUTHENTICATION_NUMBER_NOT_FOUND when no entry exists (expired or never
// requested) and AUTHENTICATION_NUMBER_MISMATCHED when the codes differ.
// Verification never consumes the code; the caller clears it explicitly
// after the dependent operation commits, so a failed or rolled-back
// operation does not lose a valid code.
func (m *Manager) VerifyChallenge(ctx context.Context, typ OperationType, phoneNumber, code string) error {
	stored, ok, err := m.store.Get(ctx, ChallengeKey(typ, phoneNumber))
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrChallengeNotFound
	}
	if stored != code {
		return apperr.ErrChallengeMismatch
	}
	return nil
}

// ClearChallenge deletes the challenge unconditionally. Idempotent:
// clearing an absent key is not an error.
func (m *Manager) ClearChallenge(ctx context.Context, typ OperationType, phoneNumber string) error {
	_, err := m.store.Delete(ctx, ChallengeKey(typ, phoneNumber))
	return err
}

func (m *Manager) checkPrecondition(ctx context.Context, typ OperationType, phoneNumber string) error {
	switch typ.Precondition() {
	case ExistenceMustExist:
		u, err := m.users.FindByPhoneNumber(ctx, phoneNumber)
		if err != nil {
			return err
		}
		if u == nil {
			return apperr.ErrUserNotFound
		}
	case ExistenceMustNotExist:
		u, err := m.users.FindByPhoneNumber(ctx, phoneNumber)
		if err != nil {
			return err
		}
		if u != nil {
			return apperr.ErrUserAlreadyExists
		}
	}
	return nil
}
