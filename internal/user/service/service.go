// Package service implements the user application operations: registration,
// password reset, and detail lookup. Challenge verification happens inside
// the operation; clearing happens only after the operation has committed, so
// a failed operation never consumes a live code.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"account-service/internal/apperr"
	"account-service/internal/authn"
	"account-service/internal/notify"
	"account-service/internal/security"
	"account-service/internal/user/domain"
	"account-service/internal/user/repository"
)

// CreateUserCommand carries the input for CreateUser.
type CreateUserCommand struct {
	Username             string
	Email                string
	PhoneNumber          string
	Password             string
	Name                 string
	Nickname             string
	AuthenticationNumber string
}

// ResetPasswordCommand carries the input for ResetPassword.
type ResetPasswordCommand struct {
	PhoneNumber          string
	NewPassword          string
	AuthenticationNumber string
}

// Service orchestrates user operations over the stores, the challenge
// manager, and the notifier.
type Service struct {
	challenges *authn.Manager
	hasher     *security.Hasher
	users      repository.UserRepository
	roles      repository.RoleRepository
	notifier   notify.Notifier
	log        *zap.Logger
}

// NewService returns a Service with the given dependencies.
func NewService(
	challenges *authn.Manager,
	hasher *security.Hasher,
	users repository.UserRepository,
	roles repository.RoleRepository,
	notifier notify.Notifier,
	log *zap.Logger,
) *Service {
	return &Service{
		challenges: challenges,
		hasher:     hasher,
		users:      users,
		roles:      roles,
		notifier:   notifier,
		log:        log,
	}
}

// CreateUser registers a new account. The username, email, and phone number
// must all be unused, and the CREATE_USER challenge for the phone number
// must verify. The challenge is cleared only after the user is persisted.
func (s *Service) CreateUser(ctx context.Context, cmd CreateUserCommand) (*domain.Info, error) {
	if u, err := s.users.FindByUsername(ctx, cmd.Username); err != nil {
		return nil, err
	} else if u != nil {
		return nil, apperr.New(apperr.CodeUserAlreadyExists, "a user with the same username already exists")
	}
	if u, err := s.users.FindByEmail(ctx, cmd.Email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, apperr.New(apperr.CodeUserAlreadyExists, "a user with the same email already exists")
	}
	if u, err := s.users.FindByPhoneNumber(ctx, cmd.PhoneNumber); err != nil {
		return nil, err
	} else if u != nil {
		return nil, apperr.New(apperr.CodeUserAlreadyExists, "a user with the same phone number already exists")
	}

	if err := s.challenges.VerifyChallenge(ctx, authn.OperationCreateUser, cmd.PhoneNumber, cmd.AuthenticationNumber); err != nil {
		return nil, err
	}

	role, err := s.roles.Find(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperr.ErrRoleNotFound
	}

	hash, err := s.hasher.Hash([]byte(cmd.Password))
	if err != nil {
		return nil, err
	}

	saved, err := s.users.Save(ctx, &domain.User{
		Username:     cmd.Username,
		Email:        cmd.Email,
		PhoneNumber:  cmd.PhoneNumber,
		PasswordHash: hash,
		Name:         cmd.Name,
		Nickname:     cmd.Nickname,
		RoleIDs:      []int64{role.ID},
	})
	if err != nil {
		return nil, err
	}

	// Post-commit step: the code is spent only once the account exists.
	if err := s.challenges.ClearChallenge(ctx, authn.OperationCreateUser, cmd.PhoneNumber); err != nil {
		s.log.Warn("failed to clear authentication challenge",
			zap.String("phone_number", cmd.PhoneNumber), zap.Error(err))
	}

	info := domain.InfoOf(saved)
	return &info, nil
}

// ResetPassword replaces the password of the account owning the phone
// number, after the RESET_PASSWORD challenge verifies. The challenge is
// cleared and the user notified only after the new hash is stored.
func (s *Service) ResetPassword(ctx context.Context, cmd ResetPasswordCommand) error {
	if err := s.challenges.VerifyChallenge(ctx, authn.OperationResetPassword, cmd.PhoneNumber, cmd.AuthenticationNumber); err != nil {
		return err
	}

	user, err := s.users.FindByPhoneNumber(ctx, cmd.PhoneNumber)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.ErrUserNotFound
	}

	hash, err := s.hasher.Hash([]byte(cmd.NewPassword))
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	if err := s.challenges.ClearChallenge(ctx, authn.OperationResetPassword, cmd.PhoneNumber); err != nil {
		s.log.Warn("failed to clear authentication challenge",
			zap.String("phone_number", cmd.PhoneNumber), zap.Error(err))
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.Send(sendCtx, user.PhoneNumber, "Your password has been reset."); err != nil {
			s.log.Warn("failed to send password reset notice",
				zap.String("target", user.PhoneNumber), zap.Error(err))
		}
	}()

	return nil
}

// FindDetail returns the account and resolved role names for username.
func (s *Service) FindDetail(ctx context.Context, username string) (*domain.DetailInfo, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}

	roles, err := s.roles.FindByIDs(ctx, user.RoleIDs)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return &domain.DetailInfo{Info: domain.InfoOf(user), Roles: names}, nil
}
