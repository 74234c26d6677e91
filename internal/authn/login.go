package authn

import (
	"context"
	"strings"

	"account-service/internal/apperr"
	"account-service/internal/security"
	"account-service/internal/user/domain"
	"account-service/internal/user/repository"
)

// LoginType selects the lookup strategy for the login identifier.
type LoginType string

const (
	LoginTypeUsername LoginType = "USERNAME"
	LoginTypeEmail    LoginType = "EMAIL"
	LoginTypePhone    LoginType = "PHONE_NUMBER"
)

// LoginResult is a successful login: the issued token and the authenticated
// principal behind it.
type LoginResult struct {
	AccessToken string
	Principal   security.Principal
}

// LoginService authenticates credentials against the user store and issues
// tokens. The identifier is a composite "{loginType}:{loginId}".
type LoginService struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	hasher *security.Hasher
	tokens *security.TokenProvider
}

// NewLoginService returns a LoginService with the given dependencies.
func NewLoginService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
) *LoginService {
	return &LoginService{users: users, roles: roles, hasher: hasher, tokens: tokens}
}

// Login resolves the user named by identifier, verifies the password, and
// issues a token whose issuer claim is set to issuer (the login request
// URI). Malformed identifiers fail with COMMON_INVALID_PARAMETER, unknown
// users with USER_NOT_FOUND, and a wrong password with INVALID_CREDENTIALS.
func (s *LoginService) Login(ctx context.Context, identifier, password, issuer string) (*LoginResult, error) {
	typ, loginID, err := parseIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	user, err := s.lookup(ctx, typ, loginID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}

	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	roles, err := s.roles.FindByIDs(ctx, user.RoleIDs)
	if err != nil {
		return nil, err
	}
	roleNames := make([]string, 0, len(roles))
	for _, r := range roles {
		roleNames = append(roleNames, r.Name)
	}

	token, err := s.tokens.Issue(user.Username, issuer, roleNames)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: token,
		Principal:   security.Principal{Username: user.Username, Roles: roleNames},
	}, nil
}

func (s *LoginService) lookup(ctx context.Context, typ LoginType, loginID string) (*domain.User, error) {
	switch typ {
	case LoginTypeUsername:
		return s.users.FindByUsername(ctx, loginID)
	case LoginTypeEmail:
		return s.users.FindByEmail(ctx, loginID)
	case LoginTypePhone:
		return s.users.FindByPhoneNumber(ctx, loginID)
	default:
		return nil, apperr.Newf(apperr.CodeInvalidParameter, "unknown login type %q", typ)
	}
}

func parseIdentifier(identifier string) (LoginType, string, error) {
	parts := strings.Split(identifier, ":")
	if len(parts) != 2 {
		return "", "", apperr.New(apperr.CodeInvalidParameter, "login identifier must be {loginType}:{loginId}")
	}
	typ := LoginType(parts[0])
	switch typ {
	case LoginTypeUsername, LoginTypeEmail, LoginTypePhone:
	default:
		return "", "", apperr.Newf(apperr.CodeInvalidParameter, "unknown login type %q", parts[0])
	}
	if parts[1] == "" {
		return "", "", apperr.New(apperr.CodeInvalidParameter, "login id must not be empty")
	}
	return typ, parts[1], nil
}
