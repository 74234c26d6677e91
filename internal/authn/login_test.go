package authn

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"account-service/internal/apperr"
	"account-service/internal/security"
	"account-service/internal/user/domain"
)

type memUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func (r *memUserRepo) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *u
	saved.ID = int64(len(r.users) + 1)
	saved.CreatedAt = time.Now().UTC()
	saved.UpdatedAt = saved.CreatedAt
	r.users = append(r.users, &saved)
	return &saved, nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *memUserRepo) FindByPhoneNumber(ctx context.Context, phone string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.PhoneNumber == phone })
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = hash
		}
	}
	return nil
}

func (r *memUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.DeletedAt == nil && match(u) {
			return u, nil
		}
	}
	return nil, nil
}

type memRoleRepo struct {
	roles []domain.Role
}

func (r *memRoleRepo) Find(ctx context.Context, typ domain.RoleType) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == string(typ) {
			return &role, nil
		}
	}
	return nil, nil
}

func (r *memRoleRepo) FindByIDs(ctx context.Context, ids []int64) ([]domain.Role, error) {
	var out []domain.Role
	for _, id := range ids {
		for _, role := range r.roles {
			if role.ID == id {
				out = append(out, role)
			}
		}
	}
	return out, nil
}

func newTestLoginService(t *testing.T) (*LoginService, *memUserRepo) {
	t.Helper()
	hasher := security.NewHasher(4)
	hash, err := hasher.Hash([]byte("password1"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	users := &memUserRepo{users: []*domain.User{{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PhoneNumber:  "01011112222",
		PasswordHash: hash,
		RoleIDs:      []int64{1},
	}}}
	roles := &memRoleRepo{roles: []domain.Role{{ID: 1, Name: "ROLE_USER"}}}
	tokens, err := security.NewTestTokenProvider(10 * time.Minute)
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	return NewLoginService(users, roles, hasher, tokens), users
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestLoginService(t)

	res, err := svc.Login(context.Background(), "USERNAME:alice", "password1", "/api/v1/login")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AccessToken == "" {
		t.Fatal("empty access token")
	}
	if res.Principal.Username != "alice" {
		t.Errorf("principal username = %q", res.Principal.Username)
	}

	tokens, _ := security.NewTestTokenProvider(10 * time.Minute)
	info, err := tokens.Verify(res.AccessToken)
	if err != nil {
		t.Fatalf("Verify issued token: %v", err)
	}
	if info.Subject != "alice" {
		t.Errorf("subject = %q, want alice", info.Subject)
	}
	if info.Issuer != "/api/v1/login" {
		t.Errorf("issuer = %q", info.Issuer)
	}
	if !reflect.DeepEqual(info.Roles, []string{"ROLE_USER"}) {
		t.Errorf("roles = %v, want [ROLE_USER]", info.Roles)
	}
}

func TestLogin_ByEmailAndPhone(t *testing.T) {
	svc, _ := newTestLoginService(t)
	ctx := context.Background()

	for _, id := range []string{"EMAIL:alice@example.com", "PHONE_NUMBER:01011112222"} {
		if _, err := svc.Login(ctx, id, "password1", "/api/v1/login"); err != nil {
			t.Errorf("Login(%q): %v", id, err)
		}
	}
}

func TestLogin_MalformedIdentifier(t *testing.T) {
	svc, _ := newTestLoginService(t)
	ctx := context.Background()

	for _, id := range []string{"BOGUS:alice", "alice", "USERNAME:", "USERNAME:alice:extra", ""} {
		_, err := svc.Login(ctx, id, "password1", "/api/v1/login")
		if !errors.Is(err, apperr.ErrInvalidParameter) {
			t.Errorf("Login(%q) err = %v, want ErrInvalidParameter", id, err)
		}
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestLoginService(t)

	_, err := svc.Login(context.Background(), "USERNAME:bob", "password1", "/api/v1/login")
	if !errors.Is(err, apperr.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestLoginService(t)

	_, err := svc.Login(context.Background(), "USERNAME:alice", "nope", "/api/v1/login")
	if !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}
