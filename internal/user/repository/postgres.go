package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"account-service/internal/user/domain"
)

// PostgresUserRepository implements UserRepository on a pgx pool.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository returns a user repository backed by db.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, username, email, phone_number, password, name, nickname, created_at, updated_at, deleted_at`

// Save inserts the user and its role assignments in one transaction and
// returns the stored user with its generated id and timestamps.
func (r *PostgresUserRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	saved := *u
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, email, phone_number, password, name, nickname)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.PhoneNumber, u.PasswordHash, u.Name, u.Nickname,
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, err
	}
	for _, roleID := range u.RoleIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`,
			saved.ID, roleID,
		); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *PostgresUserRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error) {
	return r.findBy(ctx, "phone_number", phoneNumber)
}

func (r *PostgresUserRepository) findBy(ctx context.Context, column, value string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = $1 AND deleted_at IS NULL`,
		value)

	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PhoneNumber, &u.PasswordHash,
		&u.Name, &u.Nickname, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT role_id FROM user_roles WHERE user_id = $1`, u.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var roleID int64
		if err := rows.Scan(&roleID); err != nil {
			return nil, err
		}
		u.RoleIDs = append(u.RoleIDs, roleID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePassword replaces the user's stored password hash.
func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`,
		passwordHash, time.Now().UTC(), userID,
	)
	return err
}

// PostgresRoleRepository implements RoleRepository on a pgx pool.
type PostgresRoleRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRoleRepository returns a role repository backed by db.
func NewPostgresRoleRepository(db *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

// Find returns the role with the given type name, or nil if not seeded.
func (r *PostgresRoleRepository) Find(ctx context.Context, typ domain.RoleType) (*domain.Role, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, string(typ))
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// FindByIDs returns the roles for the given ids, in id order. Unknown ids
// are silently skipped.
func (r *PostgresRoleRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, name FROM roles WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
