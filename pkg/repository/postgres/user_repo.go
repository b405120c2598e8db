package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/PriyanshiDabral/Employee-Management/pkg/auth"
	pgdb "github.com/PriyanshiDabral/Employee-Management/pkg/storage/postgres"
)

const uniqueViolationCode = "23505"

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
type UserRepository struct {
	db pgdb.Queryer
}

func NewUserRepository(db pgdb.Queryer) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	exec := pgdb.QueryerFromContext(ctx, r.db)
	_, err := exec.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, strings.ToLower(user.Email), user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// GetAccountByEmail loads the user with the oldest employee profile it owns.
// Profile fields stay empty for users without one.
func (r *UserRepository) GetAccountByEmail(ctx context.Context, email string) (auth.Account, error) {
	exec := pgdb.QueryerFromContext(ctx, r.db)
	row := exec.QueryRow(ctx, `
		SELECT u.id, u.email, u.password_hash, u.role, u.created_at, u.updated_at,
		       e.name, e.department, e.role
		  FROM users u
		  LEFT JOIN employees e ON e.user_id = u.id
		 WHERE u.email = $1
		 ORDER BY e.created_at ASC NULLS LAST
		 LIMIT 1
	`, strings.ToLower(strings.TrimSpace(email)))
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (auth.Account, error) {
	var (
		acc          auth.Account
		role         string
		name         sql.NullString
		department   sql.NullString
		employeeRole sql.NullString
	)
	if err := row.Scan(
		&acc.ID,
		&acc.Email,
		&acc.PasswordHash,
		&role,
		&acc.CreatedAt,
		&acc.UpdatedAt,
		&name,
		&department,
		&employeeRole,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Account{}, auth.ErrNotFound
		}
		return auth.Account{}, err
	}
	acc.Role = auth.Role(role)
	acc.CreatedAt = acc.CreatedAt.UTC()
	acc.UpdatedAt = acc.UpdatedAt.UTC()
	acc.Name = name.String
	acc.Department = department.String
	acc.EmployeeRole = employeeRole.String
	return acc, nil
}
