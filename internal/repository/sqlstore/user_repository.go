package sqlstore

import (
	"context"
	"fmt"

	"jobly/internal/domain"
	"jobly/internal/repository"
)

const (
	createUsersTableSQLite = `
CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	password TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL CHECK (instr(email, '@') > 1),
	is_admin BOOLEAN NOT NULL DEFAULT FALSE
);
`
	createUsersTablePostgres = `
CREATE TABLE IF NOT EXISTS users (
	username VARCHAR(25) PRIMARY KEY,
	password TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL CHECK (position('@' IN email) > 1),
	is_admin BOOLEAN NOT NULL DEFAULT FALSE
);
`
	userColumns = `username, first_name, last_name, email, is_admin, password`
)

var userColumnNames = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.db.ddl(createUsersTableSQLite, createUsersTablePostgres)); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, password, first_name, last_name, email, is_admin)
VALUES ($1, $2, $3, $4, $5, $6)`,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.IsAdmin,
	)
	if err != nil {
		switch classify(err) {
		case uniqueViolation:
			return domain.BadRequest("Duplicate username: %s", user.Username)
		case checkViolation:
			return domain.BadRequest("Invalid user data: %s", user.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE username = $1`,
		username,
	)

	user, err := scanUser(row)
	if notFound(err) {
		return nil, domain.NotFound("No user: %s", username)
	}
	return user, err
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+userColumns+`
FROM users
ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error) {
	setCols, values, err := PartialUpdate(userPatchFields(patch), userColumnNames)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
UPDATE users
SET %s
WHERE username = $%d
RETURNING %s`, setCols, len(values)+1, userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, append(values, username)...))
	switch {
	case notFound(err):
		return nil, domain.NotFound("No user: %s", username)
	case classify(err) == checkViolation:
		return nil, domain.BadRequest("Invalid user data: %s", username)
	}
	return user, err
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("user delete rows affected: %w", err)
	}
	if aff == 0 {
		return domain.NotFound("No user: %s", username)
	}
	return nil
}

func userPatchFields(patch domain.UserPatch) []Field {
	var fields []Field
	if patch.FirstName != nil {
		fields = append(fields, Field{Name: "firstName", Value: *patch.FirstName})
	}
	if patch.LastName != nil {
		fields = append(fields, Field{Name: "lastName", Value: *patch.LastName})
	}
	if patch.Email != nil {
		fields = append(fields, Field{Name: "email", Value: *patch.Email})
	}
	if patch.Password != nil {
		fields = append(fields, Field{Name: "password", Value: *patch.Password})
	}
	if patch.IsAdmin != nil {
		fields = append(fields, Field{Name: "isAdmin", Value: *patch.IsAdmin})
	}
	return fields
}

func scanUser(scanner interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := scanner.Scan(
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.IsAdmin,
		&user.PasswordHash,
	); err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
