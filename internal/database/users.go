package database

import (
	"context"
	"database/sql"
)

const getUserByClerkId = `
SELECT clerk_user_id, email, first_name, last_name, phone, role, created_at, updated_at
FROM users
WHERE clerk_user_id = $1
`

func (q *Queries) GetUserByClerkId(ctx context.Context, clerkUserID string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByClerkId, clerkUserID)

	return scanUser(row)
}

const createUser = `
INSERT INTO users (clerk_user_id, email, first_name, last_name, phone, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING clerk_user_id, email, first_name, last_name, phone, role, created_at, updated_at
`

type CreateUserParams struct {
	ClerkUserID string
	Email       string
	FirstName   string
	LastName    string
	Phone       sql.NullString
	Role        string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.ClerkUserID, arg.Email, arg.FirstName, arg.LastName, arg.Phone, arg.Role,
	)

	return scanUser(row)
}

const updateUserByClerkId = `
UPDATE users
SET email = $2, first_name = $3, last_name = $4, phone = $5, updated_at = now()
WHERE clerk_user_id = $1
RETURNING clerk_user_id, email, first_name, last_name, phone, role, created_at, updated_at
`

type UpdateUserByClerkIdParams struct {
	ClerkUserID string
	Email       string
	FirstName   string
	LastName    string
	Phone       sql.NullString
}

func (q *Queries) UpdateUserByClerkId(ctx context.Context, arg UpdateUserByClerkIdParams) (User, error) {
	row := q.db.QueryRowContext(ctx, updateUserByClerkId,
		arg.ClerkUserID, arg.Email, arg.FirstName, arg.LastName, arg.Phone,
	)

	return scanUser(row)
}

const deleteUserByClerkId = `DELETE FROM users WHERE clerk_user_id = $1`

func (q *Queries) DeleteUserByClerkId(ctx context.Context, clerkUserID string) error {
	_, err := q.db.ExecContext(ctx, deleteUserByClerkId, clerkUserID)

	return err
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ClerkUserID, &user.Email, &user.FirstName, &user.LastName,
		&user.Phone, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)

	return user, err
}
