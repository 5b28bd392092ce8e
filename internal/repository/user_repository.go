package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"kudos/api/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user and its profile in one transaction. A taken
// email maps to ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertUser = `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, insertUser, user.ID, user.Email, user.PasswordHash); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}

	const insertProfile = `
		INSERT INTO profiles (user_id, first_name, last_name, department, profile_pic)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, insertProfile,
		user.ID,
		user.Profile.FirstName,
		user.Profile.LastName,
		user.Profile.Department,
		user.Profile.ProfilePic,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const userColumns = `
	u.id, u.email, u.password_hash, u.created_at, u.updated_at,
	p.first_name, p.last_name, p.department, p.profile_pic
`

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Profile.FirstName,
		&user.Profile.LastName,
		&user.Profile.Department,
		&user.Profile.ProfilePic,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users u JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users u JOIN profiles p ON p.user_id = u.id
		WHERE u.email = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// ListOthers returns every user except the given one, ordered by first
// name ascending. Used to populate the colleague roster.
func (r *UserRepository) ListOthers(ctx context.Context, excludeID string) ([]models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users u JOIN profiles p ON p.user_id = u.id
		WHERE u.id != $1
		ORDER BY p.first_name ASC
	`

	rows, err := r.pool.Query(ctx, query, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update writes the email and the non-nil profile fields.
func (r *UserRepository) Update(ctx context.Context, id string, email string, patch models.ProfilePatch) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const updateUser = `
		UPDATE users SET email = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := tx.Exec(ctx, updateUser, id, email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	const updateProfile = `
		UPDATE profiles SET
			first_name = COALESCE($2, first_name),
			last_name  = COALESCE($3, last_name),
			department = COALESCE($4, department)
		WHERE user_id = $1
	`
	if _, err := tx.Exec(ctx, updateProfile, id, patch.FirstName, patch.LastName, patch.Department); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) UpdateProfilePic(ctx context.Context, id string, url string) error {
	const query = `UPDATE profiles SET profile_pic = $2 WHERE user_id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, url)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the user; the profile and all authored or received
// kudos go with it via FK cascade.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListProfilePics returns every avatar URL currently referenced by a
// profile. Used by the orphan sweep.
func (r *UserRepository) ListProfilePics(ctx context.Context) ([]string, error) {
	const query = `SELECT profile_pic FROM profiles WHERE profile_pic IS NOT NULL`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}
