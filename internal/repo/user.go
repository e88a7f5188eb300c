package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kulewers/members-only/internal/models"
)

// ErrDuplicateUsername is returned by Create when the unique constraint on
// users.username rejects the insert.
var ErrDuplicateUsername = errors.New("username already exists")

// uniqueViolation is the postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, username, password_hash, membership_status, admin`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	var status string
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &status, &user.Admin); err != nil {
		return nil, err
	}
	user.MembershipStatus = models.MembershipStatus(status)
	return user, nil
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string, status models.MembershipStatus, admin bool) (*models.User, error) {
	query := `
		INSERT INTO users (id, username, password_hash, membership_status, admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, uuid.NewString(), username, passwordHash, string(status), admin))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	return user, nil
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}

	return user, nil
}

// ==========================
// Username Exists
// ==========================
func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

// ==========================
// Set Membership Status
// ==========================

// SetMembershipStatus updates the status of one user. It returns
// sql.ErrNoRows when no user has the given id.
func (r *UserRepo) SetMembershipStatus(ctx context.Context, id string, status models.MembershipStatus) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET membership_status = $1 WHERE id = $2`, string(status), id,
	)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

// CountByStatus returns the number of users per membership status.
func (r *UserRepo) CountByStatus(ctx context.Context) (map[models.MembershipStatus]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT membership_status, COUNT(*) FROM users GROUP BY membership_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[models.MembershipStatus]int{
		models.MembershipGuest:  0,
		models.MembershipMember: 0,
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[models.MembershipStatus(status)] = n
	}
	return counts, rows.Err()
}
