package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kulewers/members-only/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type PostRepo struct {
	DB *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

// postSelect joins the creator so every read returns a populated post.
const postSelect = `
	SELECT p.id, p.title, p.body, p.creator_id, p.created_at,
	       u.id, u.username, u.membership_status, u.admin
	FROM posts p
	LEFT JOIN users u ON u.id = p.creator_id`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var (
		post      models.Post
		creatorID sql.NullString
		userID    sql.NullString
		username  sql.NullString
		status    sql.NullString
		admin     sql.NullBool
	)
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&creatorID,
		&post.Timestamp,
		&userID,
		&username,
		&status,
		&admin,
	); err != nil {
		return nil, err
	}
	post.CreatorID = creatorID.String
	if userID.Valid {
		post.Creator = &models.User{
			ID:               userID.String,
			Username:         username.String,
			MembershipStatus: models.MembershipStatus(status.String),
			Admin:            admin.Bool,
		}
	}
	return &post, nil
}

// ========================
// CREATE POST
// ========================

func (r *PostRepo) Create(ctx context.Context, title, body, creatorID string, createdAt time.Time) (*models.Post, error) {
	post := &models.Post{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO posts (id, title, body, creator_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, title, body, creator_id, created_at`,
		uuid.NewString(), title, body, creatorID, createdAt,
	).Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.CreatorID,
		&post.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

// ========================
// LIST POSTS
// ========================

// List returns every post in insertion order.
func (r *PostRepo) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx, postSelect+` ORDER BY p.created_at, p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// ========================
// GET POST BY ID
// ========================

func (r *PostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, err := scanPost(r.DB.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return post, nil
}

// ========================
// DELETE POST BY ID
// ========================

// DeleteByID removes the post. Deleting a missing post is not an error.
func (r *PostRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

func (r *PostRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}
