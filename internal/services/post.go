package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kulewers/members-only/internal/models"
)

// PostStore is the subset of the post repository the service needs.
type PostStore interface {
	Create(ctx context.Context, title, body, creatorID string, createdAt time.Time) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	DeleteByID(ctx context.Context, id string) error
}

type PostService struct {
	posts PostStore
	now   func() time.Time
}

func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts, now: time.Now}
}

// List returns all posts in insertion order with creators attached.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Create(ctx context.Context, title, body, creatorID string) (*models.Post, error) {
	return s.posts.Create(ctx, title, body, creatorID, s.now().UTC())
}

// GetByID returns ErrNotFound for unknown and malformed ids alike.
func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	post, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return post, err
}

// Delete removes a post. Unknown and malformed ids succeed without effect.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	return s.posts.DeleteByID(ctx, id)
}
