package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kulewers/members-only/internal/models"
	"github.com/kulewers/members-only/internal/repo"
)

// fakeUsers is an in-memory UserStore keyed by id.
type fakeUsers struct {
	byID   map[string]*models.User
	nextID int
	err    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, username, hash string, status models.MembershipStatus, admin bool) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Username == username {
			return nil, repo.ErrDuplicateUsername
		}
	}
	f.nextID++
	u := &models.User{ID: fmt.Sprintf("u-%d", f.nextID), Username: username, PasswordHash: hash, MembershipStatus: status, Admin: admin}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user %s: %w", id, sql.ErrNoRows)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get user %q: %w", username, sql.ErrNoRows)
}

func (f *fakeUsers) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUsers) SetMembershipStatus(_ context.Context, id string, status models.MembershipStatus) error {
	u, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.MembershipStatus = status
	return nil
}

func (f *fakeUsers) List(context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

// fakePosts keeps posts in insertion order.
type fakePosts struct {
	posts []models.Post
}

func (f *fakePosts) Create(_ context.Context, title, body, creatorID string, at time.Time) (*models.Post, error) {
	p := models.Post{ID: fmt.Sprintf("00000000-0000-0000-0000-%012d", len(f.posts)+1), Title: title, Body: body, CreatorID: creatorID, Timestamp: at}
	f.posts = append(f.posts, p)
	return &p, nil
}

func (f *fakePosts) List(context.Context) ([]models.Post, error) {
	return append([]models.Post(nil), f.posts...), nil
}

func (f *fakePosts) GetByID(_ context.Context, id string) (*models.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePosts) DeleteByID(_ context.Context, id string) error {
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return nil
}
