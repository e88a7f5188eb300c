package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreateThenList(t *testing.T) {
	posts := &fakePosts{}
	svc := NewPostService(posts)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	created, err := svc.Create(context.Background(), "Hi", "Hello there", "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", created.CreatorID)
	assert.True(t, created.Timestamp.Equal(fixed))

	_, err = svc.Create(context.Background(), "Second", "Another one", "u-2")
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Hi", list[0].Title)
	assert.Equal(t, "Second", list[1].Title)
}

func TestPostService_GetByID(t *testing.T) {
	posts := &fakePosts{}
	svc := NewPostService(posts)
	created, err := svc.Create(context.Background(), "Hi", "Hello there", "u-1")
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByID(context.Background(), "00000000-0000-0000-0000-000000000099")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostService_Delete_Idempotent(t *testing.T) {
	posts := &fakePosts{}
	svc := NewPostService(posts)
	created, err := svc.Create(context.Background(), "Hi", "Hello there", "u-1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.NoError(t, svc.Delete(context.Background(), "garbage"))
	assert.Empty(t, posts.posts)
}
