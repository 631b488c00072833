package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_FlashesAndRotate(t *testing.T) {
	s := New("a")
	assert.True(t, s.Fresh())
	assert.False(t, s.Dirty())

	s.AddFlash("success", "Added to cart")
	s.SetUserID(3)
	assert.True(t, s.Dirty())

	s.Rotate("b")
	assert.Equal(t, "b", s.Key())
	assert.Equal(t, []string{"a"}, s.Retired())
	assert.EqualValues(t, 3, s.UserID())

	flashes := s.PopFlashes()
	require.Len(t, flashes, 1)
	assert.Equal(t, "Added to cart", flashes[0].Message)
	assert.Empty(t, s.PopFlashes())

	s.Clear()
	assert.Zero(t, s.UserID())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	data := &Data{UserID: 9, Flashes: []Flash{{Level: "info", Message: "hi"}}}
	require.NoError(t, store.Save(ctx, "k", data, time.Minute))
	data.Flashes[0].Message = "mutated"

	got, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.EqualValues(t, 9, got.UserID)
	assert.Equal(t, "hi", got.Flashes[0].Message)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, "k2", &Data{}, 0))
	require.NoError(t, store.Delete(ctx, "k2"))
	_, err = store.Load(ctx, "k2")
	assert.ErrorIs(t, err, ErrNotFound)
}
