package auth

import (
	"testing"
	"time"

	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPassword(t *testing.T) {
	hash, err := HashPassword("green-tea-42", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "green-tea-42"))
	assert.False(t, CheckPassword(hash, "green-tea-43"))
	assert.False(t, CheckPassword("not-a-hash", "green-tea-42"))
}

func TestSessionCodec_RoundTrip(t *testing.T) {
	codec := NewSessionCodec("secret", time.Hour)
	sid := NewSessionKey()
	assert.Len(t, sid, 32)

	value, err := codec.Issue(sid)
	require.NoError(t, err)
	got, err := codec.Parse(value)
	require.NoError(t, err)
	assert.Equal(t, sid, got)

	_, err = NewSessionCodec("other", time.Hour).Parse(value)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = codec.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionCodec_Expired(t *testing.T) {
	codec := NewSessionCodec("secret", time.Minute)
	value, err := codec.Issue("abc")
	require.NoError(t, err)

	codec.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = codec.Parse(value)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionCodec_RefreshAfterHalfLife(t *testing.T) {
	start := time.Now()
	codec := NewSessionCodec("secret", time.Hour).WithClock(func() time.Time { return start })
	value, err := codec.Issue("abc")
	require.NoError(t, err)

	tests := []struct {
		name    string
		elapsed time.Duration
		refresh bool
	}{
		{"fresh", time.Minute, false},
		{"just under half", 29 * time.Minute, false},
		{"past half", 31 * time.Minute, true},
		{"nearly expired", 59 * time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := codec.WithClock(func() time.Time { return start.Add(tt.elapsed) })
			sid, refresh, err := at.ParseRefresh(value)
			require.NoError(t, err)
			assert.Equal(t, "abc", sid)
			assert.Equal(t, tt.refresh, refresh)
		})
	}
}

func TestCSRFToken_BoundToSession(t *testing.T) {
	codec := NewSessionCodec("secret", time.Hour)
	token := codec.CSRFToken("sid-1")
	assert.True(t, codec.ValidCSRF("sid-1", token))
	assert.False(t, codec.ValidCSRF("sid-2", token))
	assert.False(t, codec.ValidCSRF("sid-1", ""))
}

func TestUID(t *testing.T) {
	id, err := DecodeUID(EncodeUID(42))
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	_, err = DecodeUID("!!")
	assert.True(t, errs.Is(err, errs.KindInvalidToken))
	_, err = DecodeUID(EncodeUID(0))
	assert.True(t, errs.Is(err, errs.KindInvalidToken))
}

func TestResetTokens(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tokens := NewResetTokens("secret", 72*time.Hour).WithClock(func() time.Time { return start })
	user := &models.User{ID: 7, PasswordHash: "hash-1"}

	uid, token, err := tokens.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, EncodeUID(7), uid)
	require.NoError(t, tokens.Verify(user, token))

	t.Run("other user", func(t *testing.T) {
		other := &models.User{ID: 8, PasswordHash: "hash-1"}
		assert.True(t, errs.Is(tokens.Verify(other, token), errs.KindInvalidToken))
	})

	t.Run("single use after password change", func(t *testing.T) {
		changed := *user
		changed.PasswordHash = "hash-2"
		assert.True(t, errs.Is(tokens.Verify(&changed, token), errs.KindInvalidToken))
	})

	t.Run("stale after login", func(t *testing.T) {
		changed := *user
		login := start.Add(time.Hour)
		changed.LastLogin = &login
		assert.True(t, errs.Is(tokens.Verify(&changed, token), errs.KindInvalidToken))
	})

	t.Run("expired", func(t *testing.T) {
		later := tokens.WithClock(func() time.Time { return start.Add(73 * time.Hour) })
		assert.True(t, errs.Is(later.Verify(user, token), errs.KindInvalidToken))
	})
}
