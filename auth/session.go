package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie carrying the signed session key.
const SessionCookie = "teazen_session"

var ErrInvalidSession = errors.New("invalid session token")

// SessionCodec signs session keys into cookie values and derives the CSRF
// token bound to each key.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	return &SessionCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *SessionCodec) TTL() time.Duration { return c.ttl }

// WithClock is used by tests to move time forward.
func (c *SessionCodec) WithClock(now func() time.Time) *SessionCodec {
	cp := *c
	cp.now = now
	return &cp
}

// NewSessionKey mints a fresh key for a new visitor or a rotated session.
func NewSessionKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

func (c *SessionCodec) Issue(sid string) (string, error) {
	now := c.now()
	claims := sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Parse returns the session key carried by a cookie value.
func (c *SessionCodec) Parse(value string) (string, error) {
	sid, _, err := c.ParseRefresh(value)
	return sid, err
}

// ParseRefresh is Parse that also reports whether less than half of the
// cookie's lifetime is left, in which case it should be reissued.
func (c *SessionCodec) ParseRefresh(value string) (sid string, refresh bool, err error) {
	var claims sessionClaims
	_, err = jwt.ParseWithClaims(value, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil || claims.SID == "" {
		return "", false, ErrInvalidSession
	}
	if claims.ExpiresAt == nil {
		return claims.SID, true, nil
	}
	return claims.SID, claims.ExpiresAt.Sub(c.now()) < c.ttl/2, nil
}

// CSRFToken is an HMAC of the session key, so it changes whenever the key
// rotates.
func (c *SessionCodec) CSRFToken(sid string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte("csrf:" + sid))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *SessionCodec) ValidCSRF(sid, token string) bool {
	if sid == "" || token == "" {
		return false
	}
	return hmac.Equal([]byte(c.CSRFToken(sid)), []byte(token))
}
