package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
)

// ResetTokens issues password-reset links. A token carries a fingerprint of
// the user's password hash and last login, so it stops verifying once either
// changes.
type ResetTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewResetTokens(secret string, ttl time.Duration) *ResetTokens {
	return &ResetTokens{secret: []byte("reset:" + secret), ttl: ttl, now: time.Now}
}

// WithClock is used by tests to move time forward.
func (r *ResetTokens) WithClock(now func() time.Time) *ResetTokens {
	cp := *r
	cp.now = now
	return &cp
}

type resetClaims struct {
	Fingerprint string `json:"fp"`
	jwt.RegisteredClaims
}

func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

func DecodeUID(uid string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return 0, errs.InvalidToken("invalid reset link")
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.InvalidToken("invalid reset link")
	}
	return uint(id), nil
}

func (r *ResetTokens) fingerprint(u *models.User) string {
	var last int64
	if u.LastLogin != nil {
		last = u.LastLogin.Unix()
	}
	mac := hmac.New(sha256.New, r.secret)
	fmt.Fprintf(mac, "%d|%s|%d", u.ID, u.PasswordHash, last)
	return hex.EncodeToString(mac.Sum(nil))
}

// Issue returns the uid and token path segments for the user's reset link.
func (r *ResetTokens) Issue(u *models.User) (uid, token string, err error) {
	now := r.now()
	claims := resetClaims{
		Fingerprint: r.fingerprint(u),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.ttl)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", "", err
	}
	return EncodeUID(u.ID), token, nil
}

// Verify checks the token against the user's current state.
func (r *ResetTokens) Verify(u *models.User, token string) error {
	var claims resetClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(r.now))
	if err != nil {
		return errs.InvalidToken("the reset link is invalid or has expired")
	}
	if claims.Subject != strconv.FormatUint(uint64(u.ID), 10) ||
		!hmac.Equal([]byte(claims.Fingerprint), []byte(r.fingerprint(u))) {
		return errs.InvalidToken("the reset link is invalid or has already been used")
	}
	return nil
}
