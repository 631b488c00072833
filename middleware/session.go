package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/auth"
	"github.com/junaidrashid-git/teazen/session"
	"github.com/junaidrashid-git/teazen/views"
	"github.com/rs/zerolog"
)

const sessionsKey = "teazen.sessions"

// Sessions loads the visitor's session from the signed cookie, minting a key
// for new visitors, and persists it after the handler ran. A cookie past half
// its lifetime is reissued and its stored data saved again, so active
// visitors stay signed in.
type Sessions struct {
	codec  *auth.SessionCodec
	store  session.Store
	secure bool
}

func NewSessions(codec *auth.SessionCodec, store session.Store, secure bool) *Sessions {
	return &Sessions{codec: codec, store: store, secure: secure}
}

func (s *Sessions) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := zerolog.Ctx(ctx)

		var (
			sess    *session.Session
			refresh bool
		)
		if raw, err := c.Cookie(auth.SessionCookie); err == nil {
			if sid, stale, err := s.codec.ParseRefresh(raw); err == nil {
				refresh = stale
				data, err := s.store.Load(ctx, sid)
				switch {
				case err == nil:
					sess = session.Loaded(sid, data)
				case errors.Is(err, session.ErrNotFound):
					// Signed by us but nothing stored yet.
					sess = session.Loaded(sid, &session.Data{})
				default:
					log.Error().Err(err).Msg("❌ load session")
				}
			}
		}
		switch {
		case sess == nil:
			refresh = false
			sess = session.New(auth.NewSessionKey())
			s.setCookie(c, sess.Key())
		case refresh:
			s.setCookie(c, sess.Key())
		}

		c.Set(sessionsKey, s)
		views.SetSession(c, sess)
		views.SetCSRF(c, s.codec.CSRFToken(sess.Key()))

		c.Next()

		for _, key := range sess.Retired() {
			if err := s.store.Delete(ctx, key); err != nil {
				log.Warn().Err(err).Msg("delete retired session")
			}
		}
		if sess.Dirty() || refresh {
			if err := s.store.Save(ctx, sess.Key(), sess.Data(), s.codec.TTL()); err != nil {
				log.Error().Err(err).Msg("❌ save session")
			}
		}
	}
}

func (s *Sessions) setCookie(c *gin.Context, key string) {
	value, err := s.codec.Issue(key)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("❌ sign session cookie")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, value, int(s.codec.TTL().Seconds()), "/", "", s.secure, true)
}

// RotateSession moves the visitor to a new session key, keeping its data.
// Login and logout call it before writing the response.
func RotateSession(c *gin.Context) {
	sess := views.Session(c)
	sess.Rotate(auth.NewSessionKey())
	v, ok := c.Get(sessionsKey)
	if !ok {
		return
	}
	s := v.(*Sessions)
	s.setCookie(c, sess.Key())
	views.SetCSRF(c, s.codec.CSRFToken(sess.Key()))
}
