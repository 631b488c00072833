package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
	"github.com/rs/zerolog"
)

const LoginPath = "/login/"

type UserLoader interface {
	CurrentUser(ctx context.Context, id uint) (*models.User, error)
}

// Identity resolves the signed-in user from the session. Sessions pointing
// at a deleted or inactive account are signed out.
func Identity(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := views.Session(c)
		if id := sess.UserID(); id != 0 {
			user, err := users.CurrentUser(c.Request.Context(), id)
			switch {
			case err != nil:
				zerolog.Ctx(c.Request.Context()).Error().Err(err).Uint("user_id", id).Msg("❌ load current user")
			case user == nil:
				sess.SetUserID(0)
			default:
				views.SetUser(c, user)
			}
		}
		c.Next()
	}
}

// LoginURL points at the login page, coming back to next afterwards.
func LoginURL(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(next)
}

func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if views.CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin lets staff and superusers through. Anonymous visitors go to
// the login page; signed-in customers get a 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := services.RequireAdmin(views.CurrentUser(c))
		switch {
		case err == nil:
			c.Next()
		case errs.Is(err, errs.KindAuth):
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
		default:
			views.Error(c, http.StatusForbidden, errs.Message(err))
		}
	}
}
