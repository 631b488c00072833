package userControllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/middleware"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
	"github.com/rs/zerolog"
)

// signIn binds the session to the user under a new key.
func signIn(c *gin.Context, user *models.User) {
	middleware.RotateSession(c)
	views.Session(c).SetUserID(user.ID)
	zerolog.Ctx(c.Request.Context()).Info().Uint("user_id", user.ID).Msg("🔑 signed in")
}

// GET|POST /login/
func Login(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := c.Query("next")
		if c.Request.Method == http.MethodPost {
			next = c.DefaultPostForm("next", next)
		}
		if views.CurrentUser(c) != nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
		data := gin.H{"next": next}
		if c.Request.Method != http.MethodPost {
			views.Render(c, http.StatusOK, "auth/login", "Log in", data)
			return
		}

		username := strings.TrimSpace(c.PostForm("username"))
		data["username"] = username
		user, err := identity.Authenticate(c.Request.Context(), username, c.PostForm("password"))
		if err != nil {
			if !errs.Is(err, errs.KindAuth) {
				views.Fail(c, err)
				return
			}
			data["error"] = errs.Message(err)
			views.Render(c, http.StatusOK, "auth/login", "Log in", data)
			return
		}

		signIn(c, user)
		views.Flash(c, "success", fmt.Sprintf("Welcome %s!", user.Username))
		c.Redirect(http.StatusFound, views.SafeTarget(c, next, "/"))
	}
}

// GET|POST /register/
func Register(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if views.CurrentUser(c) != nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
		var in services.RegisterInput
		if c.Request.Method != http.MethodPost {
			views.Render(c, http.StatusOK, "auth/register", "Register", gin.H{"form": in})
			return
		}

		if err := c.ShouldBind(&in); err != nil {
			views.Fail(c, errs.Validation("Invalid form submission.", nil))
			return
		}
		user, err := identity.Register(c.Request.Context(), in)
		if err != nil {
			if !errs.Is(err, errs.KindValidation) {
				views.Fail(c, err)
				return
			}
			views.Render(c, http.StatusOK, "auth/register", "Register", gin.H{
				"form":   in,
				"error":  errs.Message(err),
				"errors": errs.FieldErrors(err),
			})
			return
		}

		signIn(c, user)
		views.Flash(c, "success", "Registration successful! Welcome to TeaZen.")
		c.Redirect(http.StatusFound, "/")
	}
}

// GET|POST /logout/
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := views.Session(c)
		sess.Clear()
		middleware.RotateSession(c)
		views.Flash(c, "success", "You have been logged out.")
		c.Redirect(http.StatusFound, "/")
	}
}

// GET|POST /password-reset/
func PasswordReset(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			views.Render(c, http.StatusOK, "auth/password_reset", "Reset password", nil)
			return
		}
		email := strings.TrimSpace(c.PostForm("email"))
		if err := identity.RequestPasswordReset(c.Request.Context(), email); err != nil {
			views.Fail(c, err)
			return
		}
		views.Flash(c, "success", services.ResetRequestedMessage)
		c.Redirect(http.StatusFound, "/password-reset/")
	}
}

// GET|POST /reset/:uid/:token/
func PasswordResetConfirm(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, token := c.Param("uid"), c.Param("token")
		invalid := func() {
			views.Render(c, http.StatusOK, "auth/password_reset_confirm", "Reset password", gin.H{"valid": false})
		}

		if _, err := identity.CheckResetLink(c.Request.Context(), uid, token); err != nil {
			if errs.Is(err, errs.KindInvalidToken) {
				invalid()
				return
			}
			views.Fail(c, err)
			return
		}
		if c.Request.Method != http.MethodPost {
			views.Render(c, http.StatusOK, "auth/password_reset_confirm", "Reset password", gin.H{"valid": true})
			return
		}

		err := identity.ConfirmPasswordReset(c.Request.Context(), uid, token,
			c.PostForm("new_password1"), c.PostForm("new_password2"))
		switch {
		case err == nil:
			views.Flash(c, "success", "Your password has been reset.")
			c.Redirect(http.StatusFound, "/reset/done/")
		case errs.Is(err, errs.KindValidation):
			views.Render(c, http.StatusOK, "auth/password_reset_confirm", "Reset password", gin.H{
				"valid":  true,
				"errors": errs.FieldErrors(err),
			})
		case errs.Is(err, errs.KindInvalidToken):
			invalid()
		default:
			views.Fail(c, err)
		}
	}
}

// GET /reset/done/
func PasswordResetComplete() gin.HandlerFunc {
	return func(c *gin.Context) {
		views.Render(c, http.StatusOK, "auth/password_reset_complete", "Password reset", nil)
	}
}
