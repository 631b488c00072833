package views

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/rs/zerolog"
)

// Fail renders the page matching err's kind. Validation errors are normally
// handled inline by the caller; here they become a 400 page.
func Fail(c *gin.Context, err error) {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		Error(c, http.StatusNotFound, errs.Message(err))
	case errs.KindForbidden:
		Error(c, http.StatusForbidden, errs.Message(err))
	case errs.KindAuth:
		c.Redirect(http.StatusFound, "/login/?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	case errs.KindValidation, errs.KindInvalidToken, errs.KindConflict:
		Error(c, http.StatusBadRequest, errs.Message(err))
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("❌ request failed")
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "")
	}
}

// ParamID reads a numeric path parameter. Anything else is a 404.
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		Error(c, http.StatusNotFound, "Page not found.")
		return 0, false
	}
	return uint(id), true
}

// IsAjax reports whether the request came from the storefront's scripts.
func IsAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// RedirectBack returns to the Referer when it points at this site, otherwise
// to fallback.
func RedirectBack(c *gin.Context, fallback string) {
	c.Redirect(http.StatusFound, SafeTarget(c, c.GetHeader("Referer"), fallback))
}

// SafeTarget accepts local paths and same-host URLs only.
func SafeTarget(c *gin.Context, target, fallback string) string {
	if target == "" {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil {
		return fallback
	}
	if u.Host == "" && u.Scheme == "" {
		if len(u.Path) == 0 || u.Path[0] != '/' || (len(u.Path) > 1 && u.Path[1] == '/') {
			return fallback
		}
		return u.RequestURI()
	}
	if u.Host != c.Request.Host || (u.Scheme != "http" && u.Scheme != "https") {
		return fallback
	}
	return u.RequestURI()
}
