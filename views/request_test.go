package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/session"
	"github.com/stretchr/testify/assert"
)

func TestSafeTarget(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "http://teazen.local/cart/add/1/", nil)

	cases := map[string]string{
		"":                                      "/",
		"/product/tra-sen/":                     "/product/tra-sen/",
		"http://teazen.local/product/x/?a=1":    "/product/x/?a=1",
		"https://evil.example/phish":            "/",
		"//evil.example/phish":                  "/",
		"javascript:alert(1)":                   "/",
		"relative/path":                         "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, SafeTarget(c, in, "/"), in)
	}
}

func TestParamID(t *testing.T) {
	c, w := newContext(t)
	SetSession(c, session.New("k"))
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	_, ok := ParamID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c2, _ := newContext(t)
	c2.Params = gin.Params{{Key: "id", Value: "7"}}
	id, ok := ParamID(c2, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
}

func TestFailMapsKinds(t *testing.T) {
	for kind, want := range map[error]int{
		errs.NotFound("No Product matches the given query."): http.StatusNotFound,
		errs.Forbidden("no"):                                http.StatusForbidden,
		errs.InvalidToken("bad link"):                       http.StatusBadRequest,
		assert.AnError:                                      http.StatusInternalServerError,
	} {
		c, w := newContext(t)
		SetSession(c, session.New("k"))
		Fail(c, kind)
		assert.Equal(t, want, w.Code, kind.Error())
	}

	c, w := newContext(t)
	c.Request = httptest.NewRequest(http.MethodGet, "/profile/", nil)
	Fail(c, errs.Auth("login"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/?next=%2Fprofile%2F", w.Header().Get("Location"))
}
