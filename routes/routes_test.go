package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/auth"
	"github.com/junaidrashid-git/teazen/config"
	adminController "github.com/junaidrashid-git/teazen/controllers/admin"
	"github.com/junaidrashid-git/teazen/mailer"
	"github.com/junaidrashid-git/teazen/media"
	"github.com/junaidrashid-git/teazen/metrics"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/session"
	"github.com/junaidrashid-git/teazen/store/memory"
	"github.com/junaidrashid-git/teazen/web"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const metricsKey = "scrape-me"

var csrfMeta = regexp.MustCompile(`<meta name="csrf-token" content="([0-9a-f]+)">`)

type testApp struct {
	server *httptest.Server
	svc    *services.Services
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memory.New()
	m := metrics.New()
	hub := adminController.NewHub(zerolog.Nop())
	svc := services.New(st, services.Options{
		Reset:    auth.NewResetTokens("test-secret", time.Hour),
		Mailer:   &mailer.Recorder{},
		Events:   services.MultiEvents{m, hub},
		Identity: services.IdentityOptions{SiteURL: "http://tea.test", BcryptCost: bcrypt.MinCost},
	})

	r := gin.New()
	err := SetupRoutes(r, &Deps{
		Config: &config.Config{
			SessionSecret:     "test-secret",
			MetricsAPIKey:     metricsKey,
			AuthRatePerMinute: 0,
		},
		Log:      zerolog.Nop(),
		Store:    st,
		Services: svc,
		Sessions: session.NewMemoryStore(),
		Codec:    auth.NewSessionCodec("test-secret", time.Hour),
		Metrics:  m,
		Hub:      hub,
		Uploads:  media.NewStore(t.TempDir()),
		Web:      web.FS,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testApp{server: srv, svc: svc}
}

// browser keeps cookies and does not follow redirects.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
	csrf   string
}

func (a *testApp) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: a.server.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	if m := csrfMeta.FindStringSubmatch(string(body)); m != nil {
		b.csrf = m[1]
	}
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if b.csrf != "" && form.Get("csrf_token") == "" {
		form.Set("csrf_token", b.csrf)
	}
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) ajax(path string) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.base+path, nil)
	require.NoError(b.t, err)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-CSRF-Token", b.csrf)
	return b.do(req)
}

func (b *browser) login(username, password string) {
	b.t.Helper()
	b.get("/login/")
	resp, _ := b.post("/login/", url.Values{"username": {username}, "password": {password}})
	require.Equal(b.t, http.StatusFound, resp.StatusCode)
	require.Equal(b.t, "/", resp.Header.Get("Location"))
	// the key rotated, so pick up the new token
	b.get("/")
}

func (a *testApp) product(t *testing.T, title, slug string, price int64) *models.Product {
	t.Helper()
	p, err := a.svc.Products.Create(context.Background(), &services.ProductForm{
		Title: title, Slug: slug, Price: fmt.Sprint(price),
	})
	require.NoError(t, err)
	return p
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	resp, body := app.browser(t).get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestMetricsRequireAPIKey(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	resp, _ := b.get("/metrics")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, app.server.URL+"/metrics", nil)
	require.NoError(t, err)
	req.Header.Set("X-API-KEY", metricsKey)
	resp, body := b.do(req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "teazen_http_requests_total")
}

func TestHomeAndProductPages(t *testing.T) {
	app := newTestApp(t)
	app.product(t, "Lotus Green", "lotus-green", 350000)
	b := app.browser(t)

	resp, body := b.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Lotus Green")
	assert.NotEmpty(t, b.csrf)

	resp, body = b.get("/product/lotus-green/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "350.000 ₫")

	resp, _ = b.get("/product/missing/")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = b.get("/no/such/page/")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGuestCartPersistsAcrossRequests(t *testing.T) {
	app := newTestApp(t)
	p := app.product(t, "Oolong", "oolong", 200000)
	b := app.browser(t)
	b.get("/")

	path := fmt.Sprintf("/cart/add/%d/", p.ID)
	var out struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		CartTotal int    `json:"cart_total"`
	}

	resp, body := b.ajax(path)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.True(t, out.Success)
	assert.Equal(t, `Added "Oolong" to your cart!`, out.Message)
	assert.Equal(t, 1, out.CartTotal)

	_, body = b.ajax(path)
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, 2, out.CartTotal)

	resp, body = b.get("/cart/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "400.000 ₫")

	resp, body = b.ajax("/cart/add/9999/")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, `"success":false`)
}

func TestCSRFRejectsMissingToken(t *testing.T) {
	app := newTestApp(t)
	p := app.product(t, "Oolong", "oolong", 200000)
	b := app.browser(t)
	b.get("/")

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/cart/add/%d/", app.server.URL, p.ID), nil)
	require.NoError(t, err)
	resp, body := b.do(req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "CSRF verification failed")
}

func TestRegisterLoginLogout(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	b.get("/register/")
	resp, _ := b.post("/register/", url.Values{
		"email":     {"linh@tea.test"},
		"password1": {"sencha-2024"},
		"password2": {"sencha-2024"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp, body := b.get("/profile/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "linh")

	resp, _ = b.post("/logout/", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp, _ = b.get("/profile/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login/?next=%2Fprofile%2F", resp.Header.Get("Location"))

	b.get("/login/")
	_, body = b.post("/login/", url.Values{"username": {"linh"}, "password": {"wrong-password"}})
	assert.Contains(t, body, "Invalid username or password.")

	b.login("linh@tea.test", "sencha-2024")
	resp, _ = b.get("/profile/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterShowsFieldErrors(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	b.get("/register/")
	resp, body := b.post("/register/", url.Values{
		"email":     {"linh@tea.test"},
		"password1": {"sencha-2024"},
		"password2": {"matcha-2024"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "The two password fields didn")
}

func TestManageRequiresAdmin(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	anon := app.browser(t)
	resp, _ := anon.get("/manage/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login/?next="))

	_, err := app.svc.Identity.Register(ctx, services.RegisterInput{
		Email: "guest@tea.test", Password: "sencha-2024", PasswordConfirm: "sencha-2024",
	})
	require.NoError(t, err)
	customer := app.browser(t)
	customer.login("guest", "sencha-2024")
	resp, _ = customer.get("/manage/")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, err = app.svc.Identity.CreateAdmin(ctx, "boss@tea.test", "sencha-2024")
	require.NoError(t, err)
	admin := app.browser(t)
	admin.login("boss", "sencha-2024")
	resp, _ = admin.get("/manage/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminProductForm(t *testing.T) {
	app := newTestApp(t)
	app.product(t, "Lotus Green", "lotus-green", 350000)
	_, err := app.svc.Identity.CreateAdmin(context.Background(), "boss@tea.test", "sencha-2024")
	require.NoError(t, err)

	b := app.browser(t)
	b.login("boss", "sencha-2024")
	b.get("/manage/products/add/")

	resp, body := b.post("/manage/products/add/", url.Values{
		"title": {"Another Lotus"},
		"slug":  {"lotus-green"},
		"price": {"100000"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Product with this slug already exists.")

	resp, _ = b.post("/manage/products/add/", url.Values{
		"title": {"Jasmine Pearl"},
		"price": {"420000"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/manage/products/", resp.Header.Get("Location"))

	p, err := app.svc.Catalog.GetProductBySlug(context.Background(), "jasmine-pearl")
	require.NoError(t, err)
	assert.Equal(t, "Jasmine Pearl", p.Title)

	resp, body = b.get("/manage/products/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Jasmine Pearl")

	resp, _ = b.get("/manage/products/export/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
}

func TestAdminUpdatesOrderStatus(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	p := app.product(t, "Oolong", "oolong", 200000)

	customer, err := app.svc.Identity.Register(ctx, services.RegisterInput{
		Email: "guest@tea.test", Password: "sencha-2024", PasswordConfirm: "sencha-2024",
	})
	require.NoError(t, err)
	order, err := app.svc.Orders.Create(ctx, customer, []services.OrderLine{{ProductID: p.ID, Quantity: 2}}, "")
	require.NoError(t, err)

	_, err = app.svc.Identity.CreateAdmin(ctx, "boss@tea.test", "sencha-2024")
	require.NoError(t, err)
	b := app.browser(t)
	b.login("boss", "sencha-2024")

	resp, body := b.get("/manage/orders/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, order.OrderNumber)

	path := fmt.Sprintf("/manage/orders/%d/status/", order.ID)
	resp, _ = b.post(path, url.Values{"status": {"shipping"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	got, err := app.svc.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipping, got.Status)

	resp, _ = b.post(path, url.Values{"status": {"teleported"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	shopper := app.browser(t)
	shopper.login("guest", "sencha-2024")
	_, body = shopper.get("/profile/")
	assert.Contains(t, body, order.OrderNumber)
}
