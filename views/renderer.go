// Package views renders the storefront's HTML pages.
package views

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/junaidrashid-git/teazen/media"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/session"
	"github.com/shopspring/decimal"
)

// Renderer keeps one template set per page, each made of the base layout,
// the shared partials and the page itself. It implements render.HTMLRender.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// pageDirs are scanned for pages; a page's name is its path without the
// templates/ prefix and .html suffix, e.g. "auth/login".
var pageDirs = []string{"pages", "auth", "admin", "errors"}

func NewRenderer(fsys fs.FS) (*Renderer, error) {
	shared, err := template.New("").Funcs(Funcs()).ParseFS(fsys, "templates/layouts/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, dir := range pageDirs {
		files, err := fs.Glob(fsys, "templates/"+dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			t, err := shared.Clone()
			if err != nil {
				return nil, err
			}
			if _, err := t.ParseFS(fsys, file); err != nil {
				return nil, fmt.Errorf("parse %s: %w", file, err)
			}
			name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
			if dir == "pages" {
				name = path.Base(name)
			}
			r.pages[name] = t
		}
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages["errors/500"]
		data = &Page{Title: "Server error", Data: gin.H{"missing": name}}
	}
	return render.HTML{Template: t, Name: "base", Data: data}
}

// Has reports whether a page is registered.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Page is what every template receives.
type Page struct {
	Title     string
	User      *models.User
	Flashes   []session.Flash
	CartCount int
	CSRFToken string
	Path      string
	Data      gin.H
}

// Render writes the named page with the request's common data.
func Render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	c.HTML(status, name, &Page{
		Title:     title,
		User:      CurrentUser(c),
		Flashes:   Session(c).PopFlashes(),
		CartCount: cartCount(c),
		CSRFToken: CSRF(c),
		Path:      c.Request.URL.Path,
		Data:      data,
	})
}

// Error renders one of the error pages.
func Error(c *gin.Context, status int, message string) {
	name := "errors/500"
	title := "Server error"
	switch status {
	case http.StatusNotFound:
		name, title = "errors/404", "Page not found"
	case http.StatusForbidden:
		name, title = "errors/403", "Forbidden"
	case http.StatusBadRequest:
		name, title = "errors/400", "Bad request"
	case http.StatusTooManyRequests:
		name, title = "errors/400", "Too many requests"
	}
	Render(c, status, name, title, gin.H{"message": message})
	c.Abort()
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"media": media.URL,
		"money": Money,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
		"datetime": func(t time.Time) string { return t.Format("02/01/2006 15:04") },
		"field": func(errors any, name string) string {
			if m, ok := errors.(map[string]string); ok {
				return m[name]
			}
			return ""
		},
		"statuses": func() []models.OrderStatus { return models.OrderStatuses },
	}
}

// Money formats whole dong with dot thousands separators: 1.250.000 ₫.
// Missing prices render as "Liên hệ" (contact us).
func Money(v any) string {
	var d decimal.Decimal
	switch x := v.(type) {
	case decimal.Decimal:
		d = x
	case decimal.NullDecimal:
		if !x.Valid {
			return "Liên hệ"
		}
		d = x.Decimal
	case int:
		d = decimal.NewFromInt(int64(x))
	default:
		return fmt.Sprint(v)
	}
	s := d.Round(0).Abs().StringFixed(0)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if d.IsNegative() {
		return "-" + b.String() + " ₫"
	}
	return b.String() + " ₫"
}
