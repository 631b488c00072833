package adminController

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/media"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
)

// Entity names one back-office section.
type Entity struct {
	Name        string // URL segment, e.g. "products"
	Label       string // list heading
	Singular    string // used in titles and notices
	Path        string
	UploadDir   string
	DetailLabel string
	Exportable  bool
}

// Field is one input of the shared admin form.
type Field struct {
	Name  string
	Label string
	Type  string // text, number, textarea or file
	Value string
	Help  string
	Error string
}

// Row is one line of the shared admin list.
type Row struct {
	ID      uint
	Title   string
	Detail  string
	Image   string
	Created time.Time
}

// Resource serves list, add, edit and delete pages for one editor.
type Resource[T any, P interface {
	*T
	Key() uint
	fmt.Stringer
}, F services.ContentForm[T]] struct {
	Entity Entity
	Editor *services.Editor[T, P]
	// FormFrom builds the form for an item; nil gives a blank form.
	FormFrom func(item *T) F
	Fields   func(form F) []Field
	Row      func(item *T) Row
	SetImage func(form F, path string)
	Uploads  *media.Store
}

// Register mounts the resource under g, which is rooted at the entity path.
func (r *Resource[T, P, F]) Register(g *gin.RouterGroup) {
	g.GET("/", r.List())
	g.GET("/add/", r.Create())
	g.POST("/add/", r.Create())
	g.GET("/:id/edit/", r.Update())
	g.POST("/:id/edit/", r.Update())
	g.GET("/:id/delete/", r.Delete())
	g.POST("/:id/delete/", r.Delete())
}

// GET /manage/:entity/
func (r *Resource[T, P, F]) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := r.Editor.List(c.Request.Context(), 0)
		if err != nil {
			views.Fail(c, err)
			return
		}
		rows := make([]Row, 0, len(items))
		for i := range items {
			rows = append(rows, r.Row(&items[i]))
		}
		views.Render(c, http.StatusOK, "admin/list", r.Entity.Label, gin.H{
			"entity":      r.Entity,
			"rows":        rows,
			"detailLabel": r.Entity.DetailLabel,
		})
	}
}

func (r *Resource[T, P, F]) renderForm(c *gin.Context, status int, title, action string, form F, err error) {
	fields := r.Fields(form)
	fieldErrs := errs.FieldErrors(err)
	for i := range fields {
		fields[i].Error = fieldErrs[fields[i].Name]
	}
	data := gin.H{"entity": r.Entity, "fields": fields, "action": action}
	if err != nil {
		data["error"] = errs.Message(err)
	}
	views.Render(c, status, "admin/form", title, data)
}

// bind reads the posted fields and the optional image into a blank form.
func (r *Resource[T, P, F]) bind(c *gin.Context) (F, error) {
	form := r.FormFrom(nil)
	if err := c.ShouldBind(form); err != nil {
		return form, errs.Validation("Invalid form submission.", nil)
	}
	path, err := r.Uploads.SaveUpload(c, "image", r.Entity.UploadDir)
	if err != nil {
		return form, err
	}
	r.SetImage(form, path)
	return form, nil
}

// GET|POST /manage/:entity/add/
func (r *Resource[T, P, F]) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		title := "Add " + r.Entity.Singular
		action := r.Entity.Path + "add/"
		if c.Request.Method != http.MethodPost {
			r.renderForm(c, http.StatusOK, title, action, r.FormFrom(nil), nil)
			return
		}
		form, err := r.bind(c)
		if err == nil {
			_, err = r.Editor.Create(c.Request.Context(), form)
		}
		if err != nil {
			if errs.Is(err, errs.KindValidation) {
				r.renderForm(c, http.StatusOK, title, action, form, err)
				return
			}
			views.Fail(c, err)
			return
		}
		views.Flash(c, "success", fmt.Sprintf("The %s was added successfully!", r.Entity.Singular))
		c.Redirect(http.StatusFound, r.Entity.Path)
	}
}

// GET|POST /manage/:entity/:id/edit/
func (r *Resource[T, P, F]) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := views.ParamID(c, "id")
		if !ok {
			return
		}
		item, err := r.Editor.Get(c.Request.Context(), id)
		if err != nil {
			views.Fail(c, err)
			return
		}
		title := fmt.Sprintf("Edit %s", r.Entity.Singular)
		action := fmt.Sprintf("%s%d/edit/", r.Entity.Path, id)
		if c.Request.Method != http.MethodPost {
			r.renderForm(c, http.StatusOK, title, action, r.FormFrom(item), nil)
			return
		}
		form, err := r.bind(c)
		if err == nil {
			_, err = r.Editor.Update(c.Request.Context(), id, form)
		}
		if err != nil {
			if errs.Is(err, errs.KindValidation) {
				r.renderForm(c, http.StatusOK, title, action, form, err)
				return
			}
			views.Fail(c, err)
			return
		}
		views.Flash(c, "success", fmt.Sprintf("The %s was updated successfully!", r.Entity.Singular))
		c.Redirect(http.StatusFound, r.Entity.Path)
	}
}

// GET|POST /manage/:entity/:id/delete/
// GET asks for confirmation; POST deletes.
func (r *Resource[T, P, F]) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := views.ParamID(c, "id")
		if !ok {
			return
		}
		if c.Request.Method != http.MethodPost {
			item, err := r.Editor.Get(c.Request.Context(), id)
			if err != nil {
				views.Fail(c, err)
				return
			}
			views.Render(c, http.StatusOK, "admin/confirm_delete", "Delete "+r.Entity.Singular, gin.H{
				"entity": r.Entity,
				"name":   P(item).String(),
				"action": fmt.Sprintf("%s%d/delete/", r.Entity.Path, id),
			})
			return
		}
		if _, err := r.Editor.Delete(c.Request.Context(), id); err != nil {
			views.Fail(c, err)
			return
		}
		views.Flash(c, "success", fmt.Sprintf("The %s was deleted successfully!", r.Entity.Singular))
		c.Redirect(http.StatusFound, r.Entity.Path)
	}
}
