package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ContentEvents receives admin content changes, e.g. for the live feed.
type ContentEvents interface {
	ContentChanged(entity, action string, id uint, title string)
}

// ContentForm is the validated input behind one admin create/edit form.
type ContentForm[T any] interface {
	// Prepare trims input and fills derived fields such as the slug.
	Prepare()
	// Apply copies the form onto the entity.
	Apply(item *T) error
}

type slugForm interface {
	SlugValue() string
}

// Editor runs the admin create/update/delete flow for one content type.
type Editor[T any, P interface {
	*T
	Key() uint
	fmt.Stringer
}] struct {
	entity string
	repo   store.ContentRepository[T]
	bySlug func(ctx context.Context, slug string) (*T, error)
	events ContentEvents
}

func NewEditor[T any, P interface {
	*T
	Key() uint
	fmt.Stringer
}](entity string, repo store.ContentRepository[T], events ContentEvents) *Editor[T, P] {
	return &Editor[T, P]{entity: entity, repo: repo, events: events}
}

// NewSlugEditor also enforces slug uniqueness before writing.
func NewSlugEditor[T any, P interface {
	*T
	Key() uint
	fmt.Stringer
}](entity string, repo store.SlugRepository[T], events ContentEvents) *Editor[T, P] {
	e := NewEditor[T, P](entity, repo, events)
	e.bySlug = repo.GetBySlug
	return e
}

func (e *Editor[T, P]) Entity() string { return e.entity }

func (e *Editor[T, P]) List(ctx context.Context, limit int) ([]T, error) {
	return e.repo.List(ctx, limit)
}

func (e *Editor[T, P]) Get(ctx context.Context, id uint) (*T, error) {
	return e.repo.Get(ctx, id)
}

func (e *Editor[T, P]) Count(ctx context.Context) (int64, error) {
	return e.repo.Count(ctx)
}

func (e *Editor[T, P]) slugMessage() string {
	return fmt.Sprintf("%s with this slug already exists.", strings.ToUpper(e.entity[:1])+e.entity[1:])
}

// check validates the form and, for slugged types, that no other row owns
// the slug. self is 0 on create.
func (e *Editor[T, P]) check(ctx context.Context, form ContentForm[T], self uint) error {
	form.Prepare()
	err := validateStruct(form)
	if err != nil && !errs.Is(err, errs.KindValidation) {
		return err
	}
	sf, ok := form.(slugForm)
	if !ok || e.bySlug == nil || sf.SlugValue() == "" {
		return err
	}
	if _, bad := errs.FieldErrors(err)["slug"]; bad {
		return err
	}
	existing, lookupErr := e.bySlug(ctx, sf.SlugValue())
	switch {
	case errs.Is(lookupErr, errs.KindNotFound):
		return err
	case lookupErr != nil:
		return lookupErr
	case P(existing).Key() != self:
		return mergeFields(err, "slug", e.slugMessage())
	}
	return err
}

func (e *Editor[T, P]) conflict(err error) error {
	if errs.Is(err, errs.KindConflict) {
		return errs.Field("slug", e.slugMessage())
	}
	return err
}

func (e *Editor[T, P]) Create(ctx context.Context, form ContentForm[T]) (*T, error) {
	if err := e.check(ctx, form, 0); err != nil {
		return nil, err
	}
	item := new(T)
	if err := form.Apply(item); err != nil {
		return nil, err
	}
	if err := e.repo.Create(ctx, item); err != nil {
		return nil, e.conflict(err)
	}
	e.changed(ctx, "created", P(item))
	return item, nil
}

func (e *Editor[T, P]) Update(ctx context.Context, id uint, form ContentForm[T]) (*T, error) {
	item, err := e.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.check(ctx, form, id); err != nil {
		return nil, err
	}
	if err := form.Apply(item); err != nil {
		return nil, err
	}
	if err := e.repo.Update(ctx, item); err != nil {
		return nil, e.conflict(err)
	}
	e.changed(ctx, "updated", P(item))
	return item, nil
}

func (e *Editor[T, P]) Delete(ctx context.Context, id uint) (*T, error) {
	item, err := e.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	e.changed(ctx, "deleted", P(item))
	return item, nil
}

func (e *Editor[T, P]) changed(ctx context.Context, action string, item P) {
	zerolog.Ctx(ctx).Info().
		Str("entity", e.entity).
		Str("action", action).
		Uint("id", item.Key()).
		Msg("content changed")
	if e.events != nil {
		e.events.ContentChanged(e.entity, action, item.Key(), item.String())
	}
}

type ProductForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=220,slug"`
	Excerpt     string `form:"excerpt" validate:"max=300"`
	Description string `form:"description"`
	Price       string `form:"price" validate:"omitempty,number,max=10"`
	// Image is the stored upload path; empty keeps the current image.
	Image string `form:"-"`
}

func ProductFormFrom(p *models.Product) *ProductForm {
	f := &ProductForm{Title: p.Title, Slug: p.Slug, Excerpt: p.Excerpt, Description: p.Description, Image: p.Image}
	if p.Price.Valid {
		f.Price = p.Price.Decimal.String()
	}
	return f
}

func (f *ProductForm) SlugValue() string { return f.Slug }

func (f *ProductForm) Prepare() {
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Excerpt = strings.TrimSpace(f.Excerpt)
	f.Price = strings.TrimSpace(f.Price)
	if f.Slug == "" {
		f.Slug = Slugify(f.Title)
	}
}

func (f *ProductForm) Apply(p *models.Product) error {
	p.Title = f.Title
	p.Slug = f.Slug
	p.Excerpt = f.Excerpt
	p.Description = f.Description
	p.Price = decimal.NullDecimal{}
	if f.Price != "" {
		n, err := strconv.ParseInt(f.Price, 10, 64)
		if err != nil {
			return errs.Field("price", "Enter a whole number.")
		}
		p.Price = decimal.NewNullDecimal(decimal.NewFromInt(n))
	}
	if f.Image != "" {
		p.Image = f.Image
	}
	return nil
}

type StoryboardForm struct {
	Title   string `form:"title" validate:"required,max=200"`
	Slug    string `form:"slug" validate:"required,max=220,slug"`
	Excerpt string `form:"excerpt" validate:"max=300"`
	Image   string `form:"-"`
}

func StoryboardFormFrom(s *models.StoryboardItem) *StoryboardForm {
	return &StoryboardForm{Title: s.Title, Slug: s.Slug, Excerpt: s.Excerpt, Image: s.Image}
}

func (f *StoryboardForm) SlugValue() string { return f.Slug }

func (f *StoryboardForm) Prepare() {
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Excerpt = strings.TrimSpace(f.Excerpt)
	if f.Slug == "" {
		f.Slug = Slugify(f.Title)
	}
}

func (f *StoryboardForm) Apply(s *models.StoryboardItem) error {
	s.Title, s.Slug, s.Excerpt = f.Title, f.Slug, f.Excerpt
	if f.Image != "" {
		s.Image = f.Image
	}
	return nil
}

type RawForm struct {
	Title   string `form:"title" validate:"required,max=200"`
	Caption string `form:"caption" validate:"max=300"`
	Image   string `form:"-"`
}

func RawFormFrom(r *models.RawItem) *RawForm {
	return &RawForm{Title: r.Title, Caption: r.Caption, Image: r.Image}
}

func (f *RawForm) Prepare() {
	f.Title = strings.TrimSpace(f.Title)
	f.Caption = strings.TrimSpace(f.Caption)
}

func (f *RawForm) Apply(r *models.RawItem) error {
	r.Title, r.Caption = f.Title, f.Caption
	if f.Image != "" {
		r.Image = f.Image
	}
	return nil
}

type CabinetForm struct {
	Title string `form:"title" validate:"required,max=200"`
	Note  string `form:"note" validate:"max=300"`
	Image string `form:"-"`
}

func CabinetFormFrom(c *models.CabinetItem) *CabinetForm {
	return &CabinetForm{Title: c.Title, Note: c.Note, Image: c.Image}
}

func (f *CabinetForm) Prepare() {
	f.Title = strings.TrimSpace(f.Title)
	f.Note = strings.TrimSpace(f.Note)
}

func (f *CabinetForm) Apply(c *models.CabinetItem) error {
	c.Title, c.Note = f.Title, f.Note
	if f.Image != "" {
		c.Image = f.Image
	}
	return nil
}
