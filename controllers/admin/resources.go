package adminController

import (
	"github.com/junaidrashid-git/teazen/media"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
)

const slugHelp = "Leave blank to fill it from the title."

type (
	ProductResource    = Resource[models.Product, *models.Product, *services.ProductForm]
	StoryboardResource = Resource[models.StoryboardItem, *models.StoryboardItem, *services.StoryboardForm]
	RawResource        = Resource[models.RawItem, *models.RawItem, *services.RawForm]
	CabinetResource    = Resource[models.CabinetItem, *models.CabinetItem, *services.CabinetForm]
)

func Products(svc *services.Services, uploads *media.Store) *ProductResource {
	return &ProductResource{
		Entity: Entity{
			Name: "products", Label: "Products", Singular: "product",
			Path: "/manage/products/", UploadDir: models.ProductUploadDir,
			DetailLabel: "Price", Exportable: true,
		},
		Editor:  svc.Products,
		Uploads: uploads,
		FormFrom: func(p *models.Product) *services.ProductForm {
			if p == nil {
				return &services.ProductForm{}
			}
			return services.ProductFormFrom(p)
		},
		Fields: func(f *services.ProductForm) []Field {
			return []Field{
				{Name: "title", Label: "Title", Type: "text", Value: f.Title},
				{Name: "slug", Label: "Slug", Type: "text", Value: f.Slug, Help: slugHelp},
				{Name: "excerpt", Label: "Excerpt", Type: "text", Value: f.Excerpt},
				{Name: "description", Label: "Description", Type: "textarea", Value: f.Description},
				{Name: "price", Label: "Price (VND)", Type: "number", Value: f.Price},
				{Name: "image", Label: "Image", Type: "file", Value: f.Image},
			}
		},
		Row: func(p *models.Product) Row {
			return Row{ID: p.ID, Title: p.Title, Detail: views.Money(p.Price), Image: p.Image, Created: p.CreatedAt}
		},
		SetImage: func(f *services.ProductForm, path string) { f.Image = path },
	}
}

func Storyboard(svc *services.Services, uploads *media.Store) *StoryboardResource {
	return &StoryboardResource{
		Entity: Entity{
			Name: "storyboard", Label: "Storyboard", Singular: "storyboard item",
			Path: "/manage/storyboard/", UploadDir: models.StoryboardUploadDir,
			DetailLabel: "Slug",
		},
		Editor:  svc.Storyboard,
		Uploads: uploads,
		FormFrom: func(s *models.StoryboardItem) *services.StoryboardForm {
			if s == nil {
				return &services.StoryboardForm{}
			}
			return services.StoryboardFormFrom(s)
		},
		Fields: func(f *services.StoryboardForm) []Field {
			return []Field{
				{Name: "title", Label: "Title", Type: "text", Value: f.Title},
				{Name: "slug", Label: "Slug", Type: "text", Value: f.Slug, Help: slugHelp},
				{Name: "excerpt", Label: "Excerpt", Type: "text", Value: f.Excerpt},
				{Name: "image", Label: "Image", Type: "file", Value: f.Image},
			}
		},
		Row: func(s *models.StoryboardItem) Row {
			return Row{ID: s.ID, Title: s.Title, Detail: s.Slug, Image: s.Image, Created: s.CreatedAt}
		},
		SetImage: func(f *services.StoryboardForm, path string) { f.Image = path },
	}
}

func Raw(svc *services.Services, uploads *media.Store) *RawResource {
	return &RawResource{
		Entity: Entity{
			Name: "raw", Label: "Raw", Singular: "raw item",
			Path: "/manage/raw/", UploadDir: models.RawUploadDir,
			DetailLabel: "Caption",
		},
		Editor:  svc.Raw,
		Uploads: uploads,
		FormFrom: func(r *models.RawItem) *services.RawForm {
			if r == nil {
				return &services.RawForm{}
			}
			return services.RawFormFrom(r)
		},
		Fields: func(f *services.RawForm) []Field {
			return []Field{
				{Name: "title", Label: "Title", Type: "text", Value: f.Title},
				{Name: "caption", Label: "Caption", Type: "text", Value: f.Caption},
				{Name: "image", Label: "Image", Type: "file", Value: f.Image},
			}
		},
		Row: func(r *models.RawItem) Row {
			return Row{ID: r.ID, Title: r.Title, Detail: r.Caption, Image: r.Image, Created: r.CreatedAt}
		},
		SetImage: func(f *services.RawForm, path string) { f.Image = path },
	}
}

func Cabinet(svc *services.Services, uploads *media.Store) *CabinetResource {
	return &CabinetResource{
		Entity: Entity{
			Name: "cabinet", Label: "Cabinet", Singular: "cabinet item",
			Path: "/manage/cabinet/", UploadDir: models.CabinetUploadDir,
			DetailLabel: "Note",
		},
		Editor:  svc.Cabinet,
		Uploads: uploads,
		FormFrom: func(c *models.CabinetItem) *services.CabinetForm {
			if c == nil {
				return &services.CabinetForm{}
			}
			return services.CabinetFormFrom(c)
		},
		Fields: func(f *services.CabinetForm) []Field {
			return []Field{
				{Name: "title", Label: "Title", Type: "text", Value: f.Title},
				{Name: "note", Label: "Note", Type: "text", Value: f.Note},
				{Name: "image", Label: "Image", Type: "file", Value: f.Image},
			}
		},
		Row: func(c *models.CabinetItem) Row {
			return Row{ID: c.ID, Title: c.Title, Detail: c.Note, Image: c.Image, Created: c.CreatedAt}
		},
		SetImage: func(f *services.CabinetForm, path string) { f.Image = path },
	}
}
