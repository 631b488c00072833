// Package seed loads sample catalog content from YAML.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/junaidrashid-git/teazen/services"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sample []byte

type Fixtures struct {
	Products []struct {
		Title       string `yaml:"title"`
		Slug        string `yaml:"slug"`
		Excerpt     string `yaml:"excerpt"`
		Description string `yaml:"description"`
		Price       *int64 `yaml:"price"`
	} `yaml:"products"`
	Storyboard []struct {
		Title   string `yaml:"title"`
		Slug    string `yaml:"slug"`
		Excerpt string `yaml:"excerpt"`
	} `yaml:"storyboard"`
	Raw []struct {
		Title   string `yaml:"title"`
		Caption string `yaml:"caption"`
	} `yaml:"raw"`
	Cabinet []struct {
		Title string `yaml:"title"`
		Note  string `yaml:"note"`
	} `yaml:"cabinet"`
}

// Load parses the fixtures in path, or the built-in sample when path is empty.
func Load(path string) (*Fixtures, error) {
	data := sample
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read fixtures: %w", err)
		}
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

type Result struct {
	Products, Storyboard, Raw, Cabinet int
}

// Apply creates the fixtures through the admin editors, so they get the same
// validation as hand-entered content. A content type that already has rows
// is left alone, which makes repeated runs harmless.
func Apply(ctx context.Context, svc *services.Services, f *Fixtures) (*Result, error) {
	log := zerolog.Ctx(ctx)
	res := &Result{}

	if empty, err := isEmpty(ctx, svc.Products.Count); err != nil {
		return nil, err
	} else if empty {
		for _, p := range f.Products {
			form := &services.ProductForm{Title: p.Title, Slug: p.Slug, Excerpt: p.Excerpt, Description: p.Description}
			if p.Price != nil {
				form.Price = strconv.FormatInt(*p.Price, 10)
			}
			if _, err := svc.Products.Create(ctx, form); err != nil {
				return nil, fmt.Errorf("product %q: %w", p.Title, err)
			}
			res.Products++
		}
	}

	if empty, err := isEmpty(ctx, svc.Storyboard.Count); err != nil {
		return nil, err
	} else if empty {
		for _, s := range f.Storyboard {
			if _, err := svc.Storyboard.Create(ctx, &services.StoryboardForm{Title: s.Title, Slug: s.Slug, Excerpt: s.Excerpt}); err != nil {
				return nil, fmt.Errorf("storyboard %q: %w", s.Title, err)
			}
			res.Storyboard++
		}
	}

	if empty, err := isEmpty(ctx, svc.Raw.Count); err != nil {
		return nil, err
	} else if empty {
		for _, r := range f.Raw {
			if _, err := svc.Raw.Create(ctx, &services.RawForm{Title: r.Title, Caption: r.Caption}); err != nil {
				return nil, fmt.Errorf("raw %q: %w", r.Title, err)
			}
			res.Raw++
		}
	}

	if empty, err := isEmpty(ctx, svc.Cabinet.Count); err != nil {
		return nil, err
	} else if empty {
		for _, c := range f.Cabinet {
			if _, err := svc.Cabinet.Create(ctx, &services.CabinetForm{Title: c.Title, Note: c.Note}); err != nil {
				return nil, fmt.Errorf("cabinet %q: %w", c.Title, err)
			}
			res.Cabinet++
		}
	}

	log.Info().
		Int("products", res.Products).
		Int("storyboard", res.Storyboard).
		Int("raw", res.Raw).
		Int("cabinet", res.Cabinet).
		Msg("🌱 sample data loaded")
	return res, nil
}

func isEmpty(ctx context.Context, count func(context.Context) (int64, error)) (bool, error) {
	n, err := count(ctx)
	return n == 0, err
}
