// Package services holds the storefront's use cases. Handlers call these and
// never touch the store directly.
package services

import (
	"github.com/junaidrashid-git/teazen/auth"
	"github.com/junaidrashid-git/teazen/mailer"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/store"
)

// Events fans out domain changes to metrics and the admin live feed.
type Events interface {
	CartEvents
	OrderEvents
	ContentEvents
}

type Services struct {
	Catalog   *CatalogService
	Identity  *IdentityService
	Cart      *CartService
	Wishlist  *WishlistService
	Orders    *OrderService
	Dashboard *DashboardService

	Products   *Editor[models.Product, *models.Product]
	Storyboard *Editor[models.StoryboardItem, *models.StoryboardItem]
	Raw        *Editor[models.RawItem, *models.RawItem]
	Cabinet    *Editor[models.CabinetItem, *models.CabinetItem]
}

type Options struct {
	Reset    *auth.ResetTokens
	Mailer   mailer.Mailer
	Events   Events
	Identity IdentityOptions
}

func New(s store.Store, opts Options) *Services {
	var (
		cartEvents    CartEvents
		orderEvents   OrderEvents
		contentEvents ContentEvents
	)
	if opts.Events != nil {
		cartEvents, orderEvents, contentEvents = opts.Events, opts.Events, opts.Events
	}
	if opts.Mailer == nil {
		opts.Mailer = mailer.LogMailer{}
	}
	return &Services{
		Catalog:    NewCatalogService(s),
		Identity:   NewIdentityService(s, opts.Reset, opts.Mailer, opts.Identity),
		Cart:       NewCartService(s, cartEvents),
		Wishlist:   NewWishlistService(s),
		Orders:     NewOrderService(s, orderEvents),
		Dashboard:  NewDashboardService(s),
		Products:   NewSlugEditor[models.Product]("product", s.Products(), contentEvents),
		Storyboard: NewSlugEditor[models.StoryboardItem]("storyboard", s.Storyboard(), contentEvents),
		Raw:        NewEditor[models.RawItem]("raw", s.Raw(), contentEvents),
		Cabinet:    NewEditor[models.CabinetItem]("cabinet", s.Cabinet(), contentEvents),
	}
}

// MultiEvents forwards every event to each listener in order.
type MultiEvents []Events

func (m MultiEvents) CartItemAdded(created bool) {
	for _, e := range m {
		e.CartItemAdded(created)
	}
}

func (m MultiEvents) OrderStatusChanged(order *models.Order) {
	for _, e := range m {
		e.OrderStatusChanged(order)
	}
}

func (m MultiEvents) ContentChanged(entity, action string, id uint, title string) {
	for _, e := range m {
		e.ContentChanged(entity, action, id, title)
	}
}
