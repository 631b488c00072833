package services

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderNumberAttempts is the first try plus one retry on a number clash.
const orderNumberAttempts = 2

// OrderEvents receives order changes, e.g. for the admin live feed.
type OrderEvents interface {
	OrderStatusChanged(order *models.Order)
}

// OrderService persists orders. Nothing in the storefront builds an order
// from a cart yet; Create is the entry point a checkout would use.
type OrderService struct {
	store  store.Store
	events OrderEvents
	now    func() time.Time
	intn   func(int) int
}

func NewOrderService(s store.Store, events OrderEvents) *OrderService {
	return &OrderService{store: s, events: events, now: time.Now, intn: rand.IntN}
}

// OrderLine is one product and quantity to put on an order.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// Create snapshots each product's title and price, totals the order and
// assigns an order number, retrying once if the number is taken.
func (o *OrderService) Create(ctx context.Context, user *models.User, lines []OrderLine, note string) (*models.Order, error) {
	if user == nil {
		return nil, errs.Auth("Please log in to continue.")
	}
	if len(lines) == 0 {
		return nil, errs.Validation("An order needs at least one item.", nil)
	}

	order := &models.Order{
		UserID:      user.ID,
		Status:      models.OrderStatusPending,
		Note:        strings.TrimSpace(note),
		TotalAmount: decimal.Zero,
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, errs.Validation("Quantity must be at least 1.", nil)
		}
		product, err := o.store.Products().Get(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		pid := product.ID
		item := models.OrderItem{
			ProductID:    &pid,
			ProductTitle: product.Title,
			Quantity:     line.Quantity,
			Price:        product.PriceOrZero(),
		}
		order.TotalAmount = order.TotalAmount.Add(item.Subtotal())
		order.Items = append(order.Items, item)
	}

	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = models.GenerateOrderNumber(o.now(), o.intn)
		err = o.store.Orders().Create(ctx, order)
		if !errs.Is(err, errs.KindConflict) {
			break
		}
		zerolog.Ctx(ctx).Warn().Str("order_number", order.OrderNumber).Msg("order number taken, retrying")
	}
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().
		Uint("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("total", order.TotalAmount.String()).
		Msg("order created")
	return order, nil
}

// CartLines turns a cart summary into order lines.
func CartLines(sum *CartSummary) []OrderLine {
	lines := make([]OrderLine, 0, len(sum.Lines))
	for _, l := range sum.Lines {
		lines = append(lines, OrderLine{ProductID: l.Item.ProductID, Quantity: l.Item.Quantity})
	}
	return lines
}

func (o *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	return o.store.Orders().Get(ctx, id)
}

func (o *OrderService) ListForUser(ctx context.Context, userID uint, limit int) ([]models.Order, error) {
	return o.store.Orders().ListForUser(ctx, userID, limit)
}

func (o *OrderService) CountForUser(ctx context.Context, userID uint) (int64, error) {
	return o.store.Orders().CountForUser(ctx, userID)
}

func (o *OrderService) ListAll(ctx context.Context, limit int) ([]models.Order, error) {
	return o.store.Orders().ListAll(ctx, limit)
}

// ParseOrderStatus accepts the known status values only.
func ParseOrderStatus(raw string) (models.OrderStatus, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, s := range models.OrderStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", errs.Field("status", "Select a valid choice.")
}

// SetStatus moves an order to any known status; transitions are not checked.
func (o *OrderService) SetStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if _, err := ParseOrderStatus(string(status)); err != nil {
		return nil, err
	}
	if err := o.store.Orders().UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order, err := o.store.Orders().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.events != nil {
		o.events.OrderStatusChanged(order)
	}
	return order, nil
}
