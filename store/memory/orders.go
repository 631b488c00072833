package memory

import (
	"context"
	"sort"

	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
)

type orderRepo Store

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.OrderNumber == order.OrderNumber {
			return errs.Conflict("order already exists", nil)
		}
	}
	now := s.now()
	order.ID = s.id()
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	order.CreatedAt, order.UpdatedAt = now, now
	for i := range order.Items {
		order.Items[i].ID = s.id()
		order.Items[i].OrderID = order.ID
	}
	s.orders[order.ID] = copyOrder(order)
	return nil
}

func copyOrder(o *models.Order) *models.Order {
	cp := *o
	cp.User = nil
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	for i := range cp.Items {
		cp.Items[i].Product = nil
		if pid := cp.Items[i].ProductID; pid != nil {
			id := *pid
			cp.Items[i].ProductID = &id
		}
	}
	return &cp
}

// loadOrder copies the order and attaches its owner. Callers hold mu.
func (s *Store) loadOrder(o *models.Order) models.Order {
	cp := copyOrder(o)
	if u, ok := s.users[o.UserID]; ok {
		cp.User = s.loadUser(u)
	}
	return *cp
}

func (r *orderRepo) Get(ctx context.Context, id uint) (*models.Order, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, errs.NotFound("order not found")
	}
	out := s.loadOrder(o)
	return &out, nil
}

func (r *orderRepo) list(match func(*models.Order) bool, limit int) []models.Order {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if match(o) {
			out = append(out, s.loadOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *orderRepo) ListForUser(ctx context.Context, userID uint, limit int) ([]models.Order, error) {
	return r.list(func(o *models.Order) bool { return o.UserID == userID }, limit), nil
}

func (r *orderRepo) CountForUser(ctx context.Context, userID uint) (int64, error) {
	return int64(len(r.list(func(o *models.Order) bool { return o.UserID == userID }, 0))), nil
}

func (r *orderRepo) ListAll(ctx context.Context, limit int) ([]models.Order, error) {
	return r.list(func(*models.Order) bool { return true }, limit), nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return errs.NotFound("order not found")
	}
	o.Status = status
	o.UpdatedAt = s.now()
	return nil
}
