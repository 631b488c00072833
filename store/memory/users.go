package memory

import (
	"context"
	"strings"

	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
)

type userRepo Store

func (r *userRepo) CreateWithProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return errs.Conflict("user already exists", nil)
		}
		if strings.EqualFold(u.Email, user.Email) {
			return errs.Conflict("email already exists", nil)
		}
	}
	user.ID = s.id()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	profile.ID = s.id()
	profile.UserID = user.ID
	user.Profile = profile

	u := *user
	u.Profile = nil
	s.users[u.ID] = &u
	p := *profile
	s.profiles[u.ID] = &p
	return nil
}

// loadUser returns a copy of the user with its profile attached. Callers hold mu.
func (s *Store) loadUser(u *models.User) *models.User {
	cp := *u
	if p, ok := s.profiles[u.ID]; ok {
		pc := *p
		cp.Profile = &pc
	}
	return &cp
}

func (r *userRepo) find(match func(*models.User) bool) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			return s.loadUser(u), nil
		}
	}
	return nil, errs.NotFound("user not found")
}

func (r *userRepo) Get(ctx context.Context, id uint) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return exists(err)
}

func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return exists(err)
}

func exists(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errs.Is(err, errs.KindNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (r *userRepo) mutate(id uint, fn func(*models.User)) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return errs.NotFound("user not found")
	}
	fn(u)
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.mutate(id, func(u *models.User) { u.PasswordHash = hash })
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id uint) error {
	return r.mutate(id, func(u *models.User) {
		now := (*Store)(r).now()
		u.LastLogin = &now
	})
}

func (r *userRepo) SaveProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[user.ID]
	if !ok {
		return errs.NotFound("user not found")
	}
	u.FirstName = user.FirstName
	u.LastName = user.LastName
	p := *profile
	p.UserID = user.ID
	if existing, ok := s.profiles[user.ID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = s.id()
	}
	s.profiles[user.ID] = &p
	profile.ID = p.ID
	return nil
}
