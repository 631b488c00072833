package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/junaidrashid-git/teazen/auth"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/mailer"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/store"
	"github.com/rs/zerolog"
)

// Profile page section sizes.
const (
	ProfileOrders   = 5
	ProfileWishlist = 4
)

const minPasswordLength = 8

// maxUsernameBase leaves room in the 150 character column for a numeric suffix.
const maxUsernameBase = 140

var ErrInvalidCredentials = errs.Auth("Invalid username or password.")

func emailTaken() error {
	return errs.Field("email", "A user with that email already exists.")
}

type IdentityService struct {
	store      store.Store
	reset      *auth.ResetTokens
	mail       mailer.Mailer
	siteURL    string
	bcryptCost int
	now        func() time.Time
	intn       func(int) int
}

type IdentityOptions struct {
	SiteURL    string
	BcryptCost int
}

func NewIdentityService(s store.Store, reset *auth.ResetTokens, mail mailer.Mailer, opts IdentityOptions) *IdentityService {
	return &IdentityService{
		store:      s,
		reset:      reset,
		mail:       mail,
		siteURL:    strings.TrimRight(opts.SiteURL, "/"),
		bcryptCost: opts.BcryptCost,
		now:        time.Now,
		intn:       rand.IntN,
	}
}

type RegisterInput struct {
	FirstName       string `form:"first_name" validate:"max=150"`
	LastName        string `form:"last_name" validate:"max=150"`
	Email           string `form:"email" validate:"required,email,max=254"`
	Password        string `form:"password1" validate:"required"`
	PasswordConfirm string `form:"password2" validate:"required"`
}

// Register creates the account and its profile. The username is the local
// part of the email, suffixed with the smallest free number on collision.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.register(ctx, in, false)
}

// CreateAdmin registers a superuser through the same path as Register.
func (s *IdentityService) CreateAdmin(ctx context.Context, email, password string) (*models.User, error) {
	return s.register(ctx, RegisterInput{Email: email, Password: password, PasswordConfirm: password}, true)
}

func (s *IdentityService) register(ctx context.Context, in RegisterInput, admin bool) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	err := validateStruct(in)
	if pwErr := checkNewPassword(in.Password, in.PasswordConfirm, "password1", "password2"); pwErr != nil {
		if err == nil {
			err = pwErr
		} else {
			for field, msg := range errs.FieldErrors(pwErr) {
				err = mergeFields(err, field, msg)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	taken, err := s.store.Users().EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, emailTaken()
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	base := usernameFromEmail(in.Email)
	for attempt := 0; attempt < 3; attempt++ {
		username, err := s.freeUsername(ctx, base)
		if err != nil {
			return nil, err
		}
		user := &models.User{
			Username:     username,
			Email:        in.Email,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			PasswordHash: hash,
			IsActive:     true,
			IsStaff:      admin,
			IsSuperuser:  admin,
		}
		profile := models.NewProfile(s.now(), s.intn)
		err = s.store.Users().CreateWithProfile(ctx, user, &profile)
		if errs.Is(err, errs.KindConflict) {
			taken, lookupErr := s.store.Users().EmailExists(ctx, in.Email)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if taken {
				return nil, emailTaken()
			}
			// Lost a race for the username; pick the next free one.
			continue
		}
		if err != nil {
			return nil, err
		}
		zerolog.Ctx(ctx).Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
		return user, nil
	}
	return nil, errs.Field("email", "Could not allocate a username for that email. Please try again.")
}

func usernameFromEmail(email string) string {
	local := email
	if i := strings.LastIndex(email, "@"); i >= 0 {
		local = email[:i]
	}
	if r := []rune(local); len(r) > maxUsernameBase {
		local = string(r[:maxUsernameBase])
	}
	return local
}

func (s *IdentityService) freeUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for n := 2; ; n++ {
		taken, err := s.store.Users().UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(n)
	}
}

func checkNewPassword(password, confirm, field, confirmField string) error {
	if password != confirm {
		return errs.Field(confirmField, "The two password fields didn't match.")
	}
	if len([]rune(password)) < minPasswordLength {
		return errs.Field(field, fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength))
	}
	if strings.Trim(password, "0123456789") == "" {
		return errs.Field(field, "This password is entirely numeric.")
	}
	return nil
}

// Authenticate accepts a username or an email. Failures never say which part
// was wrong.
func (s *IdentityService) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.store.Users().GetByUsername(ctx, identifier)
	if errs.Is(err, errs.KindNotFound) && strings.Contains(identifier, "@") {
		user, err = s.store.Users().GetByEmail(ctx, identifier)
	}
	if errs.Is(err, errs.KindNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if err := s.store.Users().TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	return s.store.Users().Get(ctx, user.ID)
}

// CurrentUser resolves the user id kept in the session. Inactive or deleted
// users resolve to nil.
func (s *IdentityService) CurrentUser(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, nil
	}
	user, err := s.store.Users().Get(ctx, id)
	if errs.Is(err, errs.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}
	return user, nil
}

// RequireAdmin is the back-office gate.
func RequireAdmin(user *models.User) error {
	if user == nil {
		return errs.Auth("Please log in to continue.")
	}
	if !user.IsAdmin() {
		return errs.Forbidden("You do not have permission to access this page.")
	}
	return nil
}

// ResetRequestedMessage is shown whether or not the email is registered.
const ResetRequestedMessage = "If the email exists, a password reset link has been sent."

// RequestPasswordReset mails a reset link when the email belongs to an active
// user. Callers show ResetRequestedMessage in every case.
func (s *IdentityService) RequestPasswordReset(ctx context.Context, email string) error {
	log := zerolog.Ctx(ctx)
	user, err := s.store.Users().GetByEmail(ctx, strings.TrimSpace(email))
	if errs.Is(err, errs.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !user.IsActive {
		return nil
	}
	uid, token, err := s.reset.Issue(user)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}
	link := fmt.Sprintf("%s/reset/%s/%s/", s.siteURL, uid, token)
	err = s.mail.Send(ctx, mailer.Message{
		To:      user.Email,
		Subject: "TeaZen password reset",
		Text: fmt.Sprintf("Hello %s,\n\nUse the link below to choose a new password:\n\n%s\n\nIf you did not ask for this, ignore this email.\n",
			user.FullName(), link),
	})
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("❌ failed to send password reset mail")
		return nil
	}
	log.Info().Uint("user_id", user.ID).Msg("password reset link sent")
	return nil
}

// CheckResetLink returns the user the link was issued for.
func (s *IdentityService) CheckResetLink(ctx context.Context, uid, token string) (*models.User, error) {
	id, err := auth.DecodeUID(uid)
	if err != nil {
		return nil, err
	}
	user, err := s.store.Users().Get(ctx, id)
	if errs.Is(err, errs.KindNotFound) {
		return nil, errs.InvalidToken("the reset link is invalid or has expired")
	}
	if err != nil {
		return nil, err
	}
	if err := s.reset.Verify(user, token); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *IdentityService) ConfirmPasswordReset(ctx context.Context, uid, token, password, confirm string) error {
	user, err := s.CheckResetLink(ctx, uid, token)
	if err != nil {
		return err
	}
	if err := checkNewPassword(password, confirm, "new_password1", "new_password2"); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.Users().UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Uint("user_id", user.ID).Msg("password reset")
	return nil
}

type ProfilePage struct {
	User        *models.User
	Profile     *models.UserProfile
	Orders      []models.Order
	Wishlist    []models.Wishlist
	TotalOrders int64
}

// ensureProfile creates the profile for accounts that predate it.
func (s *IdentityService) ensureProfile(ctx context.Context, user *models.User) (*models.UserProfile, error) {
	if user.Profile != nil {
		return user.Profile, nil
	}
	profile := models.NewProfile(s.now(), s.intn)
	if err := s.store.Users().SaveProfile(ctx, user, &profile); err != nil {
		return nil, err
	}
	user.Profile = &profile
	return &profile, nil
}

func (s *IdentityService) Profile(ctx context.Context, user *models.User) (*ProfilePage, error) {
	profile, err := s.ensureProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	page := &ProfilePage{User: user, Profile: profile}
	if page.Orders, err = s.store.Orders().ListForUser(ctx, user.ID, ProfileOrders); err != nil {
		return nil, err
	}
	if page.Wishlist, err = s.store.Wishlists().List(ctx, user.ID, ProfileWishlist); err != nil {
		return nil, err
	}
	if page.TotalOrders, err = s.store.Orders().CountForUser(ctx, user.ID); err != nil {
		return nil, err
	}
	return page, nil
}

type ProfileInput struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Bio       string `form:"bio" validate:"max=200"`
	Phone     string `form:"phone" validate:"max=20"`
	Address   string `form:"address"`
	// Avatar is the stored upload path; empty keeps the current one.
	Avatar string `form:"-"`
}

func (s *IdentityService) UpdateProfile(ctx context.Context, user *models.User, in ProfileInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	profile, err := s.ensureProfile(ctx, user)
	if err != nil {
		return err
	}
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	profile.Bio = in.Bio
	profile.Phone = in.Phone
	profile.Address = in.Address
	if in.Avatar != "" {
		profile.Avatar = in.Avatar
	}
	return s.store.Users().SaveProfile(ctx, user, profile)
}
