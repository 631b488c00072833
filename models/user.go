package models

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string       `gorm:"size:254;uniqueIndex:idx_users_email_lower,expression:LOWER(email)" json:"email"`
	FirstName    string       `gorm:"size:150" json:"first_name"`
	LastName     string       `gorm:"size:150" json:"last_name"`
	PasswordHash string       `gorm:"size:255;not null" json:"-"`
	IsStaff      bool         `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser  bool         `gorm:"not null;default:false" json:"is_superuser"`
	IsActive     bool         `gorm:"not null;default:true" json:"is_active"`
	LastLogin    *time.Time   `json:"last_login"`
	Profile      *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Orders       []Order      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Wishlists    []Wishlist   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
}

// IsAdmin reports whether the user may use the back-office.
func (u *User) IsAdmin() bool {
	return u != nil && u.IsActive && (u.IsSuperuser || u.IsStaff)
}

// FullName falls back to the username when no name was given.
func (u *User) FullName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Username
}

type MembershipLevel string

const (
	MembershipBronze   MembershipLevel = "bronze"
	MembershipSilver   MembershipLevel = "silver"
	MembershipGold     MembershipLevel = "gold"
	MembershipPlatinum MembershipLevel = "platinum"
)

func (m MembershipLevel) Label() string {
	switch m {
	case MembershipSilver:
		return "Silver Leaf"
	case MembershipGold:
		return "Gold Leaf"
	case MembershipPlatinum:
		return "Platinum Leaf"
	default:
		return "Bronze Leaf"
	}
}

type UserProfile struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Avatar           string          `gorm:"size:255" json:"avatar"`
	Bio              string          `gorm:"size:200;default:'Tea Lover'" json:"bio"`
	Phone            string          `gorm:"size:20" json:"phone"`
	Address          string          `gorm:"type:text" json:"address"`
	MemberSince      time.Time       `gorm:"type:date" json:"member_since"`
	MembershipLevel  MembershipLevel `gorm:"size:20;not null;default:'bronze'" json:"membership_level"`
	MembershipNumber string          `gorm:"size:20" json:"membership_number"`
	Points           uint            `gorm:"not null;default:0" json:"points"`
}

// NewProfile returns the profile every new user starts with.
func NewProfile(now time.Time, intn func(int) int) UserProfile {
	return UserProfile{
		Bio:              "Tea Lover",
		MemberSince:      now,
		MembershipLevel:  MembershipBronze,
		MembershipNumber: GenerateMembershipNumber(intn),
	}
}

// GenerateMembershipNumber returns four space separated groups of 1000-9999.
// Numbers are not checked for uniqueness.
func GenerateMembershipNumber(intn func(int) int) string {
	return fmt.Sprintf("%d %d %d %d",
		1000+intn(9000), 1000+intn(9000), 1000+intn(9000), 1000+intn(9000))
}
