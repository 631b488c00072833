package models

import "time"

// Base carries the key and creation time shared by the content tables.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (b *Base) Key() uint { return b.ID }

func (b *Base) Created() time.Time { return b.CreatedAt }

// Stamp assigns the key and, when unset, the creation time.
func (b *Base) Stamp(id uint, at time.Time) {
	b.ID = id
	if b.CreatedAt.IsZero() {
		b.CreatedAt = at
	}
}

// Upload directories under the media root, one per entity.
const (
	ProductUploadDir    = "products"
	StoryboardUploadDir = "storyboard"
	RawUploadDir        = "raw"
	CabinetUploadDir    = "cabinet"
	AvatarUploadDir     = "avatars"
)
