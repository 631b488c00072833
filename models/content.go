package models

// StoryboardItem is an editorial entry shown in the storyboard columns.
type StoryboardItem struct {
	Base
	Title   string `gorm:"size:200;not null" json:"title"`
	Slug    string `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Image   string `gorm:"size:255" json:"image"`
	Excerpt string `gorm:"size:300" json:"excerpt"`
}

func (s *StoryboardItem) SlugValue() string { return s.Slug }

func (s *StoryboardItem) String() string { return s.Title }

// RawItem is a photo in the feed.
type RawItem struct {
	Base
	Title   string `gorm:"size:200;not null" json:"title"`
	Image   string `gorm:"size:255" json:"image"`
	Caption string `gorm:"size:300" json:"caption"`
}

func (r *RawItem) String() string { return r.Title }

// CabinetItem is a curated showcase entry.
type CabinetItem struct {
	Base
	Title string `gorm:"size:200;not null" json:"title"`
	Image string `gorm:"size:255" json:"image"`
	Note  string `gorm:"size:300" json:"note"`
}

func (c *CabinetItem) String() string { return c.Title }
