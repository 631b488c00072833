package models

// All lists every table, in dependency order, for migrations.
func All() []any {
	return []any{
		&Product{},
		&StoryboardItem{},
		&RawItem{},
		&CabinetItem{},
		&User{},
		&UserProfile{},
		&Order{},
		&OrderItem{},
		&Wishlist{},
		&Cart{},
		&CartItem{},
	}
}
