package model

import "time"

// Favorite records the favorite state for one (user, product) pair. The
// row itself carries the state: no row means never favorited, IsFavorite
// false means previously favorited and since removed. At most one row
// exists per pair.
type Favorite struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_user_product"`
	ProductID  uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_favorites_user_product"`
	IsFavorite bool      `json:"is_favorite" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
