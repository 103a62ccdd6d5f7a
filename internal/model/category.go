package model

// Category is a top-level catalog grouping. Names are unique among live
// categories, compared case-insensitively.
type Category struct {
	ID       uint   `json:"id" gorm:"primarykey"`
	Name     string `json:"name" gorm:"type:varchar(100);not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
	Lifecycle
}

// SubCategory belongs to a Category. Names are unique among live
// subcategories under the same parent, compared case-insensitively.
type SubCategory struct {
	ID         uint   `json:"id" gorm:"primarykey"`
	Name       string `json:"name" gorm:"type:varchar(100);not null"`
	CategoryID uint   `json:"category_id" gorm:"index;not null"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	Lifecycle

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
