package model

// Product represents the product master data. The subcategory must belong
// to the same category the product declares; names are unique among live
// products under the same (category, subcategory) pair.
type Product struct {
	ID            uint    `json:"id" gorm:"primarykey"`
	Name          string  `json:"name" gorm:"type:varchar(255);not null"`
	CategoryID    uint    `json:"category_id" gorm:"index;not null"`
	SubCategoryID uint    `json:"sub_category_id" gorm:"index;not null"`
	Image         string  `json:"image" gorm:"type:varchar(255)"`
	Price         float64 `json:"price" gorm:"not null"`
	IsActive      bool    `json:"is_active" gorm:"default:true"`
	Lifecycle

	Category    *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	SubCategory *SubCategory `json:"sub_category,omitempty" gorm:"foreignKey:SubCategoryID"`
}
