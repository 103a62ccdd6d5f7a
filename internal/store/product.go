package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"catalog-service/internal/model"
)

// ProductStore persists products and runs the two-hop referential check:
// the declared subcategory must be live and must itself belong to the
// declared category. Both ids are re-validated on every update that
// touches either one.
type ProductStore struct {
	db         *gorm.DB
	categories *CategoryStore
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db, categories: NewCategoryStore(db)}
}

// ProductInput carries the fields required to create a product.
type ProductInput struct {
	Name          string
	CategoryID    uint
	SubCategoryID uint
	Price         float64
	Image         string
}

// ProductUpdate carries a partial update; nil fields are left untouched.
// Image is replaced only when non-empty.
type ProductUpdate struct {
	Name          *string
	CategoryID    *uint
	SubCategoryID *uint
	Price         *float64
	IsActive      *bool
	Image         string
}

// checkParentChain verifies that categoryID resolves to a live category
// and that subCategoryID resolves to a live subcategory stored under that
// same category. The mismatch case deliberately reports the same generic
// signal whether the subcategory is missing, deleted, or under a
// different parent.
func (s *ProductStore) checkParentChain(categoryID, subCategoryID uint) error {
	if _, err := s.categories.GetLive(categoryID); err != nil {
		return err
	}

	var count int64
	err := model.Live(s.db.Model(&model.SubCategory{})).
		Where("id = ? AND category_id = ?", subCategoryID, categoryID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return notFoundMessage("SubCategory not found for selected category")
	}
	return nil
}

// NameTaken reports whether a live product other than excludeID under the
// same (category, subcategory) pair already uses name.
func (s *ProductStore) NameTaken(name string, categoryID, subCategoryID, excludeID uint) (bool, error) {
	q := model.Live(s.db.Model(&model.Product{})).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		Where("category_id = ? AND sub_category_id = ?", categoryID, subCategoryID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new live product after the parent-chain and
// uniqueness checks.
func (s *ProductStore) Create(in ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(in.Name)

	if err := s.checkParentChain(in.CategoryID, in.SubCategoryID); err != nil {
		return nil, err
	}

	taken, err := s.NameTaken(name, in.CategoryID, in.SubCategoryID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("Product already exists.")
	}

	product := model.Product{
		Name:          name,
		CategoryID:    in.CategoryID,
		SubCategoryID: in.SubCategoryID,
		Image:         in.Image,
		Price:         in.Price,
		IsActive:      true,
		Lifecycle:     model.Lifecycle{CreatedAt: time.Now()},
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetLive returns the live product with id, without associations.
func (s *ProductStore) GetLive(id uint) (*model.Product, error) {
	var product model.Product
	err := model.Live(s.db).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product")
		}
		return nil, err
	}
	return &product, nil
}

// GetDetail returns the live product with its category and subcategory
// loaded, deleted parents included.
func (s *ProductStore) GetDetail(id uint) (*model.Product, error) {
	var product model.Product
	err := model.Live(s.db).
		Preload("Category").
		Preload("SubCategory").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product")
		}
		return nil, err
	}
	return &product, nil
}

// List returns one page of live products, newest first.
func (s *ProductStore) List(p PageParams) ([]model.Product, int64, error) {
	q := model.Live(s.db.Model(&model.Product{}))
	if p.Search != "" {
		q = q.Where("name ILIKE ?", "%"+p.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := q.Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Dropdown returns every live product with both parents loaded.
func (s *ProductStore) Dropdown() ([]model.Product, error) {
	var products []model.Product
	err := model.Live(s.db).
		Preload("Category").
		Preload("SubCategory").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Update applies only the supplied fields. If either parent id changes,
// the full parent chain is re-validated with the effective pair: the new
// category when supplied, otherwise the product's current one.
func (s *ProductStore) Update(id uint, in ProductUpdate) (*model.Product, error) {
	product, err := s.GetLive(id)
	if err != nil {
		return nil, err
	}

	categoryID := product.CategoryID
	if in.CategoryID != nil {
		categoryID = *in.CategoryID
	}
	subCategoryID := product.SubCategoryID
	if in.SubCategoryID != nil {
		subCategoryID = *in.SubCategoryID
	}
	pairChanged := categoryID != product.CategoryID || subCategoryID != product.SubCategoryID
	if in.CategoryID != nil || in.SubCategoryID != nil {
		if err := s.checkParentChain(categoryID, subCategoryID); err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if pairChanged || !strings.EqualFold(trimmed, product.Name) {
			taken, err := s.NameTaken(trimmed, categoryID, subCategoryID, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, conflict("Product already exists.")
			}
			product.Name = trimmed
		}
	} else if pairChanged {
		// Moving without renaming still must not collide in the new scope.
		taken, err := s.NameTaken(product.Name, categoryID, subCategoryID, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, conflict("Product already exists.")
		}
	}

	product.CategoryID = categoryID
	product.SubCategoryID = subCategoryID
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.Image != "" {
		product.Image = in.Image
	}

	product.Touch(time.Now())
	if err := s.db.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete soft-deletes the product. A second delete reports not found.
func (s *ProductStore) Delete(id uint) error {
	product, err := s.GetLive(id)
	if err != nil {
		return err
	}
	product.MarkDeleted(time.Now())
	return s.db.Save(product).Error
}
