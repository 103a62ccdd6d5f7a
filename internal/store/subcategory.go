package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"catalog-service/internal/model"
)

// SubCategoryStore persists subcategories. It enforces the scoped
// name-uniqueness rule (unique among live subcategories under the same
// parent) and the live-parent referential check.
type SubCategoryStore struct {
	db         *gorm.DB
	categories *CategoryStore
}

func NewSubCategoryStore(db *gorm.DB) *SubCategoryStore {
	return &SubCategoryStore{db: db, categories: NewCategoryStore(db)}
}

// NameTaken reports whether a live subcategory other than excludeID under
// categoryID already uses name, compared case-insensitively.
func (s *SubCategoryStore) NameTaken(name string, categoryID, excludeID uint) (bool, error) {
	q := model.Live(s.db.Model(&model.SubCategory{})).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		Where("category_id = ?", categoryID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new live subcategory. The parent category must exist
// and be live.
func (s *SubCategoryStore) Create(name string, categoryID uint) (*model.SubCategory, error) {
	name = strings.TrimSpace(name)

	if _, err := s.categories.GetLive(categoryID); err != nil {
		return nil, err
	}

	taken, err := s.NameTaken(name, categoryID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("This subcategory already exists under the selected category.")
	}

	sub := model.SubCategory{
		Name:       name,
		CategoryID: categoryID,
		IsActive:   true,
		Lifecycle:  model.Lifecycle{CreatedAt: time.Now()},
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetLive returns the live subcategory with id, without associations.
func (s *SubCategoryStore) GetLive(id uint) (*model.SubCategory, error) {
	var sub model.SubCategory
	err := model.Live(s.db).First(&sub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Subcategory")
		}
		return nil, err
	}
	return &sub, nil
}

// GetDetail returns the live subcategory with its parent category loaded.
// The parent is loaded even when soft-deleted: orphaned subcategories stay
// present and report the parent they were attached to.
func (s *SubCategoryStore) GetDetail(id uint) (*model.SubCategory, error) {
	var sub model.SubCategory
	err := model.Live(s.db).Preload("Category").First(&sub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Subcategory")
		}
		return nil, err
	}
	return &sub, nil
}

// List returns one page of live subcategories, newest first, with parent
// categories loaded.
func (s *SubCategoryStore) List(p PageParams) ([]model.SubCategory, int64, error) {
	q := model.Live(s.db.Model(&model.SubCategory{}))
	if p.Search != "" {
		q = q.Where("name ILIKE ?", "%"+p.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.SubCategory
	err := q.Preload("Category").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// Dropdown returns every live subcategory with its parent loaded.
func (s *SubCategoryStore) Dropdown() ([]model.SubCategory, error) {
	var subs []model.SubCategory
	err := model.Live(s.db).Preload("Category").Order("created_at DESC").Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// Update applies only the supplied fields. Moving to a new parent
// re-validates that the parent is live, and a name change is checked
// against the effective parent scope.
func (s *SubCategoryStore) Update(id uint, name *string, categoryID *uint, isActive *bool) (*model.SubCategory, error) {
	sub, err := s.GetLive(id)
	if err != nil {
		return nil, err
	}

	parentChanged := false
	if categoryID != nil && *categoryID != sub.CategoryID {
		if _, err := s.categories.GetLive(*categoryID); err != nil {
			return nil, err
		}
		sub.CategoryID = *categoryID
		parentChanged = true
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if parentChanged || !strings.EqualFold(trimmed, sub.Name) {
			taken, err := s.NameTaken(trimmed, sub.CategoryID, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, conflict("Subcategory name already exists.")
			}
			sub.Name = trimmed
		}
	} else if parentChanged {
		// Moving without renaming still must not collide in the new scope.
		taken, err := s.NameTaken(sub.Name, sub.CategoryID, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, conflict("Subcategory name already exists.")
		}
	}
	if isActive != nil {
		sub.IsActive = *isActive
	}

	sub.Touch(time.Now())
	if err := s.db.Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// Delete soft-deletes the subcategory. A second delete reports not found.
func (s *SubCategoryStore) Delete(id uint) error {
	sub, err := s.GetLive(id)
	if err != nil {
		return err
	}
	sub.MarkDeleted(time.Now())
	return s.db.Save(sub).Error
}
