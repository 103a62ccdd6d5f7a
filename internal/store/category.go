package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"catalog-service/internal/model"
)

// CategoryStore owns category persistence and the name-uniqueness rule
// for the category scope. Uniqueness is checked among live rows only, so
// a soft-deleted category frees its name.
type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// NameTaken reports whether a live category other than excludeID already
// uses name, compared case-insensitively on the trimmed string. Pass
// excludeID zero on create.
func (s *CategoryStore) NameTaken(name string, excludeID uint) (bool, error) {
	q := model.Live(s.db.Model(&model.Category{})).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new live category after the uniqueness check. The
// check-then-write sequence is not transactional; two concurrent creates
// with the same name can both pass.
func (s *CategoryStore) Create(name string) (*model.Category, error) {
	name = strings.TrimSpace(name)

	taken, err := s.NameTaken(name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("This category name is already taken.")
	}

	category := model.Category{
		Name:      name,
		IsActive:  true,
		Lifecycle: model.Lifecycle{CreatedAt: time.Now()},
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetLive returns the live category with id. Soft-deleted rows are
// treated identically to absent ones.
func (s *CategoryStore) GetLive(id uint) (*model.Category, error) {
	var category model.Category
	err := model.Live(s.db).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Category")
		}
		return nil, err
	}
	return &category, nil
}

// List returns one page of live categories, newest first, with the total
// matching the filter regardless of pagination.
func (s *CategoryStore) List(p PageParams) ([]model.Category, int64, error) {
	q := model.Live(s.db.Model(&model.Category{}))
	if p.Search != "" {
		q = q.Where("name ILIKE ?", "%"+p.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []model.Category
	err := q.Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// Dropdown returns every live category without pagination.
func (s *CategoryStore) Dropdown() ([]model.Category, error) {
	var categories []model.Category
	err := model.Live(s.db).Order("created_at DESC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Update applies only the supplied fields. A name change re-runs the
// uniqueness check against every other live category; changing only the
// casing of the current name is a no-op on the stored value.
func (s *CategoryStore) Update(id uint, name *string, isActive *bool) (*model.Category, error) {
	category, err := s.GetLive(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if !strings.EqualFold(trimmed, category.Name) {
			taken, err := s.NameTaken(trimmed, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, conflict("This category name is already taken.")
			}
			category.Name = trimmed
		}
	}
	if isActive != nil {
		category.IsActive = *isActive
	}

	category.Touch(time.Now())
	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete soft-deletes the category. Deleting an already-deleted or
// never-existing id reports not found either way. Children are not
// cascaded; they fail their own referential checks when re-validated.
func (s *CategoryStore) Delete(id uint) error {
	category, err := s.GetLive(id)
	if err != nil {
		return err
	}
	category.MarkDeleted(time.Now())
	return s.db.Save(category).Error
}
