package model

import (
	"time"

	"gorm.io/gorm"
)

// Lifecycle is the soft-delete envelope embedded in every catalog entity.
// An entity is live while IsDelete is false; deletion is a state
// transition, never a physical removal.
type Lifecycle struct {
	IsDelete  bool       `json:"-" gorm:"default:false;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// IsLive reports whether the entity has not been soft deleted.
func (l *Lifecycle) IsLive() bool {
	return !l.IsDelete
}

// MarkDeleted transitions the entity to the deleted state. Callers must
// verify IsLive first; a deleted entity is indistinguishable from an
// absent one to every downstream consumer.
func (l *Lifecycle) MarkDeleted(now time.Time) {
	l.IsDelete = true
	l.DeletedAt = &now
}

// Touch records an update timestamp. It stays nil until the first update.
func (l *Lifecycle) Touch(now time.Time) {
	l.UpdatedAt = &now
}

// Live scopes a query to entities that have not been soft deleted. Every
// external lookup goes through this scope.
func Live(db *gorm.DB) *gorm.DB {
	return db.Where("is_delete = ?", false)
}
