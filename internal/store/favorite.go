package store

import (
	"errors"

	"gorm.io/gorm"

	"catalog-service/internal/model"
)

// FavoriteState is the tri-state of one (user, product) pair.
type FavoriteState int

const (
	// FavoriteNone means no row exists: the pair was never favorited.
	FavoriteNone FavoriteState = iota
	// FavoriteActive means a row exists with is_favorite true.
	FavoriteActive
	// FavoriteInactive means a row exists with is_favorite false: the
	// pair was favorited once and removed since.
	FavoriteInactive
)

// FavoriteOp is an operation applied to the favorite state machine.
type FavoriteOp int

const (
	OpAdd FavoriteOp = iota
	OpRemove
	OpToggle
)

// NextState returns the state a pair reaches when op is applied to
// current, and whether the operation is valid from that state.
//
//   - add: every state goes to active; an already-active pair is a no-op
//     success.
//   - remove: only active goes to inactive; removing what was never added
//     or already removed is invalid.
//   - toggle: active flips to inactive, everything else becomes active.
func NextState(op FavoriteOp, current FavoriteState) (FavoriteState, bool) {
	switch op {
	case OpAdd:
		return FavoriteActive, true
	case OpRemove:
		if current != FavoriteActive {
			return current, false
		}
		return FavoriteInactive, true
	case OpToggle:
		if current == FavoriteActive {
			return FavoriteInactive, true
		}
		return FavoriteActive, true
	}
	return current, false
}

// FavoriteStore drives the favorite state machine shared by the add,
// remove, and toggle endpoints.
type FavoriteStore struct {
	db *gorm.DB
}

func NewFavoriteStore(db *gorm.DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

// find returns the row for the pair, or nil when none exists.
func (s *FavoriteStore) find(userID, productID uint) (*model.Favorite, error) {
	var fav model.Favorite
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fav, nil
}

func (s *FavoriteStore) productLive(productID uint) error {
	var count int64
	err := model.Live(s.db.Model(&model.Product{})).
		Where("id = ?", productID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return notFound("Product")
	}
	return nil
}

// apply runs one operation through the state machine and persists the
// resulting row. It returns the row and whether it was newly created.
func (s *FavoriteStore) apply(userID, productID uint, op FavoriteOp) (*model.Favorite, bool, error) {
	fav, err := s.find(userID, productID)
	if err != nil {
		return nil, false, err
	}

	current := FavoriteNone
	if fav != nil {
		if fav.IsFavorite {
			current = FavoriteActive
		} else {
			current = FavoriteInactive
		}
	}

	next, ok := NextState(op, current)
	if !ok {
		return nil, false, notFound("Favorite")
	}

	if fav == nil {
		fav = &model.Favorite{
			UserID:     userID,
			ProductID:  productID,
			IsFavorite: next == FavoriteActive,
		}
		if err := s.db.Create(fav).Error; err != nil {
			return nil, false, err
		}
		return fav, true, nil
	}

	fav.IsFavorite = next == FavoriteActive
	if err := s.db.Save(fav).Error; err != nil {
		return nil, false, err
	}
	return fav, false, nil
}

// Add moves the pair to the active state, creating the row when absent.
// The referenced product must be live.
func (s *FavoriteStore) Add(userID, productID uint) (*model.Favorite, bool, error) {
	if err := s.productLive(productID); err != nil {
		return nil, false, err
	}
	return s.apply(userID, productID, OpAdd)
}

// Remove deactivates an active pair. Pairs that were never added, or
// were already removed, report not found.
func (s *FavoriteStore) Remove(userID, productID uint) error {
	_, _, err := s.apply(userID, productID, OpRemove)
	return err
}

// Toggle flips the pair, creating it active when absent. Product
// liveness is validated here too, matching Add.
func (s *FavoriteStore) Toggle(userID, productID uint) (*model.Favorite, error) {
	if err := s.productLive(productID); err != nil {
		return nil, err
	}
	fav, _, err := s.apply(userID, productID, OpToggle)
	return fav, err
}

// IsFavorite reports true only for an active pair; an inactive row and a
// missing row both read as false. Pure read, no side effect.
func (s *FavoriteStore) IsFavorite(userID, productID uint) (bool, error) {
	fav, err := s.find(userID, productID)
	if err != nil {
		return false, err
	}
	return fav != nil && fav.IsFavorite, nil
}

// ListByUser returns the user's active favorites with product data.
func (s *FavoriteStore) ListByUser(userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := s.db.Where("user_id = ? AND is_favorite = ?", userID, true).
		Preload("Product").
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}
