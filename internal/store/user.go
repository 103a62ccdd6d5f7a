package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"catalog-service/internal/model"
)

// UserStore persists accounts and the single active session token per
// user. Email uniqueness is checked among live users only.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// EmailTaken reports whether a live user already registered email,
// compared case-insensitively.
func (s *UserStore) EmailTaken(email string) (bool, error) {
	var count int64
	err := model.Live(s.db.Model(&model.User{})).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create registers a new account. The caller supplies an already-hashed
// password.
func (s *UserStore) Create(name, email, passwordHash string) (*model.User, error) {
	taken, err := s.EmailTaken(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("This email is already registered. Please log in instead.")
	}

	user := model.User{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Password:  passwordHash,
		IsActive:  true,
		Lifecycle: model.Lifecycle{CreatedAt: time.Now()},
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindLiveByEmail returns the live user registered under email.
func (s *UserStore) FindLiveByEmail(email string) (*model.User, error) {
	var user model.User
	err := model.Live(s.db).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User")
		}
		return nil, err
	}
	return &user, nil
}

// FindLiveByToken resolves a presented session token to the live user it
// is stored on. Expiry is the caller's concern.
func (s *UserStore) FindLiveByToken(token string) (*model.User, error) {
	var user model.User
	err := model.Live(s.db).Where("token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User")
		}
		return nil, err
	}
	return &user, nil
}

// SaveSession overwrites the user's current session token. The previous
// token stops resolving immediately; there is exactly one live session
// per user.
func (s *UserStore) SaveSession(user *model.User, token string, expire time.Time) error {
	user.Token = token
	user.TokenExpire = &expire
	user.Touch(time.Now())
	return s.db.Save(user).Error
}
