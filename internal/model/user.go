package model

import "time"

// User is an account with a single active session. A new login overwrites
// Token and TokenExpire; there is no revocation list.
type User struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	Name        string     `json:"name" gorm:"type:varchar(100);not null"`
	Email       string     `json:"email" gorm:"type:varchar(255);not null;index"`
	Password    string     `json:"-" gorm:"type:varchar(255);not null"`
	Token       string     `json:"-" gorm:"type:varchar(512);index"`
	TokenExpire *time.Time `json:"-"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	Lifecycle
}
