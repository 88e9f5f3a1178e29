package model

import "time"

// Account stores one registered user. Passwords are kept in clear text on
// purpose: signin compares the submitted value against the stored one, and
// the persisted row layout mirrors the legacy "users" list.
type Account struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"index"`
	Password  string
	Email     string `gorm:"uniqueIndex"`
	Mobile    string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PasswordReset holds the last value submitted through the forgot-password
// form. There is only ever one row; it is overwritten on each submission and
// is not linked to any account.
type PasswordReset struct {
	ID        uint `gorm:"primaryKey"`
	Password  string
	UpdatedAt time.Time
}
