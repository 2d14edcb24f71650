package models

import "gorm.io/gorm"

// User is a registered account, stored in PostgreSQL. Stories reference
// users by the string form of their id plus a denormalized username.
type User struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	Username   string `json:"username" gorm:"uniqueIndex"`
	Password   string `json:"-"` // bcrypt hash, never serialized
}

// RegisterRequest defines the request body for creating an account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=30"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for signing in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
