package user

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// DefaultStatus is the free-text status assigned to new accounts.
const DefaultStatus = "פעיל"

// User is an account in the store. PasswordHash never leaves this package's
// consumers towards the transport layer.
type User struct {
	ID           int64     `json:"id"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"-"`
	Status       string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile holds the optional shipping/contact details of a user.
type Profile struct {
	ID         int64  `json:"-"`
	UserID     int64  `json:"-"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}
