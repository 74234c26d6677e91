// Package domain holds the user-account domain model.
package domain

import "time"

// User is a registered account. PasswordHash is a bcrypt hash; plaintext
// passwords are never stored.
type User struct {
	ID           int64
	Username     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Name         string
	Nickname     string
	RoleIDs      []int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Info is the user projection returned to clients. It never carries the
// password hash.
type Info struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Name        string    `json:"name"`
	Nickname    string    `json:"nickname"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DetailInfo is Info plus the user's resolved role names.
type DetailInfo struct {
	Info
	Roles []string `json:"roles"`
}

// InfoOf builds the client projection of u.
func InfoOf(u *User) Info {
	return Info{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Name:        u.Name,
		Nickname:    u.Nickname,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
