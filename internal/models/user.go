package models

import "time"

// User is the profile record behind a credential. ID matches the credential
// ID so the auth store and profile store stay joined without a foreign key.
type User struct {
	ID        string `json:"id" gorm:"primaryKey"`
	FullName  string `json:"full_name" gorm:"not null"`
	Email     string `json:"email" gorm:"unique;not null"`
	Role      string `json:"role" gorm:"default:'cashier'"` // admin, cashier
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli"`
}

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCashier UserRole = "cashier"
)

// Credential lives in the auth store, separate from the profile. Registration
// writes the credential first and the profile second; if the profile write
// fails the credential is deleted again so no orphaned account remains.
type Credential struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
