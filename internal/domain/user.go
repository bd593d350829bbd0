package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Telephone    string    `json:"telephone" gorm:"type:varchar(16);not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"type:varchar(16);not null;default:user;index"`
	Balance      int64     `json:"balance" gorm:"not null;default:0;check:balance >= 0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated caller resolved from a credential.
// It is passed explicitly to every service call.
type Identity struct {
	UserID int64
	Role   UserRole
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

func (i Identity) Authenticated() bool { return i.UserID > 0 && i.Role.Valid() }
