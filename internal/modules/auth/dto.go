package auth

import (
	"time"

	"coworkspace/internal/domain"
)

type RegisterRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email"`
	Telephone string `json:"telephone" binding:"required,max=14,telephone"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserPublic struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Telephone string          `json:"telephone"`
	Role      domain.UserRole `json:"role"`
	Balance   int64           `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Telephone: u.Telephone,
		Role:      u.Role,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
	}
}
