package models

import (
	"time"

	"quiz-pulse/internal/domain"
)

// User is the storage model for the users collection.
type User struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// ToDomain converts the storage model to the domain representation.
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
