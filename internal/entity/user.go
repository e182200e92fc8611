package entity

import "github.com/google/uuid"

// Users are owned by the auth service; this side only reads them.
type User struct {
	Id    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`
}

type UserOutputModel struct {
	Id    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
