package entity

import "time"

// User representa um titular de conta. Cada lançamento e categoria própria pertence a um User.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em texto plano depois de persistido
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
