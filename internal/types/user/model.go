package user

import "github.com/google/uuid"

// User is the public profile exposed to admin views. Credentials live in
// the account collaborator and are never read here.
type User struct {
	ID    uuid.UUID `db:"id" json:"userId"`
	Name  string    `db:"name" json:"name"`
	Email string    `db:"email" json:"email"`
}

// Cart maps product id -> size -> quantity.
type Cart map[string]map[string]int64
