package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash; it must never appear in a response body.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
}
