package repository

import (
	"context"
	"errors"

	"github.com/petwell/petwell-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by Create when the email is already taken.
	// It maps the store's unique-constraint violation; there is deliberately no
	// check-then-insert in application code.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts the user and fills ID and CreatedAt on success.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List returns all users in id (insertion) order.
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, id int64) error
	UpdateRole(ctx context.Context, id int64, role entity.Role) error
}
