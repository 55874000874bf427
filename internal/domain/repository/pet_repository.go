package repository

import (
	"context"

	"github.com/petwell/petwell-api/internal/domain/entity"
)

// PetRepository covers the pet-domain tables. Every read and mutation is
// scoped by the owning user id; a row belonging to another user behaves as
// if it does not exist.
type PetRepository interface {
	CreatePet(ctx context.Context, p *entity.Pet) error
	ListPets(ctx context.Context, userID int64) ([]*entity.Pet, error)
	GetPet(ctx context.Context, userID, id int64) (*entity.Pet, error)
	UpdatePet(ctx context.Context, p *entity.Pet) error
	DeletePet(ctx context.Context, userID, id int64) error
	SetPetImage(ctx context.Context, userID, id int64, url string) error

	CreateActivity(ctx context.Context, a *entity.Activity) error
	ListActivities(ctx context.Context, userID int64) ([]*entity.Activity, error)
	UpdateActivity(ctx context.Context, a *entity.Activity) error
	DeleteActivity(ctx context.Context, userID, id int64) error

	CreateHealthRecord(ctx context.Context, r *entity.HealthRecord) error
	ListHealthRecords(ctx context.Context, userID int64) ([]*entity.HealthRecord, error)
	UpdateHealthRecord(ctx context.Context, r *entity.HealthRecord) error
	DeleteHealthRecord(ctx context.Context, userID, id int64) error

	CreateMeal(ctx context.Context, m *entity.Meal) error
	ListMeals(ctx context.Context, userID int64) ([]*entity.Meal, error)
	UpdateMeal(ctx context.Context, m *entity.Meal) error
	DeleteMeal(ctx context.Context, userID, id int64) error
}
