package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petwell/petwell-api/internal/domain/entity"
	"github.com/petwell/petwell-api/internal/domain/repository"
)

type PetRepository struct {
	pool *pgxpool.Pool
}

func NewPetRepository(pool *pgxpool.Pool) *PetRepository {
	return &PetRepository{pool: pool}
}

// ---- pets ----

func (r *PetRepository) CreatePet(ctx context.Context, p *entity.Pet) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO pets (user_id, name, breed, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Name, p.Breed, p.ImageURL)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PetRepository) ListPets(ctx context.Context, userID int64) ([]*entity.Pet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, breed, image_url, created_at, updated_at
		FROM pets
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pets := make([]*entity.Pet, 0)
	for rows.Next() {
		p := &entity.Pet{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Breed, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

func (r *PetRepository) GetPet(ctx context.Context, userID, id int64) (*entity.Pet, error) {
	p := &entity.Pet{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, breed, image_url, created_at, updated_at
		FROM pets
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Breed, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PetRepository) UpdatePet(ctx context.Context, p *entity.Pet) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE pets
		SET name = $1, breed = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`, p.Name, p.Breed, p.UpdatedAt, p.ID, p.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PetRepository) DeletePet(ctx context.Context, userID, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PetRepository) SetPetImage(ctx context.Context, userID, id int64, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE pets SET image_url = $1, updated_at = now() WHERE id = $2 AND user_id = $3
	`, url, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ---- activities ----

func (r *PetRepository) CreateActivity(ctx context.Context, a *entity.Activity) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO activities (user_id, pet_id, type, date, duration, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, a.UserID, a.PetID, a.Type, a.Date, a.Duration, a.Notes)
	return row.Scan(&a.ID)
}

func (r *PetRepository) ListActivities(ctx context.Context, userID int64) ([]*entity.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, pet_id, type, date, duration, notes
		FROM activities
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Activity, 0)
	for rows.Next() {
		a := &entity.Activity{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.PetID, &a.Type, &a.Date, &a.Duration, &a.Notes); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *PetRepository) UpdateActivity(ctx context.Context, a *entity.Activity) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE activities
		SET type = $1, date = $2, duration = $3, notes = $4
		WHERE id = $5 AND user_id = $6
	`, a.Type, a.Date, a.Duration, a.Notes, a.ID, a.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PetRepository) DeleteActivity(ctx context.Context, userID, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM activities WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ---- health records ----

func (r *PetRepository) CreateHealthRecord(ctx context.Context, h *entity.HealthRecord) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO health_records (user_id, pet_id, type, date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, h.UserID, h.PetID, h.Type, h.Date, h.Notes)
	return row.Scan(&h.ID)
}

func (r *PetRepository) ListHealthRecords(ctx context.Context, userID int64) ([]*entity.HealthRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, pet_id, type, date, notes
		FROM health_records
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.HealthRecord, 0)
	for rows.Next() {
		h := &entity.HealthRecord{}
		if err := rows.Scan(&h.ID, &h.UserID, &h.PetID, &h.Type, &h.Date, &h.Notes); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

func (r *PetRepository) UpdateHealthRecord(ctx context.Context, h *entity.HealthRecord) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE health_records
		SET type = $1, date = $2, notes = $3
		WHERE id = $4 AND user_id = $5
	`, h.Type, h.Date, h.Notes, h.ID, h.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PetRepository) DeleteHealthRecord(ctx context.Context, userID, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM health_records WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ---- meals ----

func (r *PetRepository) CreateMeal(ctx context.Context, m *entity.Meal) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO meals (user_id, pet_id, food_type, amount, fed_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, m.UserID, m.PetID, m.FoodType, m.Amount, m.Time, m.Notes)
	return row.Scan(&m.ID)
}

func (r *PetRepository) ListMeals(ctx context.Context, userID int64) ([]*entity.Meal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, pet_id, food_type, amount, fed_at, notes
		FROM meals
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Meal, 0)
	for rows.Next() {
		m := &entity.Meal{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.PetID, &m.FoodType, &m.Amount, &m.Time, &m.Notes); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *PetRepository) UpdateMeal(ctx context.Context, m *entity.Meal) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE meals
		SET food_type = $1, amount = $2, fed_at = $3, notes = $4
		WHERE id = $5 AND user_id = $6
	`, m.FoodType, m.Amount, m.Time, m.Notes, m.ID, m.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PetRepository) DeleteMeal(ctx context.Context, userID, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PetRepository = (*PetRepository)(nil)
