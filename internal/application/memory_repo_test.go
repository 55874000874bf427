package application

import (
	"context"
	"sync"
	"time"

	"github.com/petwell/petwell-api/internal/domain/entity"
	repo "github.com/petwell/petwell-api/internal/domain/repository"
)

// In-memory repositories backing the service tests.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*entity.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = r.seq
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for id := int64(1); id <= r.seq; id++ {
		if u, ok := r.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id int64, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Role = role
	return nil
}

type memPetRepo struct {
	mu         sync.Mutex
	seq        int64
	pets       map[int64]*entity.Pet
	activities map[int64]*entity.Activity
	records    map[int64]*entity.HealthRecord
	meals      map[int64]*entity.Meal
}

func newMemPetRepo() *memPetRepo {
	return &memPetRepo{
		pets:       make(map[int64]*entity.Pet),
		activities: make(map[int64]*entity.Activity),
		records:    make(map[int64]*entity.HealthRecord),
		meals:      make(map[int64]*entity.Meal),
	}
}

func (r *memPetRepo) next() int64 {
	r.seq++
	return r.seq
}

func (r *memPetRepo) CreatePet(_ context.Context, p *entity.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.next()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.pets[p.ID] = &cp
	return nil
}

func (r *memPetRepo) ListPets(_ context.Context, userID int64) ([]*entity.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Pet{}
	for id := int64(1); id <= r.seq; id++ {
		if p, ok := r.pets[id]; ok && p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPetRepo) GetPet(_ context.Context, userID, id int64) (*entity.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[id]
	if !ok || p.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPetRepo) UpdatePet(_ context.Context, p *entity.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.pets[p.ID]
	if !ok || cur.UserID != p.UserID {
		return repo.ErrNotFound
	}
	cur.Name = p.Name
	cur.Breed = p.Breed
	cur.UpdatedAt = time.Now()
	return nil
}

func (r *memPetRepo) DeletePet(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[id]
	if !ok || p.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func (r *memPetRepo) SetPetImage(_ context.Context, userID, id int64, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[id]
	if !ok || p.UserID != userID {
		return repo.ErrNotFound
	}
	p.ImageURL = url
	return nil
}

func (r *memPetRepo) CreateActivity(_ context.Context, a *entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.next()
	cp := *a
	r.activities[a.ID] = &cp
	return nil
}

func (r *memPetRepo) ListActivities(_ context.Context, userID int64) ([]*entity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Activity{}
	for id := int64(1); id <= r.seq; id++ {
		if a, ok := r.activities[id]; ok && a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPetRepo) UpdateActivity(_ context.Context, a *entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.activities[a.ID]
	if !ok || cur.UserID != a.UserID {
		return repo.ErrNotFound
	}
	*cur = *a
	return nil
}

func (r *memPetRepo) DeleteActivity(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[id]
	if !ok || a.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.activities, id)
	return nil
}

func (r *memPetRepo) CreateHealthRecord(_ context.Context, h *entity.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h.ID = r.next()
	cp := *h
	r.records[h.ID] = &cp
	return nil
}

func (r *memPetRepo) ListHealthRecords(_ context.Context, userID int64) ([]*entity.HealthRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.HealthRecord{}
	for id := int64(1); id <= r.seq; id++ {
		if h, ok := r.records[id]; ok && h.UserID == userID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPetRepo) UpdateHealthRecord(_ context.Context, h *entity.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.records[h.ID]
	if !ok || cur.UserID != h.UserID {
		return repo.ErrNotFound
	}
	*cur = *h
	return nil
}

func (r *memPetRepo) DeleteHealthRecord(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.records[id]
	if !ok || h.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *memPetRepo) CreateMeal(_ context.Context, m *entity.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.next()
	cp := *m
	r.meals[m.ID] = &cp
	return nil
}

func (r *memPetRepo) ListMeals(_ context.Context, userID int64) ([]*entity.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Meal{}
	for id := int64(1); id <= r.seq; id++ {
		if m, ok := r.meals[id]; ok && m.UserID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPetRepo) UpdateMeal(_ context.Context, m *entity.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.meals[m.ID]
	if !ok || cur.UserID != m.UserID {
		return repo.ErrNotFound
	}
	*cur = *m
	return nil
}

func (r *memPetRepo) DeleteMeal(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meals[id]
	if !ok || m.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.meals, id)
	return nil
}
