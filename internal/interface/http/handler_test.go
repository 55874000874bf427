package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/petwell/petwell-api/config"
	"github.com/petwell/petwell-api/internal/application"
	"github.com/petwell/petwell-api/internal/domain/entity"
	repo "github.com/petwell/petwell-api/internal/domain/repository"
	"github.com/petwell/petwell-api/internal/interface/middleware"
	"github.com/petwell/petwell-api/pkg/helpers"
	"github.com/petwell/petwell-api/pkg/validation"
)

const testPrimaryAdminEmail = "admin@petwell.local"

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
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

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
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

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
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

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id int64, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Role = role
	return nil
}

type fakePetRepo struct {
	mu         sync.Mutex
	seq        int64
	pets       map[int64]*entity.Pet
	activities map[int64]*entity.Activity
	records    map[int64]*entity.HealthRecord
	meals      map[int64]*entity.Meal
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{
		pets:       make(map[int64]*entity.Pet),
		activities: make(map[int64]*entity.Activity),
		records:    make(map[int64]*entity.HealthRecord),
		meals:      make(map[int64]*entity.Meal),
	}
}

func (r *fakePetRepo) CreatePet(_ context.Context, p *entity.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = r.seq
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.pets[p.ID] = &cp
	return nil
}

func (r *fakePetRepo) ListPets(_ context.Context, userID int64) ([]*entity.Pet, error) {
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

func (r *fakePetRepo) GetPet(_ context.Context, userID, id int64) (*entity.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[id]
	if !ok || p.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePetRepo) UpdatePet(_ context.Context, p *entity.Pet) error {
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

func (r *fakePetRepo) DeletePet(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[id]
	if !ok || p.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func (r *fakePetRepo) SetPetImage(_ context.Context, userID, id int64, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[id]
	if !ok || p.UserID != userID {
		return repo.ErrNotFound
	}
	p.ImageURL = url
	return nil
}

func (r *fakePetRepo) CreateActivity(_ context.Context, a *entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	a.ID = r.seq
	cp := *a
	r.activities[a.ID] = &cp
	return nil
}

func (r *fakePetRepo) ListActivities(_ context.Context, userID int64) ([]*entity.Activity, error) {
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

func (r *fakePetRepo) UpdateActivity(_ context.Context, a *entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.activities[a.ID]
	if !ok || cur.UserID != a.UserID {
		return repo.ErrNotFound
	}
	*cur = *a
	return nil
}

func (r *fakePetRepo) DeleteActivity(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[id]
	if !ok || a.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.activities, id)
	return nil
}

func (r *fakePetRepo) CreateHealthRecord(_ context.Context, h *entity.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	h.ID = r.seq
	cp := *h
	r.records[h.ID] = &cp
	return nil
}

func (r *fakePetRepo) ListHealthRecords(_ context.Context, userID int64) ([]*entity.HealthRecord, error) {
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

func (r *fakePetRepo) UpdateHealthRecord(_ context.Context, h *entity.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.records[h.ID]
	if !ok || cur.UserID != h.UserID {
		return repo.ErrNotFound
	}
	*cur = *h
	return nil
}

func (r *fakePetRepo) DeleteHealthRecord(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.records[id]
	if !ok || h.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakePetRepo) CreateMeal(_ context.Context, m *entity.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	m.ID = r.seq
	cp := *m
	r.meals[m.ID] = &cp
	return nil
}

func (r *fakePetRepo) ListMeals(_ context.Context, userID int64) ([]*entity.Meal, error) {
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

func (r *fakePetRepo) UpdateMeal(_ context.Context, m *entity.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.meals[m.ID]
	if !ok || cur.UserID != m.UserID {
		return repo.ErrNotFound
	}
	*cur = *m
	return nil
}

func (r *fakePetRepo) DeleteMeal(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meals[id]
	if !ok || m.UserID != userID {
		return repo.ErrNotFound
	}
	delete(r.meals, id)
	return nil
}

// newTestRouter builds the API routes the way production wiring does: public
// register/login plus the admin group behind Auth and RequireAdmin, and the
// owner-scoped pet routes behind Auth. The primary admin account is
// pre-seeded.
func newTestRouter(t *testing.T) (*gin.Engine, *fakeUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	userRepo := newFakeUserRepo()
	jwt := helpers.NewJWTManager("test-secret", 2*time.Hour)
	cfg := &config.Config{MailSendEnabled: false, PrimaryAdminEmail: testPrimaryAdminEmail}

	hash, err := helpers.HashPassword("admin-password")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), &entity.User{
		Name:     "Admin",
		Email:    testPrimaryAdminEmail,
		Password: hash,
		Role:     entity.RoleAdmin,
	}))

	authSvc := application.NewAuthService(userRepo, jwt, nil, nil, "", logger, cfg)
	adminSvc := application.NewAdminService(userRepo, testPrimaryAdminEmail, nil, "", logger)
	petSvc := application.NewPetService(newFakePetRepo(), nil, "", logger)

	authH := NewAuthHandler(authSvc, logger)
	adminH := NewAdminHandler(adminSvc, logger)
	petH := NewPetHandler(petSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", authH.Register)
	api.POST("/login", authH.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.Auth(jwt), middleware.RequireAdmin())
	admin.GET("/users", adminH.ListUsers)
	admin.GET("/users/search", adminH.SearchUsers)
	admin.DELETE("/users/:id", adminH.DeleteUser)
	admin.PATCH("/users/:id/role", adminH.UpdateRole)

	auth := api.Group("/")
	auth.Use(middleware.Auth(jwt))
	auth.GET("/pets", petH.ListPets)
	auth.POST("/pets", petH.CreatePet)
	auth.PUT("/pets/:id", petH.UpdatePet)
	auth.DELETE("/pets/:id", petH.DeletePet)
	auth.GET("/activities", petH.ListActivities)
	auth.POST("/activities", petH.CreateActivity)
	auth.DELETE("/activities/:id", petH.DeleteActivity)
	auth.GET("/meals", petH.ListMeals)
	auth.POST("/meals", petH.CreateMeal)

	return r, userRepo
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login returns the token for the given credentials, failing the test on a
// non-200 response.
func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
