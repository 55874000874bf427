package application

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/petwell/petwell-api/internal/domain/entity"
	repo "github.com/petwell/petwell-api/internal/domain/repository"
	"github.com/petwell/petwell-api/pkg/helpers"
)

// PetService is owner-scoped CRUD over pets and their activity, health-record,
// and meal entries. Child entries require the referenced pet to belong to the
// caller; everything else is delegated to the repository, which already scopes
// by user id.
type PetService struct {
	Repo      repo.PetRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewPetService(r repo.PetRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *PetService {
	return &PetService{Repo: r, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

func (s *PetService) CreatePet(ctx context.Context, p *entity.Pet) error {
	return s.Repo.CreatePet(ctx, p)
}

func (s *PetService) ListPets(ctx context.Context, userID int64) ([]*entity.Pet, error) {
	return s.Repo.ListPets(ctx, userID)
}

func (s *PetService) UpdatePet(ctx context.Context, p *entity.Pet) error {
	return s.Repo.UpdatePet(ctx, p)
}

func (s *PetService) DeletePet(ctx context.Context, userID, id int64) error {
	return s.Repo.DeletePet(ctx, userID, id)
}

// UploadPhoto stores the pet photo in GCS and records its public URL.
func (s *PetService) UploadPhoto(ctx context.Context, userID, petID int64, r io.Reader, filename, contentType string) (string, error) {
	if _, err := s.Repo.GetPet(ctx, userID, petID); err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrStorageUnavailable
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("pets", strconv.FormatInt(userID, 10), id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetPetImage(ctx, userID, petID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *PetService) CreateActivity(ctx context.Context, a *entity.Activity) error {
	if _, err := s.Repo.GetPet(ctx, a.UserID, a.PetID); err != nil {
		return err
	}
	return s.Repo.CreateActivity(ctx, a)
}

func (s *PetService) ListActivities(ctx context.Context, userID int64) ([]*entity.Activity, error) {
	return s.Repo.ListActivities(ctx, userID)
}

func (s *PetService) UpdateActivity(ctx context.Context, a *entity.Activity) error {
	return s.Repo.UpdateActivity(ctx, a)
}

func (s *PetService) DeleteActivity(ctx context.Context, userID, id int64) error {
	return s.Repo.DeleteActivity(ctx, userID, id)
}

func (s *PetService) CreateHealthRecord(ctx context.Context, h *entity.HealthRecord) error {
	if _, err := s.Repo.GetPet(ctx, h.UserID, h.PetID); err != nil {
		return err
	}
	return s.Repo.CreateHealthRecord(ctx, h)
}

func (s *PetService) ListHealthRecords(ctx context.Context, userID int64) ([]*entity.HealthRecord, error) {
	return s.Repo.ListHealthRecords(ctx, userID)
}

func (s *PetService) UpdateHealthRecord(ctx context.Context, h *entity.HealthRecord) error {
	return s.Repo.UpdateHealthRecord(ctx, h)
}

func (s *PetService) DeleteHealthRecord(ctx context.Context, userID, id int64) error {
	return s.Repo.DeleteHealthRecord(ctx, userID, id)
}

func (s *PetService) CreateMeal(ctx context.Context, m *entity.Meal) error {
	if _, err := s.Repo.GetPet(ctx, m.UserID, m.PetID); err != nil {
		return err
	}
	return s.Repo.CreateMeal(ctx, m)
}

func (s *PetService) ListMeals(ctx context.Context, userID int64) ([]*entity.Meal, error) {
	return s.Repo.ListMeals(ctx, userID)
}

func (s *PetService) UpdateMeal(ctx context.Context, m *entity.Meal) error {
	return s.Repo.UpdateMeal(ctx, m)
}

func (s *PetService) DeleteMeal(ctx context.Context, userID, id int64) error {
	return s.Repo.DeleteMeal(ctx, userID, id)
}
