package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/petwell/petwell-api/internal/domain/entity"
	repo "github.com/petwell/petwell-api/internal/domain/repository"
)

// AdminService handles the admin user-management operations. Every mutation
// runs the primary-admin guard after the target lookup: the distinguished
// admin account can never be deleted or demoted, not even by itself.
type AdminService struct {
	Repo              repo.UserRepository
	PrimaryAdminEmail string
	ES                *elasticsearch.Client
	ESUsersIndex      string
	Logger            *logrus.Logger
}

func NewAdminService(r repo.UserRepository, primaryAdminEmail string, es *elasticsearch.Client, esUsersIndex string, logger *logrus.Logger) *AdminService {
	return &AdminService{Repo: r, PrimaryAdminEmail: primaryAdminEmail, ES: es, ESUsersIndex: esUsersIndex, Logger: logger}
}

// ListUsers returns all users in id order. Password hashes stay internal;
// the handler projects the public fields.
func (s *AdminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	target, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if target.Email == s.PrimaryAdminEmail {
		return ErrPrimaryAdmin
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": id, "email": target.Email}).Info("user deleted")
	}
	return nil
}

func (s *AdminService) UpdateRole(ctx context.Context, id int64, role entity.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	target, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if target.Email == s.PrimaryAdminEmail {
		return ErrPrimaryAdmin
	}
	if err := s.Repo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": id, "role": role}).Info("user role updated")
	}
	return nil
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *AdminService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
