package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/petwell/petwell-api/config"
	"github.com/petwell/petwell-api/internal/domain/entity"
	repo "github.com/petwell/petwell-api/internal/domain/repository"
	"github.com/petwell/petwell-api/pkg/helpers"
	"github.com/petwell/petwell-api/pkg/mailer"
	tpl "github.com/petwell/petwell-api/pkg/mailer/templates"
)

var (
	ErrMissingFields      = errors.New("missing fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPrimaryAdmin       = errors.New("cannot modify primary admin")
	ErrStorageUnavailable = errors.New("object storage not configured")
)

// AuthService orchestrates registration and login over the credential store,
// the password hasher, and the token service.
type AuthService struct {
	Repo         repo.UserRepository
	JWT          *helpers.JWTManager
	Pub          *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	Logger       *logrus.Logger
	Cfg          *config.Config
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esUsersIndex string, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Pub: pub, ES: es, ESUsersIndex: esUsersIndex, Logger: logger, Cfg: cfg}
}

// Register creates a new account. New accounts always get the user role; the
// caller cannot choose it. A duplicate email is detected solely by the store's
// unique constraint.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingFields
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     entity.RoleUser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	// Best-effort side effects; registration never fails because of them.
	s.enqueueWelcomeEmail(ctx, u)
	_ = s.indexUser(ctx, u)

	return u, nil
}

// Login validates credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		}
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.Welcome,
		Data: map[string]any{
			"Name":        u.Name,
			"Email":       u.Email,
			"CompanyName": s.Cfg.CompanyName,
			"LogoURL":     s.Cfg.LogoURL,
			"SupportURL":  s.Cfg.SupportURL,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}

func (s *AuthService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role.String(),
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: strconv.FormatInt(u.ID, 10), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}
