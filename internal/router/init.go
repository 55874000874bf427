package router

import (
	"github.com/petwell/petwell-api/internal/application"
	"github.com/petwell/petwell-api/internal/container"
	pginfra "github.com/petwell/petwell-api/internal/infrastructure/postgres"
	handlers "github.com/petwell/petwell-api/internal/interface/http"
	"github.com/petwell/petwell-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	petRepo := pginfra.NewPetRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRabbitPub(),
		container.GetES(),
		cfg.ESUsersIndex,
		logger,
		cfg,
	)
	adminSvc := application.NewAdminService(
		userRepo,
		cfg.PrimaryAdminEmail,
		container.GetES(),
		cfg.ESUsersIndex,
		logger,
	)
	petSvc := application.NewPetService(
		petRepo,
		container.GetGCS(),
		cfg.GCSBucket,
		logger,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(adminSvc, logger), container.GetJWT()))
	r.Add(modules.NewPetModule(handlers.NewPetHandler(petSvc, logger), container.GetJWT()))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
