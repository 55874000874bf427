package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/petwell/petwell-api/internal/interface/http"
	"github.com/petwell/petwell-api/internal/interface/middleware"
	"github.com/petwell/petwell-api/pkg/helpers"
)

// PetModule wires the pet-domain CRUD endpoints. Any authenticated user may
// use them; every row is scoped to its owner.
type PetModule struct {
	Handler *handlers.PetHandler
	JWT     *helpers.JWTManager
}

func NewPetModule(h *handlers.PetHandler, jwt *helpers.JWTManager) *PetModule {
	return &PetModule{Handler: h, JWT: jwt}
}

func (m *PetModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/pets", m.Handler.ListPets)
		auth.POST("/pets", m.Handler.CreatePet)
		auth.PUT("/pets/:id", m.Handler.UpdatePet)
		auth.DELETE("/pets/:id", m.Handler.DeletePet)
		auth.POST("/pets/:id/photo", m.Handler.UploadPhoto)

		auth.GET("/activities", m.Handler.ListActivities)
		auth.POST("/activities", m.Handler.CreateActivity)
		auth.PUT("/activities/:id", m.Handler.UpdateActivity)
		auth.DELETE("/activities/:id", m.Handler.DeleteActivity)

		auth.GET("/health-records", m.Handler.ListHealthRecords)
		auth.POST("/health-records", m.Handler.CreateHealthRecord)
		auth.PUT("/health-records/:id", m.Handler.UpdateHealthRecord)
		auth.DELETE("/health-records/:id", m.Handler.DeleteHealthRecord)

		auth.GET("/meals", m.Handler.ListMeals)
		auth.POST("/meals", m.Handler.CreateMeal)
		auth.PUT("/meals/:id", m.Handler.UpdateMeal)
		auth.DELETE("/meals/:id", m.Handler.DeleteMeal)
	}
}
