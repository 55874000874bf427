package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/petwell/petwell-api/internal/application"
	"github.com/petwell/petwell-api/internal/domain/entity"
	"github.com/petwell/petwell-api/internal/domain/repository"
	"github.com/petwell/petwell-api/internal/interface/middleware"
	"github.com/petwell/petwell-api/pkg/response"
	"github.com/petwell/petwell-api/pkg/validation"
)

const maxPhotoSize = 8 << 20 // 8 MiB

type PetHandler struct {
	Svc    *application.PetService
	Logger *logrus.Logger
}

func NewPetHandler(svc *application.PetService, logger *logrus.Logger) *PetHandler {
	return &PetHandler{Svc: svc, Logger: logger}
}

type petRequest struct {
	Name  string `json:"name" binding:"required"`
	Breed string `json:"breed"`
}

type activityRequest struct {
	PetID    int64  `json:"pet_id" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Duration string `json:"duration"`
	Notes    string `json:"notes"`
}

type healthRecordRequest struct {
	PetID int64  `json:"pet_id" binding:"required"`
	Type  string `json:"type" binding:"required"`
	Date  string `json:"date" binding:"required"`
	Notes string `json:"notes"`
}

type mealRequest struct {
	PetID    int64  `json:"pet_id" binding:"required"`
	FoodType string `json:"food_type" binding:"required"`
	Amount   string `json:"amount"`
	Time     string `json:"time" binding:"required"`
	Notes    string `json:"notes"`
}

type petResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type activityResponse struct {
	ID       int64     `json:"id"`
	PetID    int64     `json:"pet_id"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
	Duration string    `json:"duration"`
	Notes    string    `json:"notes"`
}

type healthRecordResponse struct {
	ID    int64     `json:"id"`
	PetID int64     `json:"pet_id"`
	Type  string    `json:"type"`
	Date  time.Time `json:"date"`
	Notes string    `json:"notes"`
}

type mealResponse struct {
	ID       int64     `json:"id"`
	PetID    int64     `json:"pet_id"`
	FoodType string    `json:"food_type"`
	Amount   string    `json:"amount"`
	Time     time.Time `json:"time"`
	Notes    string    `json:"notes"`
}

// parseWhen accepts the date formats the clients send.
func parseWhen(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Err(c, http.StatusNotFound, "Not found")
		return 0, false
	}
	return id, true
}

func (h *PetHandler) badPayload(c *gin.Context, err error) {
	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{"details": validation.ToDetails(err)}).Debug("payload rejected")
	}
	response.Err(c, http.StatusBadRequest, "Invalid payload")
}

func (h *PetHandler) writeErr(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Err(c, http.StatusNotFound, "Not found")
	case errors.Is(err, application.ErrStorageUnavailable):
		response.Err(c, http.StatusInternalServerError, "Upload unavailable")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error(action + " failed")
		}
		response.Err(c, http.StatusInternalServerError, action+" failed")
	}
}

// ---- pets ----

// ListPets GET /api/pets
func (h *PetHandler) ListPets(c *gin.Context) {
	pets, err := h.Svc.ListPets(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeErr(c, err, "List pets")
		return
	}
	out := make([]petResponse, 0, len(pets))
	for _, p := range pets {
		out = append(out, petResponse{ID: p.ID, Name: p.Name, Breed: p.Breed, ImageURL: p.ImageURL, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt})
	}
	response.OK(c, out)
}

// CreatePet POST /api/pets
func (h *PetHandler) CreatePet(c *gin.Context) {
	var req petRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c, err)
		return
	}
	p := &entity.Pet{UserID: middleware.UserID(c), Name: req.Name, Breed: req.Breed}
	if err := h.Svc.CreatePet(c.Request.Context(), p); err != nil {
		h.writeErr(c, err, "Create pet")
		return
	}
	response.OK(c, petResponse{ID: p.ID, Name: p.Name, Breed: p.Breed, ImageURL: p.ImageURL, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt})
}

// UpdatePet PUT /api/pets/:id
func (h *PetHandler) UpdatePet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req petRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c, err)
		return
	}
	p := &entity.Pet{ID: id, UserID: middleware.UserID(c), Name: req.Name, Breed: req.Breed}
	if err := h.Svc.UpdatePet(c.Request.Context(), p); err != nil {
		h.writeErr(c, err, "Update pet")
		return
	}
	response.Success(c)
}

// DeletePet DELETE /api/pets/:id
func (h *PetHandler) DeletePet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeletePet(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.writeErr(c, err, "Delete pet")
		return
	}
	response.Success(c)
}

// UploadPhoto POST /api/pets/:id/photo (multipart field "photo")
func (h *PetHandler) UploadPhoto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Photo file required")
		return
	}
	if fh.Size > maxPhotoSize {
		response.Err(c, http.StatusBadRequest, "Photo too large")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.writeErr(c, err, "Upload photo")
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadPhoto(c.Request.Context(), middleware.UserID(c), id, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.writeErr(c, err, "Upload photo")
		return
	}
	response.OK(c, gin.H{"image_url": url})
}

// ---- activities ----

// ListActivities GET /api/activities
func (h *PetHandler) ListActivities(c *gin.Context) {
	items, err := h.Svc.ListActivities(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeErr(c, err, "List activities")
		return
	}
	out := make([]activityResponse, 0, len(items))
	for _, a := range items {
		out = append(out, activityResponse{ID: a.ID, PetID: a.PetID, Type: a.Type, Date: a.Date, Duration: a.Duration, Notes: a.Notes})
	}
	response.OK(c, out)
}

// CreateActivity POST /api/activities
func (h *PetHandler) CreateActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c, err)
		return
	}
	date, err := parseWhen(req.Date)
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Invalid date")
		return
	}
	a := &entity.Activity{UserID: middleware.UserID(c), PetID: req.PetID, Type: req.Type, Date: date, Duration: req.Duration, Notes: req.Notes}
	if err := h.Svc.CreateActivity(c.Request.Context(), a); err != nil {
		h.writeErr(c, err, "Create activity")
		return
	}
	response.OK(c, activityResponse{ID: a.ID, PetID: a.PetID, Type: a.Type, Date: a.Date, Duration: a.Duration, Notes: a.Notes})
}

// UpdateActivity PUT /api/activities/:id
func (h *PetHandler) UpdateActivity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c, err)
		return
	}
	date, err := parseWhen(req.Date)
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Invalid date")
		return
	}
	a := &entity.Activity{ID: id, UserID: middleware.UserID(c), PetID: req.PetID, Type: req.Type, Date: date, Duration: req.Duration, Notes: req.Notes}
	if err := h.Svc.UpdateActivity(c.Request.Context(), a); err != nil {
		h.writeErr(c, err, "Update activity")
		return
	}
	response.Success(c)
}

// DeleteActivity DELETE /api/activities/:id
func (h *PetHandler) DeleteActivity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteActivity(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.writeErr(c, err, "Delete activity")
		return
	}
	response.Success(c)
}

// ---- health records ----

// ListHealthRecords GET /api/health-records
func (h *PetHandler) ListHealthRecords(c *gin.Context) {
	items, err := h.Svc.ListHealthRecords(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeErr(c, err, "List health records")
		return
	}
	out := make([]healthRecordResponse, 0, len(items))
	for _, r := range items {
		out = append(out, healthRecordResponse{ID: r.ID, PetID: r.PetID, Type: r.Type, Date: r.Date, Notes: r.Notes})
	}
	response.OK(c, out)
}

// CreateHealthRecord POST /api/health-records
func (h *PetHandler) CreateHealthRecord(c *gin.Context) {
	var req healthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c, err)
		return
	}
	date, err := parseWhen(req.Date)
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Invalid date")
		return
	}
	r := &entity.HealthRecord{UserID: middleware.UserID(c), PetID: req.PetID, Type: req.Type, Date: date, Notes: req.Notes}
	if err := h.Svc.CreateHealthRecord(c.Request.Context(), r); err != nil {
		h.writeErr(c, err, "Create health record")
		return
	}
	response.OK(c, healthRecordResponse{ID: r.ID, PetID: r.PetID, Type: r.Type, Date: r.Date, Notes: r.Notes})
}

// UpdateHealthRecord PUT /api/health-records/:id
func (h *PetHandler) UpdateHealthRecord(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req healthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c, err)
		return
	}
	date, err := parseWhen(req.Date)
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Invalid date")
		return
	}
	r := &entity.HealthRecord{ID: id, UserID: middleware.UserID(c), PetID: req.PetID, Type: req.Type, Date: date, Notes: req.Notes}
	if err := h.Svc.UpdateHealthRecord(c.Request.Context(), r); err != nil {
		h.writeErr(c, err, "Update health record")
		return
	}
	response.Success(c)
}

// DeleteHealthRecord DELETE /api/health-records/:id
func (h *PetHandler) DeleteHealthRecord(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteHealthRecord(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.writeErr(c, err, "Delete health record")
		return
	}
	response.Success(c)
}

// ---- meals ----

// ListMeals GET /api/meals
func (h *PetHandler) ListMeals(c *gin.Context) {
	items, err := h.Svc.ListMeals(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeErr(c, err, "List meals")
		return
	}
	out := make([]mealResponse, 0, len(items))
	for _, m := range items {
		out = append(out, mealResponse{ID: m.ID, PetID: m.PetID, FoodType: m.FoodType, Amount: m.Amount, Time: m.Time, Notes: m.Notes})
	}
	response.OK(c, out)
}

// CreateMeal POST /api/meals
func (h *PetHandler) CreateMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c, err)
		return
	}
	fedAt, err := parseWhen(req.Time)
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Invalid time")
		return
	}
	m := &entity.Meal{UserID: middleware.UserID(c), PetID: req.PetID, FoodType: req.FoodType, Amount: req.Amount, Time: fedAt, Notes: req.Notes}
	if err := h.Svc.CreateMeal(c.Request.Context(), m); err != nil {
		h.writeErr(c, err, "Create meal")
		return
	}
	response.OK(c, mealResponse{ID: m.ID, PetID: m.PetID, FoodType: m.FoodType, Amount: m.Amount, Time: m.Time, Notes: m.Notes})
}

// UpdateMeal PUT /api/meals/:id
func (h *PetHandler) UpdateMeal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c, err)
		return
	}
	fedAt, err := parseWhen(req.Time)
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Invalid time")
		return
	}
	m := &entity.Meal{ID: id, UserID: middleware.UserID(c), PetID: req.PetID, FoodType: req.FoodType, Amount: req.Amount, Time: fedAt, Notes: req.Notes}
	if err := h.Svc.UpdateMeal(c.Request.Context(), m); err != nil {
		h.writeErr(c, err, "Update meal")
		return
	}
	response.Success(c)
}

// DeleteMeal DELETE /api/meals/:id
func (h *PetHandler) DeleteMeal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteMeal(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.writeErr(c, err, "Delete meal")
		return
	}
	response.Success(c)
}
