package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/httpresp"
	"github.com/servicollantas/workshop-api/internal/middleware"
	"github.com/servicollantas/workshop-api/internal/models"
)

type MechanicHandler struct {
	db *gorm.DB
}

func NewMechanicHandler(db *gorm.DB) *MechanicHandler {
	return &MechanicHandler{db: db}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type MechanicRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type MechanicStats struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
	JobsDone      int64   `json:"jobs_done"`
}

// ======================================================
// AVAILABLE (público: la página de reservas lista mecánicos con su
// reputación agregada)
// ======================================================

func (h *MechanicHandler) Available(c *gin.Context) {
	var mechanics []models.User
	if err := h.db.
		Where("role = ?", models.RoleMechanic).
		Order("name ASC").
		Find(&mechanics).Error; err != nil {
		httperr.Internal(c, "failed_to_list_mechanics", "Error al listar mecánicos.")
		return
	}

	out := make([]MechanicStats, 0, len(mechanics))
	for _, m := range mechanics {
		stats := MechanicStats{
			ID:    m.ID,
			Name:  m.Name,
			Email: m.Email,
			Phone: m.Phone,
		}

		var agg struct {
			Avg   float64
			Count int64
		}
		h.db.Model(&models.Rating{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("mechanic_id = ?", m.ID).
			Scan(&agg)
		stats.AverageRating = agg.Avg
		stats.RatingCount = agg.Count

		h.db.Model(&models.Appointment{}).
			Where("mechanic_id = ? AND status = ?", m.ID, "completed").
			Count(&stats.JobsDone)

		out = append(out, stats)
	}

	httpresp.OK(c, out)
}

// ======================================================
// LIST (admin)
// ======================================================

func (h *MechanicHandler) List(c *gin.Context) {
	var mechanics []models.User
	if err := h.db.
		Where("role = ?", models.RoleMechanic).
		Order("name ASC").
		Find(&mechanics).Error; err != nil {
		httperr.Internal(c, "failed_to_list_mechanics", "Error al listar mecánicos.")
		return
	}

	httpresp.OK(c, mechanics)
}

// ======================================================
// CREATE (admin: genera credenciales y las devuelve una sola vez)
// ======================================================

func (h *MechanicHandler) Create(c *gin.Context) {
	var req MechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	password, err := generatePassword()
	if err != nil {
		httperr.Internal(c, "failed_to_create_mechanic", "Error al crear mecánico.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_create_mechanic", "Error al crear mecánico.")
		return
	}

	mechanic := models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         models.RoleMechanic,
	}

	if err := h.db.Create(&mechanic).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "email_exists", "El email ya está registrado.")
			return
		}
		httperr.Internal(c, "failed_to_create_mechanic", "Error al crear mecánico.")
		return
	}

	// La contraseña generada solo viaja en esta respuesta.
	httpresp.Created(c, gin.H{
		"mechanic": mechanic,
		"password": password,
	})
}

// ======================================================
// UPDATE / DELETE (admin)
// ======================================================

func (h *MechanicHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var mechanic models.User
	if err := h.db.
		Where("role = ?", models.RoleMechanic).
		First(&mechanic, id).Error; err != nil {
		httperr.NotFound(c, "mechanic_not_found", "Mecánico no encontrado.")
		return
	}

	var req MechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	mechanic.Name = req.Name
	mechanic.Email = strings.ToLower(strings.TrimSpace(req.Email))
	mechanic.Phone = req.Phone

	if err := h.db.Save(&mechanic).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "email_exists", "El email ya está registrado.")
			return
		}
		httperr.Internal(c, "failed_to_update_mechanic", "Error al actualizar mecánico.")
		return
	}

	httpresp.OK(c, mechanic)
}

func (h *MechanicHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.
		Where("role = ?", models.RoleMechanic).
		Delete(&models.User{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_mechanic", "Error al eliminar mecánico.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "mechanic_not_found", "Mecánico no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Mecánico eliminado correctamente."})
}

// ======================================================
// PROFILE (sesión propia del mecánico)
// ======================================================

func (h *MechanicHandler) Profile(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	httpresp.OK(c, user)
}

func (h *MechanicHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if req.NewPassword != "" {
		// Cambiar contraseña exige probar la actual.
		if err := bcrypt.CompareHashAndPassword(
			[]byte(user.PasswordHash),
			[]byte(req.CurrentPassword),
		); err != nil {
			httperr.Unauthorized(c, "invalid_current_password", "Contraseña actual incorrecta.")
			return
		}

		if len(req.NewPassword) < 8 {
			httperr.BadRequest(c, "password_too_short", "La contraseña debe tener al menos 8 caracteres.")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_update_profile", "Error al actualizar perfil.")
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Error al actualizar perfil.")
		return
	}

	httpresp.OK(c, user)
}

func generatePassword() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
