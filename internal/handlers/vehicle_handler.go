package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/httpresp"
	"github.com/servicollantas/workshop-api/internal/models"
	"github.com/servicollantas/workshop-api/internal/validators"
)

type VehicleHandler struct {
	db *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type VehicleRequest struct {
	ClientID     uint   `json:"client_id"`
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate" binding:"required"`

	// Alta implícita de cliente cuando no llega client_id.
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`
}

// ======================================================
// LIST
// ======================================================

func (h *VehicleHandler) List(c *gin.Context) {
	q := h.db.Preload("Client")

	// ?client_id= filtra la flota de un solo cliente.
	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	var vehicles []models.Vehicle
	if err := q.Order("id DESC").Find(&vehicles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_vehicles", "Error al listar vehículos.")
		return
	}

	httpresp.OK(c, vehicles)
}

// ======================================================
// CREATE
// ======================================================

func (h *VehicleHandler) Create(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	client, ok := h.resolveClient(c, &req)
	if !ok {
		return
	}

	vehicle := models.Vehicle{
		ClientID:     client.ID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: validators.NormalizePlate(req.LicensePlate),
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "plate_exists", "La placa ya está registrada.")
			return
		}
		httperr.Internal(c, "failed_to_create_vehicle", "Error al crear vehículo.")
		return
	}

	vehicle.Client = *client
	httpresp.Created(c, vehicle)
}

// resolveClient busca por id, luego por email; si no existe crea un
// registro mínimo. En error ya respondió.
func (h *VehicleHandler) resolveClient(c *gin.Context, req *VehicleRequest) (*models.Client, bool) {
	var client models.Client

	if req.ClientID != 0 {
		if err := h.db.First(&client, req.ClientID).Error; err != nil {
			httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
			return nil, false
		}
		return &client, true
	}

	if req.ClientEmail == "" {
		httperr.BadRequest(c, "client_email_required", "Se requiere client_id o client_email.")
		return nil, false
	}

	err := h.db.Where("email = ?", req.ClientEmail).First(&client).Error
	if err == nil {
		return &client, true
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "failed_to_create_vehicle", "Error al crear vehículo.")
		return nil, false
	}

	name := req.ClientName
	if name == "" {
		name = "Cliente"
	}

	client = models.Client{Name: name, Email: req.ClientEmail, Phone: req.ClientPhone}
	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_vehicle", "Error al crear vehículo.")
		return nil, false
	}
	return &client, true
}

// ======================================================
// UPDATE
// ======================================================

func (h *VehicleHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, id).Error; err != nil {
		httperr.NotFound(c, "vehicle_not_found", "Vehículo no encontrado.")
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.ClientID != 0 && req.ClientID != vehicle.ClientID {
		var client models.Client
		if err := h.db.First(&client, req.ClientID).Error; err != nil {
			httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
			return
		}
		vehicle.ClientID = req.ClientID
	}

	vehicle.Make = req.Make
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.LicensePlate = validators.NormalizePlate(req.LicensePlate)

	if err := h.db.Save(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "plate_exists", "La placa ya está registrada.")
			return
		}
		httperr.Internal(c, "failed_to_update_vehicle", "Error al actualizar vehículo.")
		return
	}

	httpresp.OK(c, vehicle)
}

// ======================================================
// DELETE
// ======================================================

func (h *VehicleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.Vehicle{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_vehicle", "Error al eliminar vehículo.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "vehicle_not_found", "Vehículo no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Vehículo eliminado correctamente."})
}
