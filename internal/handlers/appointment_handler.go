package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/httpresp"
	ucappointment "github.com/servicollantas/workshop-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create *ucappointment.CreateAppointment
	list   *ucappointment.ListAppointments
	get    *ucappointment.GetAppointment
	update *ucappointment.UpdateStatus
	assign *ucappointment.AssignMechanic
	remove *ucappointment.DeleteAppointment
}

func NewAppointmentHandler(
	create *ucappointment.CreateAppointment,
	list *ucappointment.ListAppointments,
	get *ucappointment.GetAppointment,
	update *ucappointment.UpdateStatus,
	assign *ucappointment.AssignMechanic,
	remove *ucappointment.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		list:   list,
		get:    get,
		update: update,
		assign: assign,
		remove: remove,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID   *uint `json:"client_id"`
	VehicleID  uint  `json:"vehicle_id" binding:"required"`
	ServiceID  *uint `json:"service_id"`
	MechanicID *uint `json:"mechanic_id"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`

	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`
}

type UpdateAppointmentRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type AssignMechanicRequest struct {
	MechanicID *uint `json:"mechanic_id"`
}

// ======================================================
// CREATE (público: la página de reservas no exige sesión)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		ClientID:    req.ClientID,
		VehicleID:   req.VehicleID,
		ServiceID:   req.ServiceID,
		MechanicID:  req.MechanicID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
	})
	if err != nil {
		if httperr.FromBusiness(c, err, "No fue posible crear la cita.") {
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Error al crear la cita.")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	httpresp.OK(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		if httperr.FromBusiness(c, err, "Cita no encontrada.") {
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Error al consultar la cita.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// UPDATE (estado / notas)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), id, ucappointment.UpdateStatusInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		if httperr.FromBusiness(c, err, "No fue posible actualizar la cita.") {
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Error al actualizar la cita.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// ASSIGN MECHANIC
// ======================================================

func (h *AppointmentHandler) AssignMechanic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AssignMechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.assign.Execute(c.Request.Context(), id, req.MechanicID)
	if err != nil {
		if httperr.FromBusiness(c, err, "No fue posible asignar el mecánico.") {
			return
		}
		httperr.Internal(c, "failed_to_assign_mechanic", "Error al asignar mecánico.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		if httperr.FromBusiness(c, err, "Cita no encontrada.") {
			return
		}
		httperr.Internal(c, "failed_to_delete_appointment", "Error al eliminar la cita.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Cita eliminada correctamente."})
}

// parseID lee el :id de la ruta; en error ya respondió 400.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
