package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/httpresp"
	"github.com/servicollantas/workshop-api/internal/models"
	ucinvoice "github.com/servicollantas/workshop-api/internal/usecase/invoice"
)

type InvoiceHandler struct {
	db       *gorm.DB
	generate *ucinvoice.GenerateFromAppointment
}

func NewInvoiceHandler(db *gorm.DB, generate *ucinvoice.GenerateFromAppointment) *InvoiceHandler {
	return &InvoiceHandler{db: db, generate: generate}
}

// ======================================================
// REQUESTS
// ======================================================

type InvoiceRequest struct {
	ClientName  string                 `json:"client_name" binding:"required"`
	ClientEmail string                 `json:"client_email"`
	VehicleInfo string                 `json:"vehicle_info"`
	Services    models.InvoiceServices `json:"services" binding:"required"`
	Total       float64                `json:"total" binding:"required,gt=0"`
	Status      string                 `json:"status"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *InvoiceHandler) List(c *gin.Context) {
	var invoices []models.Invoice
	if err := h.db.Order("date DESC").Find(&invoices).Error; err != nil {
		httperr.Internal(c, "failed_to_list_invoices", "Error al listar facturas.")
		return
	}

	httpresp.OK(c, invoices)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var inv models.Invoice
	if err := h.db.First(&inv, id).Error; err != nil {
		httperr.NotFound(c, "invoice_not_found", "Factura no encontrada.")
		return
	}

	httpresp.OK(c, inv)
}

// ======================================================
// CREATE (factura manual, sin cita de respaldo)
// ======================================================

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	status := req.Status
	if status == "" {
		status = models.InvoiceStatusPending
	}
	if status != models.InvoiceStatusPending && status != models.InvoiceStatusPaid {
		httperr.BadRequest(c, "invalid_status", "Estado de factura inválido.")
		return
	}

	inv := models.Invoice{
		Number:      ucinvoice.NewNumber(),
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		VehicleInfo: req.VehicleInfo,
		Services:    req.Services,
		Total:       req.Total,
		Status:      status,
		Date:        time.Now(),
	}

	if err := h.db.Create(&inv).Error; err != nil {
		httperr.Internal(c, "failed_to_create_invoice", "Error al crear factura.")
		return
	}

	httpresp.Created(c, inv)
}

// ======================================================
// GENERATE FROM APPOINTMENT
// ======================================================

func (h *InvoiceHandler) GenerateFromAppointment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	inv, err := h.generate.Execute(c.Request.Context(), id)
	if err != nil {
		if httperr.FromBusiness(c, err, "No fue posible generar la factura.") {
			return
		}
		httperr.Internal(c, "failed_to_generate_invoice", "Error al generar factura.")
		return
	}

	httpresp.Created(c, inv)
}

// ======================================================
// DELETE
// ======================================================

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		// La cita enlazada vuelve a quedar facturable.
		if err := tx.Model(&models.Appointment{}).
			Where("invoice_id = ?", id).
			Update("invoice_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Invoice{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "invoice_not_found", "Factura no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_delete_invoice", "Error al eliminar factura.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Factura eliminada correctamente."})
}
