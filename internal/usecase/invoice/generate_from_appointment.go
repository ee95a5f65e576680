package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/servicollantas/workshop-api/internal/audit"
	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/models"
)

type GenerateFromAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewGenerateFromAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now func() time.Time,
) *GenerateFromAppointment {
	return &GenerateFromAppointment{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

// Execute deriva una factura de una cita completada. Copia nombre y precio
// del servicio al momento de generar (snapshot, no referencia viva),
// marca la factura como pagada y enlaza invoice_id en la cita. Factura y
// enlace se escriben en una sola transacción; una segunda llamada sobre la
// misma cita falla con conflicto.
func (uc *GenerateFromAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Invoice, error) {

	ap, err := uc.repo.GetAppointmentDetailed(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanInvoice(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	if ap.InvoiceID != nil {
		return nil, httperr.ConflictErr("appointment_already_invoiced")
	}

	if ap.Service == nil {
		return nil, httperr.ValidationErr("appointment_has_no_service")
	}

	vehicleInfo := ""
	if ap.Vehicle.ID != 0 {
		vehicleInfo = fmt.Sprintf(
			"%s %s (%s)",
			ap.Vehicle.Make, ap.Vehicle.Model, ap.Vehicle.LicensePlate,
		)
	}

	inv := &models.Invoice{
		Number:      NewNumber(),
		ClientName:  ap.Client.Name,
		ClientEmail: ap.Client.Email,
		VehicleInfo: vehicleInfo,
		Services: models.InvoiceServices{
			{
				ID:    ap.Service.ID,
				Name:  ap.Service.Name,
				Price: ap.Service.Price,
			},
		},
		Total:  ap.Service.Price,
		Status: models.InvoiceStatusPaid,
		Date:   uc.now(),
	}

	if err := uc.repo.CreateInvoiceForAppointment(ctx, inv, ap.ID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "invoice_generated",
		Entity:   "invoice",
		EntityID: &inv.ID,
		Metadata: map[string]any{"appointment_id": ap.ID},
	})

	return inv, nil
}

// NewNumber genera un número de factura corto y legible.
func NewNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}
