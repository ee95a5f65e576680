package appointment

import (
	"context"
	"time"

	"github.com/servicollantas/workshop-api/internal/audit"
	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID   *uint
	VehicleID  uint
	ServiceID  *uint
	MechanicID *uint

	Date  string
	Time  string
	Notes string

	// Datos de contacto para el alta implícita de cliente en reservas
	// públicas.
	ClientName  string
	ClientEmail string
	ClientPhone string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if _, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		uc.loc,
	); err != nil {
		return nil, httperr.ValidationErr("invalid_date_or_time")
	}

	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetVehicle(ctx, in.VehicleID); err != nil {
		if httperr.IsBusiness(err, "vehicle_not_found") {
			return nil, httperr.ValidationErr("invalid_vehicle")
		}
		return nil, err
	}

	if in.ServiceID != nil {
		if _, err := uc.repo.GetService(ctx, *in.ServiceID); err != nil {
			if httperr.IsBusiness(err, "service_not_found") {
				return nil, httperr.ValidationErr("invalid_service")
			}
			return nil, err
		}
	}

	if in.MechanicID != nil {
		if _, err := uc.repo.GetMechanic(ctx, *in.MechanicID); err != nil {
			return nil, err
		}
	}

	ap := &models.Appointment{
		ClientID:   client.ID,
		VehicleID:  in.VehicleID,
		ServiceID:  in.ServiceID,
		MechanicID: in.MechanicID,
		Date:       in.Date,
		Time:       in.Time,
		Status:     string(domain.InitialStatus()),
		Notes:      in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// resolveClient busca el cliente por id y luego por email; si no existe,
// crea un registro mínimo con los datos de contacto recibidos en lugar de
// fallar. Así la reserva pública genera su propio cliente.
func (uc *CreateAppointment) resolveClient(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Client, error) {

	if in.ClientID != nil {
		client, err := uc.repo.FindClientByID(ctx, *in.ClientID)
		if err == nil {
			return client, nil
		}
		if !httperr.IsBusiness(err, "client_not_found") {
			return nil, err
		}
	}

	if in.ClientEmail == "" {
		return nil, httperr.ValidationErr("client_email_required")
	}

	client, err := uc.repo.FindClientByEmail(ctx, in.ClientEmail)
	if err == nil {
		return client, nil
	}
	if !httperr.IsBusiness(err, "client_not_found") {
		return nil, err
	}

	name := in.ClientName
	if name == "" {
		name = "Cliente"
	}

	client = &models.Client{
		Name:  name,
		Email: in.ClientEmail,
		Phone: in.ClientPhone,
	}
	if err := uc.repo.CreateClient(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}
