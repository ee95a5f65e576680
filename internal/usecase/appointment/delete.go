package appointment

import (
	"context"

	"github.com/servicollantas/workshop-api/internal/audit"
	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute borra la cita de forma definitiva. Las restricciones de clave
// foránea del almacén son la única protección en cascada.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) error {

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
