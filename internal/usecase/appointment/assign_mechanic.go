package appointment

import (
	"context"

	"github.com/servicollantas/workshop-api/internal/audit"
	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
	"github.com/servicollantas/workshop-api/internal/models"
)

type AssignMechanic struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAssignMechanic(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AssignMechanic {
	return &AssignMechanic{
		repo:  repo,
		audit: audit,
	}
}

// Execute asigna o limpia el mecánico de una cita. Con mechanicID nil la
// asignación siempre se limpia; con valor, el usuario debe existir con rol
// mechanic.
func (uc *AssignMechanic) Execute(
	ctx context.Context,
	appointmentID uint,
	mechanicID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if mechanicID != nil {
		if _, err := uc.repo.GetMechanic(ctx, *mechanicID); err != nil {
			return nil, err
		}
	}

	ap.MechanicID = mechanicID

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_mechanic_assigned",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"mechanic_id": mechanicID},
	})

	return ap, nil
}
