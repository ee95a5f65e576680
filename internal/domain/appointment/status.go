package appointment

import "github.com/servicollantas/workshop-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus valida el valor recibido. Cualquier estado puede seguir a
// cualquier otro: los operadores corrigen citas a mano y el flujo no
// bloquea transiciones.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ValidationErr("invalid_status")
	}
	return s, nil
}

// ===============================
// Workflow guards
// ===============================

// CanInvoice exige cita completada antes de facturar.
func CanInvoice(current Status) error {
	if current != StatusCompleted {
		return httperr.ValidationErr("appointment_not_completed")
	}
	return nil
}

// CanRequestRating exige cita completada antes de emitir un link de
// calificación.
func CanRequestRating(current Status) error {
	if current != StatusCompleted {
		return httperr.ValidationErr("appointment_not_completed")
	}
	return nil
}
