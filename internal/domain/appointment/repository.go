package appointment

import (
	"context"
	"time"

	"github.com/servicollantas/workshop-api/internal/models"
)

// Repository es la puerta de persistencia del flujo de citas, facturas y
// calificaciones. Las implementaciones traducen "registro ausente" a los
// errores de negocio de httperr; las operaciones de varias escrituras son
// atómicas.
type Repository interface {
	// -------- Client --------
	FindClientByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	FindClientByEmail(
		ctx context.Context,
		email string,
	) (*models.Client, error)

	CreateClient(
		ctx context.Context,
		client *models.Client,
	) error

	// -------- Reference lookups --------
	GetVehicle(
		ctx context.Context,
		id uint,
	) (*models.Vehicle, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetMechanic(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentDetailed precarga cliente, vehículo, servicio y
	// mecánico.
	GetAppointmentDetailed(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Invoice --------
	// CreateInvoiceForAppointment crea la factura y fija invoice_id en la
	// cita dentro de una sola transacción. Falla con conflicto si la cita
	// ya tiene factura enlazada.
	CreateInvoiceForAppointment(
		ctx context.Context,
		inv *models.Invoice,
		appointmentID uint,
	) error

	// -------- Rating workflow --------
	HasRatingForAppointment(
		ctx context.Context,
		appointmentID uint,
	) (bool, error)

	CreateRatingToken(
		ctx context.Context,
		token *models.RatingToken,
	) error

	// FindActiveRatingToken resuelve un token con used=false y
	// expires_at posterior a now. Token ausente, usado o vencido colapsan
	// en el mismo error de no encontrado.
	FindActiveRatingToken(
		ctx context.Context,
		token string,
		now time.Time,
	) (*models.RatingToken, error)

	// SaveRatingConsumingToken inserta la calificación y marca el token
	// como usado en una sola transacción.
	SaveRatingConsumingToken(
		ctx context.Context,
		rating *models.Rating,
		tokenID uint,
	) error

	DeleteExpiredRatingTokens(
		ctx context.Context,
		now time.Time,
	) (int64, error)
}
