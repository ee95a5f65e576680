package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/models"
)

type WorkshopGormRepository struct {
	db *gorm.DB
}

func NewWorkshopGormRepository(db *gorm.DB) *WorkshopGormRepository {
	return &WorkshopGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *WorkshopGormRepository) FindClientByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("client_not_found")
		}
		return nil, err
	}
	return &client, nil
}

func (r *WorkshopGormRepository) FindClientByEmail(
	ctx context.Context,
	email string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("client_not_found")
		}
		return nil, err
	}
	return &client, nil
}

func (r *WorkshopGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {

	err := r.db.WithContext(ctx).Create(client).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ConflictErr("client_email_exists")
	}
	return err
}

// --------------------------------------------------
// Reference lookups
// --------------------------------------------------

func (r *WorkshopGormRepository) GetVehicle(
	ctx context.Context,
	id uint,
) (*models.Vehicle, error) {

	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("vehicle_not_found")
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *WorkshopGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("service_not_found")
		}
		return nil, err
	}
	return &svc, nil
}

func (r *WorkshopGormRepository) GetMechanic(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var mech models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleMechanic).
		First(&mech).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ValidationErr("invalid_mechanic")
		}
		return nil, err
	}
	return &mech, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *WorkshopGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *WorkshopGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *WorkshopGormRepository) GetAppointmentDetailed(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("Service").
		Preload("Mechanic").
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *WorkshopGormRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("Service").
		Preload("Mechanic").
		Order("date DESC, time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *WorkshopGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *WorkshopGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("appointment_not_found")
	}
	return nil
}

// --------------------------------------------------
// Invoice
// --------------------------------------------------

func (r *WorkshopGormRepository) CreateInvoiceForAppointment(
	ctx context.Context,
	inv *models.Invoice,
	appointmentID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var ap models.Appointment
		if err := tx.First(&ap, appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFoundErr("appointment_not_found")
			}
			return err
		}

		// Re-chequeo dentro de la transacción: cierra la ventana entre la
		// lectura del caso de uso y esta escritura.
		if ap.InvoiceID != nil {
			return httperr.ConflictErr("appointment_already_invoiced")
		}

		if err := tx.Create(inv).Error; err != nil {
			return err
		}

		return tx.Model(&models.Appointment{}).
			Where("id = ?", appointmentID).
			Update("invoice_id", inv.ID).Error
	})
}

// --------------------------------------------------
// Rating workflow
// --------------------------------------------------

func (r *WorkshopGormRepository) HasRatingForAppointment(
	ctx context.Context,
	appointmentID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WorkshopGormRepository) CreateRatingToken(
	ctx context.Context,
	token *models.RatingToken,
) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *WorkshopGormRepository) FindActiveRatingToken(
	ctx context.Context,
	token string,
	now time.Time,
) (*models.RatingToken, error) {

	var rt models.RatingToken
	if err := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("Appointment.Client").
		Preload("Appointment.Vehicle").
		Preload("Appointment.Service").
		Preload("Appointment.Mechanic").
		Where("token = ? AND used = ? AND expires_at > ?", token, false, now).
		First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Ausente, usado o vencido: un solo mensaje para no filtrar
			// cuál fue.
			return nil, httperr.NotFoundErr("token_invalid_or_expired")
		}
		return nil, err
	}
	return &rt, nil
}

func (r *WorkshopGormRepository) SaveRatingConsumingToken(
	ctx context.Context,
	rating *models.Rating,
	tokenID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Create(rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ConflictErr("appointment_already_rated")
			}
			return err
		}

		return tx.Model(&models.RatingToken{}).
			Where("id = ?", tokenID).
			Update("used", true).Error
	})
}

func (r *WorkshopGormRepository) DeleteExpiredRatingTokens(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("used = ? AND expires_at <= ?", false, now).
		Delete(&models.RatingToken{})
	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*WorkshopGormRepository)(nil)
