package rating

import (
	"context"
	"fmt"
	"time"

	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
	"github.com/servicollantas/workshop-api/internal/httperr"
)

type TokenInfo struct {
	AppointmentID uint   `json:"appointment_id"`
	MechanicID    uint   `json:"mechanic_id"`
	MechanicName  string `json:"mechanic_name"`
	ClientName    string `json:"client_name"`
	VehicleInfo   string `json:"vehicle_info"`
	ServiceName   string `json:"service_name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

type GetTokenInfo struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetTokenInfo(
	repo domain.Repository,
	now func() time.Time,
) *GetTokenInfo {
	return &GetTokenInfo{
		repo: repo,
		now:  now,
	}
}

// Execute resuelve los metadatos de un token vivo. Token inexistente,
// usado o vencido responden lo mismo.
func (uc *GetTokenInfo) Execute(
	ctx context.Context,
	token string,
) (*TokenInfo, error) {

	rt, err := uc.repo.FindActiveRatingToken(ctx, token, uc.now())
	if err != nil {
		return nil, err
	}

	ap := rt.Appointment
	if ap.Mechanic == nil {
		return nil, httperr.NotFoundErr("token_invalid_or_expired")
	}

	serviceName := ""
	if ap.Service != nil {
		serviceName = ap.Service.Name
	}

	return &TokenInfo{
		AppointmentID: ap.ID,
		MechanicID:    ap.Mechanic.ID,
		MechanicName:  ap.Mechanic.Name,
		ClientName:    ap.Client.Name,
		VehicleInfo:   fmt.Sprintf("%s %s", ap.Vehicle.Make, ap.Vehicle.Model),
		ServiceName:   serviceName,
		Date:          ap.Date,
		Time:          ap.Time,
	}, nil
}
