package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// InvoiceService es la copia desnormalizada de un servicio al momento de
// facturar. No es una referencia viva al catálogo: cambios posteriores de
// precio no alteran facturas ya emitidas.
type InvoiceService struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type InvoiceServices []InvoiceService

func (s InvoiceServices) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *InvoiceServices) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Number string `gorm:"size:40;uniqueIndex;not null" json:"number"`

	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientEmail string `gorm:"size:100" json:"client_email"`
	VehicleInfo string `gorm:"size:150" json:"vehicle_info"`

	Services InvoiceServices `gorm:"type:jsonb" json:"services"`

	Total  float64 `gorm:"type:decimal(10,2);not null" json:"total"`
	Status string  `gorm:"size:20;default:'pending'" json:"status"`

	Date time.Time `json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
