package models

import "time"

// RatingToken permite exactamente una calificación anónima para una cita
// completada. Consumirlo (used=true) es irreversible.
type RatingToken struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"index;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`

	CreatedAt time.Time `json:"created_at"`
}

type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Índice único: a lo sumo una calificación por cita. Este es el
	// guardia autoritativo contra envíos duplicados.
	AppointmentID uint `gorm:"uniqueIndex;not null" json:"appointment_id"`

	MechanicID uint `gorm:"index;not null" json:"mechanic_id"`

	Rating  int    `gorm:"check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`

	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientEmail string `gorm:"size:100" json:"client_email"`

	CreatedAt time.Time `json:"created_at"`
}
