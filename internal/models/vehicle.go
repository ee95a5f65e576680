package models

import "time"

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Make         string `gorm:"size:50;not null" json:"make"`
	Model        string `gorm:"size:50;not null" json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `gorm:"size:20;uniqueIndex;not null" json:"license_plate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
