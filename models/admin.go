package models

import "time"

type Admin struct {
	AdminUID         string    `gorm:"primaryKey" json:"admin_uid"`
	RegistrationDate time.Time `json:"registration_date"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	Password         string    `gorm:"not null" json:"-"`
	PhoneNumber      string    `json:"phone_number"`
}
