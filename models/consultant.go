package models

import "time"

// Consultant oversees up to MaxClients users. CurrentClients is a cached
// aggregate; it is only ever changed in the same transaction as the
// UserConsultant row it counts.
type Consultant struct {
	ConsultantUID      string     `gorm:"primaryKey" json:"consultant_uid"`
	Nickname           string     `gorm:"size:50;not null" json:"nickname"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	Password           string     `gorm:"not null" json:"-"`
	ProfilePicture     string     `json:"profile_picture"`
	ProfileDescription string     `json:"profile_description"`
	Gender             string     `json:"gender"`
	ExperienceYears    int        `gorm:"not null" json:"experience_years"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLogin          *time.Time `json:"last_login"`
	MaxClients         int        `gorm:"not null" json:"max_clients"`
	CurrentClients     int        `gorm:"not null;default:0" json:"current_clients"`
}
