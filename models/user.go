package models

import "time"

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "Sedentary"
	ActivityLight     ActivityLevel = "Light"
	ActivityModerate  ActivityLevel = "Moderate"
	ActivityHigh      ActivityLevel = "High"
)

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityHigh:
		return true
	}
	return false
}

type User struct {
	UserUID            string        `gorm:"primaryKey" json:"user_uid"`
	Nickname           string        `gorm:"size:50;not null" json:"nickname"`
	Email              string        `gorm:"uniqueIndex;not null" json:"email"`
	Password           string        `gorm:"not null" json:"-"`
	ProfilePicture     string        `json:"profile_picture"`
	ProfileDescription string        `json:"profile_description"`
	Gender             string        `json:"gender"`
	Height             *int          `json:"height"`         // cm
	CurrentWeight      *float64      `json:"current_weight"` // kg
	CreatedAt          time.Time     `json:"created_at"`
	LastLogin          *time.Time    `json:"last_login"`
	IsActive           bool          `json:"is_active"`
	ActivityLevel      ActivityLevel `gorm:"size:20;not null" json:"activity_level"`
	BirthYear          int           `gorm:"not null" json:"birth_year"`
}

// HasCompleteProfile reports whether the attributes needed for nutrition
// calculation are all present.
func (u *User) HasCompleteProfile() bool {
	return u.CurrentWeight != nil && u.Height != nil && u.Gender != "" && u.BirthYear != 0
}
