package models

import "time"

// UserConsultant is an active consultation link. Each row consumes exactly one
// unit of the consultant's capacity.
type UserConsultant struct {
	UserConsultantID uint      `gorm:"primaryKey;autoIncrement" json:"user_consultant_id"`
	UserUID          string    `gorm:"not null;uniqueIndex:idx_user_consultant_pair" json:"user_uid"`
	ConsultantUID    string    `gorm:"not null;uniqueIndex:idx_user_consultant_pair" json:"consultant_uid"`
	AssignmentDate   time.Time `json:"assignment_date"`
	IsActive         bool      `json:"is_active"`
}
