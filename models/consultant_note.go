package models

import "time"

type ConsultantNote struct {
	NoteID        uint      `gorm:"primaryKey;autoIncrement" json:"note_id"`
	ConsultantUID string    `gorm:"index;not null" json:"consultant_uid"`
	UserUID       string    `gorm:"index;not null" json:"user_uid"`
	GoalID        uint      `gorm:"index;not null" json:"goal_id"`
	Content       string    `gorm:"not null" json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}
