package models

import "time"

type GoalType string

const (
	GoalGain     GoalType = "Gain"
	GoalLoss     GoalType = "Loss"
	GoalMaintain GoalType = "Maintain"
)

func (g GoalType) Valid() bool {
	switch g {
	case GoalGain, GoalLoss, GoalMaintain:
		return true
	}
	return false
}

// UserGoal holds a user's target and the derived daily intake values. The four
// daily_* fields and target_weight are the only fields recalculation may touch.
type UserGoal struct {
	GoalID                 uint      `gorm:"primaryKey;autoIncrement" json:"goal_id"`
	UserUID                string    `gorm:"index;not null" json:"user_uid"`
	ConsultantUID          *string   `gorm:"index" json:"consultant_uid"`
	GoalType               GoalType  `gorm:"size:10;not null" json:"goal_type"`
	TargetWeight           float64   `gorm:"not null" json:"target_weight"`
	DurationWeeks          int       `gorm:"not null" json:"duration_weeks"`
	DailyCalories          float64   `gorm:"not null" json:"daily_calories"`
	DailyProtein           float64   `gorm:"not null" json:"daily_protein"`
	DailyCarbs             float64   `gorm:"not null" json:"daily_carbs"`
	DailyFats              float64   `gorm:"not null" json:"daily_fats"`
	StartDate              time.Time `gorm:"not null" json:"start_date"`
	IsApprovedByConsultant bool      `gorm:"not null" json:"is_approved_by_consultant"`
}
