package models

import "time"

// Simple per-user log records. No derived state hangs off these; they exist so
// progress screens and account removal have something to work with.

type WeightMeasurement struct {
	MeasurementID uint      `gorm:"primaryKey;autoIncrement" json:"measurement_id"`
	UserUID       string    `gorm:"index;not null" json:"user_uid"`
	Weight        float64   `gorm:"not null" json:"weight"`
	MeasuredAt    time.Time `json:"measured_at"`
	DeviceID      string    `json:"device_id"`
	IsSynced      bool      `json:"is_synced"`
}

type WaterIntake struct {
	IntakeID  uint      `gorm:"primaryKey;autoIncrement" json:"intake_id"`
	UserUID   string    `gorm:"index;not null" json:"user_uid"`
	AmountML  float64   `gorm:"not null" json:"amount_ml"`
	EntryDate time.Time `json:"entry_date"`
}

type ExerciseEntry struct {
	ExerciseID      uint      `gorm:"primaryKey;autoIncrement" json:"exercise_id"`
	UserUID         string    `gorm:"index;not null" json:"user_uid"`
	ExerciseName    string    `gorm:"not null" json:"exercise_name"`
	DurationMinutes int       `json:"duration_minutes"`
	CaloriesBurned  float64   `json:"calories_burned"`
	ExerciseType    string    `json:"exercise_type"`
	EntryDate       time.Time `json:"entry_date"`
}

type MealEntry struct {
	EntryID       uint      `gorm:"primaryKey;autoIncrement" json:"entry_id"`
	UserUID       string    `gorm:"index;not null" json:"user_uid"`
	MealType      string    `gorm:"size:20;not null" json:"meal_type"` // breakfast, lunch, dinner, snack
	EntryDate     time.Time `json:"entry_date"`
	ProductName   string    `gorm:"not null" json:"product_name"`
	QuantityGrams float64   `json:"quantity_grams"`
	Calories      float64   `json:"calories"`
	Protein       float64   `json:"protein"`
	Carbs         float64   `json:"carbs"`
	Fats          float64   `json:"fats"`
	CreatedAt     time.Time `json:"created_at"`
}

type StreakHistory struct {
	StreakID      uint      `gorm:"primaryKey;autoIncrement" json:"streak_id"`
	UserUID       string    `gorm:"index;not null" json:"user_uid"`
	StreakDate    time.Time `json:"streak_date"`
	CurrentStreak int       `json:"current_streak"`
	IsActive      bool      `json:"is_active"`
}
