package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nutritrack-backend/models"
)

// TrackingService covers the simple per-user log stores: weight measurements,
// water intake, exercise, meal entries and streaks. Plain CRUD, no derived
// state.
type TrackingService struct {
	db *gorm.DB
}

func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{db: db}
}

func (s *TrackingService) requireUser(ctx context.Context, userUID string) error {
	err := s.db.WithContext(ctx).First(&models.User{}, "user_uid = ?", userUID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user not found", models.ErrNotFound)
	}
	return err
}

// Weight measurements

func (s *TrackingService) AddWeightMeasurement(ctx context.Context, userUID string, weight float64, measuredAt time.Time, deviceID string, isSynced bool) (*models.WeightMeasurement, error) {
	if weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", models.ErrValidation)
	}
	if err := s.requireUser(ctx, userUID); err != nil {
		return nil, err
	}
	if measuredAt.IsZero() {
		measuredAt = time.Now().UTC()
	}

	m := &models.WeightMeasurement{
		UserUID:    userUID,
		Weight:     weight,
		MeasuredAt: measuredAt,
		DeviceID:   deviceID,
		IsSynced:   isSynced,
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *TrackingService) ListWeightMeasurements(ctx context.Context, userUID string) ([]models.WeightMeasurement, error) {
	var measurements []models.WeightMeasurement
	err := s.db.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("measured_at DESC").
		Find(&measurements).Error
	return measurements, err
}

// Water intake

func (s *TrackingService) AddWater(ctx context.Context, userUID string, amountML float64) (*models.WaterIntake, error) {
	if amountML <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	if err := s.requireUser(ctx, userUID); err != nil {
		return nil, err
	}

	intake := &models.WaterIntake{
		UserUID:   userUID,
		AmountML:  amountML,
		EntryDate: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(intake).Error; err != nil {
		return nil, err
	}
	return intake, nil
}

func (s *TrackingService) UpdateWater(ctx context.Context, userUID string, intakeID uint, amountML float64) error {
	if amountML <= 0 {
		return fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	res := s.db.WithContext(ctx).Model(&models.WaterIntake{}).
		Where("intake_id = ? AND user_uid = ?", intakeID, userUID).
		Update("amount_ml", amountML)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: water intake entry not found", models.ErrNotFound)
	}
	return nil
}

func (s *TrackingService) DeleteWater(ctx context.Context, userUID string, intakeID uint) error {
	res := s.db.WithContext(ctx).
		Where("intake_id = ? AND user_uid = ?", intakeID, userUID).
		Delete(&models.WaterIntake{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: water intake entry not found", models.ErrNotFound)
	}
	return nil
}

func (s *TrackingService) ListWater(ctx context.Context, userUID string) ([]models.WaterIntake, error) {
	var intakes []models.WaterIntake
	err := s.db.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("entry_date DESC").
		Find(&intakes).Error
	return intakes, err
}

// Exercise entries

func (s *TrackingService) AddExercise(ctx context.Context, userUID, name, exerciseType string, durationMinutes int, caloriesBurned float64) (*models.ExerciseEntry, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", models.ErrValidation)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", models.ErrValidation)
	}
	if err := s.requireUser(ctx, userUID); err != nil {
		return nil, err
	}

	entry := &models.ExerciseEntry{
		UserUID:         userUID,
		ExerciseName:    name,
		ExerciseType:    exerciseType,
		DurationMinutes: durationMinutes,
		CaloriesBurned:  caloriesBurned,
		EntryDate:       time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *TrackingService) UpdateExercise(ctx context.Context, userUID string, exerciseID uint, durationMinutes int, caloriesBurned float64) error {
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", models.ErrValidation)
	}
	res := s.db.WithContext(ctx).Model(&models.ExerciseEntry{}).
		Where("exercise_id = ? AND user_uid = ?", exerciseID, userUID).
		Updates(map[string]interface{}{
			"duration_minutes": durationMinutes,
			"calories_burned":  caloriesBurned,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: exercise entry not found", models.ErrNotFound)
	}
	return nil
}

func (s *TrackingService) DeleteExercise(ctx context.Context, userUID string, exerciseID uint) error {
	res := s.db.WithContext(ctx).
		Where("exercise_id = ? AND user_uid = ?", exerciseID, userUID).
		Delete(&models.ExerciseEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: exercise entry not found", models.ErrNotFound)
	}
	return nil
}

func (s *TrackingService) ListExercises(ctx context.Context, userUID string) ([]models.ExerciseEntry, error) {
	var entries []models.ExerciseEntry
	err := s.db.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}

// Meal entries

func (s *TrackingService) AddMealEntry(ctx context.Context, entry *models.MealEntry) (*models.MealEntry, error) {
	if entry.ProductName == "" {
		return nil, fmt.Errorf("%w: product name is required", models.ErrValidation)
	}
	if entry.MealType == "" {
		return nil, fmt.Errorf("%w: meal type is required", models.ErrValidation)
	}
	if err := s.requireUser(ctx, entry.UserUID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if entry.EntryDate.IsZero() {
		entry.EntryDate = now
	}
	entry.CreatedAt = now

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *TrackingService) DeleteMealEntry(ctx context.Context, userUID string, entryID uint) error {
	res := s.db.WithContext(ctx).
		Where("entry_id = ? AND user_uid = ?", entryID, userUID).
		Delete(&models.MealEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: meal entry not found", models.ErrNotFound)
	}
	return nil
}

func (s *TrackingService) ListMealEntries(ctx context.Context, userUID string) ([]models.MealEntry, error) {
	var entries []models.MealEntry
	err := s.db.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}

// Streaks

func (s *TrackingService) AddStreak(ctx context.Context, userUID string, currentStreak int) (*models.StreakHistory, error) {
	if currentStreak < 0 {
		return nil, fmt.Errorf("%w: streak must not be negative", models.ErrValidation)
	}
	if err := s.requireUser(ctx, userUID); err != nil {
		return nil, err
	}

	streak := &models.StreakHistory{
		UserUID:       userUID,
		StreakDate:    time.Now().UTC(),
		CurrentStreak: currentStreak,
		IsActive:      true,
	}
	if err := s.db.WithContext(ctx).Create(streak).Error; err != nil {
		return nil, err
	}
	return streak, nil
}

func (s *TrackingService) UpdateStreak(ctx context.Context, userUID string, streakID uint, currentStreak int) error {
	if currentStreak < 0 {
		return fmt.Errorf("%w: streak must not be negative", models.ErrValidation)
	}
	res := s.db.WithContext(ctx).Model(&models.StreakHistory{}).
		Where("streak_id = ? AND user_uid = ?", streakID, userUID).
		Update("current_streak", currentStreak)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: streak not found", models.ErrNotFound)
	}
	return nil
}

func (s *TrackingService) DisableStreak(ctx context.Context, userUID string, streakID uint) error {
	res := s.db.WithContext(ctx).Model(&models.StreakHistory{}).
		Where("streak_id = ? AND user_uid = ?", streakID, userUID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: streak not found", models.ErrNotFound)
	}
	return nil
}

func (s *TrackingService) ListStreaks(ctx context.Context, userUID string) ([]models.StreakHistory, error) {
	var streaks []models.StreakHistory
	err := s.db.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("streak_date DESC").
		Find(&streaks).Error
	return streaks, err
}
