package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nutritrack-backend/models"
	"nutritrack-backend/monitoring"
	"nutritrack-backend/utils"
)

const goalTopic = "goal_events"

// GoalService owns UserGoal records and runs the nutrition calculator on
// create and on every recalculation. Recalculation only ever overwrites
// target_weight and the four daily_* fields.
type GoalService struct {
	db     *gorm.DB
	events utils.KafkaProducer
}

func NewGoalService(db *gorm.DB, events utils.KafkaProducer) *GoalService {
	return &GoalService{db: db, events: events}
}

type CreateGoalInput struct {
	ConsultantUID *string         `json:"consultant_uid"`
	GoalType      models.GoalType `json:"goal_type"`
	TargetWeight  float64         `json:"target_weight"`
	DurationWeeks int             `json:"duration_weeks"`
}

// CreateGoal validates the user's profile and the goal parameters, derives the
// daily targets and persists the goal. A goal referencing a consultant starts
// unapproved; approval is a separate step. The consultant reference is only
// checked for existence — an accepted relationship is not required yet.
func (s *GoalService) CreateGoal(ctx context.Context, userUID string, in CreateGoalInput) (*models.UserGoal, string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "user_uid = ?", userUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: user not found", models.ErrNotFound)
		}
		return nil, "", err
	}
	if !user.HasCompleteProfile() {
		return nil, "", fmt.Errorf("%w: user data is incomplete for goal creation (weight, height, gender, or birth year missing)", models.ErrValidation)
	}
	if in.DurationWeeks <= 0 {
		return nil, "", fmt.Errorf("%w: duration weeks must be greater than zero", models.ErrValidation)
	}
	if !in.GoalType.Valid() {
		return nil, "", fmt.Errorf("%w: unknown goal type %q", models.ErrValidation, in.GoalType)
	}

	if in.ConsultantUID != nil && *in.ConsultantUID == "" {
		in.ConsultantUID = nil
	}
	if in.ConsultantUID != nil {
		err := s.db.WithContext(ctx).First(&models.Consultant{}, "consultant_uid = ?", *in.ConsultantUID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: consultant not found", models.ErrValidation)
		}
		if err != nil {
			return nil, "", err
		}
	}

	targets := utils.CalculateNutrition(utils.NutritionInput{
		CurrentWeight: *user.CurrentWeight,
		TargetWeight:  in.TargetWeight,
		DurationWeeks: in.DurationWeeks,
		Height:        *user.Height,
		Gender:        user.Gender,
		GoalType:      in.GoalType,
		ActivityLevel: user.ActivityLevel,
		BirthYear:     user.BirthYear,
	})

	goal := &models.UserGoal{
		UserUID:                userUID,
		ConsultantUID:          in.ConsultantUID,
		GoalType:               in.GoalType,
		TargetWeight:           in.TargetWeight,
		DurationWeeks:          in.DurationWeeks,
		DailyCalories:          targets.Calories,
		DailyProtein:           targets.Protein,
		DailyCarbs:             targets.Carbs,
		DailyFats:              targets.Fats,
		StartDate:              time.Now().UTC(),
		IsApprovedByConsultant: in.ConsultantUID == nil,
	}
	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return nil, "", err
	}

	publishEvent(s.events, goalTopic, map[string]interface{}{
		"event":    "goal_created",
		"goal_id":  goal.GoalID,
		"user_uid": userUID,
	})
	return goal, targets.Warning, nil
}

func (s *GoalService) GetGoal(ctx context.Context, goalID uint) (*models.UserGoal, error) {
	var goal models.UserGoal
	if err := s.db.WithContext(ctx).First(&goal, "goal_id = ?", goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal not found", models.ErrNotFound)
		}
		return nil, err
	}
	return &goal, nil
}

func (s *GoalService) ListGoalIDs(ctx context.Context, userUID string) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.UserGoal{}).
		Where("user_uid = ?", userUID).
		Order("start_date DESC").
		Pluck("goal_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no goals found for this user", models.ErrNotFound)
	}
	return ids, nil
}

func (s *GoalService) GetGoalIDByUser(ctx context.Context, userUID string) (uint, error) {
	var goal models.UserGoal
	err := s.db.WithContext(ctx).Where("user_uid = ?", userUID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: goal not found for the specified user", models.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return goal.GoalID, nil
}

// UpdateTargetWeight sets a new target and recalculates the derived fields in
// place. The goal id, owner and start date never change, and calling twice
// with the same target yields the same derived values.
func (s *GoalService) UpdateTargetWeight(ctx context.Context, userUID string, goalID uint, newWeight float64) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "user_uid = ?", userUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: user not found", models.ErrNotFound)
		}
		return "", err
	}
	if !user.HasCompleteProfile() {
		return "", fmt.Errorf("%w: user data is incomplete for goal recalculation (weight, height, gender, or birth year missing)", models.ErrValidation)
	}

	var goal models.UserGoal
	err := s.db.WithContext(ctx).
		Where("goal_id = ? AND user_uid = ?", goalID, userUID).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: goal not found for the specified goal ID and user", models.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if goal.DurationWeeks <= 0 {
		return "", fmt.Errorf("%w: duration weeks must be greater than zero", models.ErrValidation)
	}

	targets := utils.CalculateNutrition(utils.NutritionInput{
		CurrentWeight: *user.CurrentWeight,
		TargetWeight:  newWeight,
		DurationWeeks: goal.DurationWeeks,
		Height:        *user.Height,
		Gender:        user.Gender,
		GoalType:      goal.GoalType,
		ActivityLevel: user.ActivityLevel,
		BirthYear:     user.BirthYear,
	})

	err = s.db.WithContext(ctx).Model(&models.UserGoal{}).
		Where("goal_id = ?", goal.GoalID).
		Updates(map[string]interface{}{
			"target_weight":  newWeight,
			"daily_calories": targets.Calories,
			"daily_protein":  targets.Protein,
			"daily_carbs":    targets.Carbs,
			"daily_fats":     targets.Fats,
		}).Error
	if err != nil {
		return "", err
	}

	monitoring.GoalRecalculationsTotal.Inc()
	publishEvent(s.events, goalTopic, map[string]interface{}{
		"event":    "goal_recalculated",
		"goal_id":  goal.GoalID,
		"user_uid": userUID,
	})
	return targets.Warning, nil
}

// ApproveGoal records the assigned consultant's sign-off. There is no
// un-approve operation.
func (s *GoalService) ApproveGoal(ctx context.Context, consultantUID string, goalID uint) error {
	res := s.db.WithContext(ctx).Model(&models.UserGoal{}).
		Where("goal_id = ? AND consultant_uid = ?", goalID, consultantUID).
		Update("is_approved_by_consultant", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: goal not found or consultant not authorized to approve this goal", models.ErrNotFound)
	}

	publishEvent(s.events, goalTopic, map[string]interface{}{
		"event":          "goal_approved",
		"goal_id":        goalID,
		"consultant_uid": consultantUID,
	})
	return nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, userUID string, goalID uint) error {
	res := s.db.WithContext(ctx).
		Where("goal_id = ? AND user_uid = ?", goalID, userUID).
		Delete(&models.UserGoal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: goal not found or user not authorized to delete this goal", models.ErrNotFound)
	}
	return nil
}
