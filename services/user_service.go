package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"nutritrack-backend/models"
	"nutritrack-backend/monitoring"
	"nutritrack-backend/utils"
)

type UserService struct {
	db       *gorm.DB
	uploader *utils.S3Uploader
	events   utils.KafkaProducer
}

func NewUserService(db *gorm.DB, uploader *utils.S3Uploader, events utils.KafkaProducer) *UserService {
	return &UserService{db: db, uploader: uploader, events: events}
}

func (s *UserService) GetUser(ctx context.Context, uid string) (map[string]interface{}, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "user_uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", models.ErrNotFound)
		}
		return nil, err
	}

	profile := map[string]interface{}{
		"user_uid":            user.UserUID,
		"nickname":            user.Nickname,
		"email":               user.Email,
		"profile_picture":     user.ProfilePicture,
		"profile_description": user.ProfileDescription,
		"gender":              user.Gender,
		"height":              user.Height,
		"current_weight":      user.CurrentWeight,
		"activity_level":      user.ActivityLevel,
		"birth_year":          user.BirthYear,
		"created_at":          user.CreatedAt,
		"last_login":          user.LastLogin,
		"is_active":           user.IsActive,
	}
	if user.Height != nil && user.CurrentWeight != nil {
		if bmi, err := utils.CalculateBMI(float64(*user.Height), *user.CurrentWeight); err == nil {
			profile["bmi"] = bmi
			profile["bmi_category"] = utils.BMICategory(bmi)
		}
	}
	return profile, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (s *UserService) UpdateNickname(ctx context.Context, uid, nickname string) error {
	if nickname == "" {
		return fmt.Errorf("%w: new nickname is required", models.ErrValidation)
	}
	return s.updateUser(ctx, uid, map[string]interface{}{"nickname": nickname})
}

func (s *UserService) UpdateProfileDescription(ctx context.Context, uid, description string) error {
	if description == "" {
		return fmt.Errorf("%w: new profile description is required", models.ErrValidation)
	}
	return s.updateUser(ctx, uid, map[string]interface{}{"profile_description": description})
}

// UpdateProfilePicture accepts either a plain URL or a base64 data payload.
// Base64 payloads are uploaded to S3 first when an uploader is configured.
// Returns the URL that was stored.
func (s *UserService) UpdateProfilePicture(ctx context.Context, uid, picture string) (string, error) {
	if picture == "" {
		return "", fmt.Errorf("%w: new profile picture is required", models.ErrValidation)
	}
	if strings.HasPrefix(picture, "data:") && s.uploader != nil {
		url, err := s.uploader.UploadBase64Image(ctx, picture, uid)
		if err != nil {
			return "", fmt.Errorf("failed to upload profile picture: %w", err)
		}
		picture = url
	}
	if err := s.updateUser(ctx, uid, map[string]interface{}{"profile_picture": picture}); err != nil {
		return "", err
	}
	return picture, nil
}

// UpdateProfileInput carries the body-metric fields a user may change. Weight
// has its own endpoint because it triggers goal recalculation.
type UpdateProfileInput struct {
	Gender        string               `json:"gender"`
	Height        *int                 `json:"height"`
	BirthYear     *int                 `json:"birth_year"`
	ActivityLevel models.ActivityLevel `json:"activity_level"`
}

func (s *UserService) UpdateProfile(ctx context.Context, uid string, in UpdateProfileInput) error {
	fields := map[string]interface{}{}
	if in.Gender != "" {
		fields["gender"] = in.Gender
	}
	if in.Height != nil {
		if *in.Height <= 0 {
			return fmt.Errorf("%w: height must be positive", models.ErrValidation)
		}
		fields["height"] = *in.Height
	}
	if in.BirthYear != nil {
		if *in.BirthYear < 1900 || *in.BirthYear > time.Now().Year() {
			return fmt.Errorf("%w: birth year is out of range", models.ErrValidation)
		}
		fields["birth_year"] = *in.BirthYear
	}
	if in.ActivityLevel != "" {
		if !in.ActivityLevel.Valid() {
			return fmt.Errorf("%w: unknown activity level", models.ErrValidation)
		}
		fields["activity_level"] = in.ActivityLevel
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: no profile fields provided", models.ErrValidation)
	}
	return s.updateUser(ctx, uid, fields)
}

// UpdateCurrentWeight records the user's new weight and recalculates the
// derived targets of every goal the user owns, since all of them were derived
// from the old weight. Goal ids, owners and start dates are untouched.
func (s *UserService) UpdateCurrentWeight(ctx context.Context, uid string, weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("%w: current weight must be positive", models.ErrValidation)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "user_uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", models.ErrNotFound)
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("user_uid = ?", uid).
			Update("current_weight", weight).Error; err != nil {
			return err
		}

		if user.Height == nil || user.Gender == "" || user.BirthYear == 0 {
			// Goal creation requires a complete profile, so no goals can
			// exist yet; nothing to recalculate.
			return nil
		}

		var goals []models.UserGoal
		if err := tx.Where("user_uid = ?", uid).Find(&goals).Error; err != nil {
			return err
		}
		for _, goal := range goals {
			targets := utils.CalculateNutrition(utils.NutritionInput{
				CurrentWeight: weight,
				TargetWeight:  goal.TargetWeight,
				DurationWeeks: goal.DurationWeeks,
				Height:        *user.Height,
				Gender:        user.Gender,
				GoalType:      goal.GoalType,
				ActivityLevel: user.ActivityLevel,
				BirthYear:     user.BirthYear,
			})
			err := tx.Model(&models.UserGoal{}).
				Where("goal_id = ?", goal.GoalID).
				Updates(map[string]interface{}{
					"daily_calories": targets.Calories,
					"daily_protein":  targets.Protein,
					"daily_carbs":    targets.Carbs,
					"daily_fats":     targets.Fats,
				}).Error
			if err != nil {
				return err
			}
			monitoring.GoalRecalculationsTotal.Inc()
		}
		return nil
	})
	if err != nil {
		return err
	}

	publishEvent(s.events, goalTopic, map[string]interface{}{
		"event":    "weight_updated",
		"user_uid": uid,
		"weight":   weight,
	})
	return nil
}

func (s *UserService) updateUser(ctx context.Context, uid string, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("user_uid = ?", uid).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user not found", models.ErrNotFound)
	}
	return nil
}
