package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nutritrack-backend/models"
	"nutritrack-backend/utils"
)

// AdminService runs the administrative multi-entity removals. Each removal is
// a single transaction: either every dependent row goes, or none do.
type AdminService struct {
	db    *gorm.DB
	cache utils.RedisClient
}

func NewAdminService(db *gorm.DB, cache utils.RedisClient) *AdminService {
	return &AdminService{db: db, cache: cache}
}

// RemoveUserAccount deletes the user and everything hanging off them:
// measurements, meals, exercise, water, streaks, notes, invites,
// relationships and goals. Consultants linked to the user get their client
// counter released as part of the same transaction.
func (s *AdminService) RemoveUserAccount(ctx context.Context, userUID string) error {
	if err := s.db.WithContext(ctx).First(&models.User{}, "user_uid = ?", userUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", models.ErrNotFound)
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var relationships []models.UserConsultant
		if err := tx.Where("user_uid = ?", userUID).Find(&relationships).Error; err != nil {
			return err
		}
		for _, rel := range relationships {
			err := tx.Model(&models.Consultant{}).
				Where("consultant_uid = ?", rel.ConsultantUID).
				UpdateColumn("current_clients",
					gorm.Expr("CASE WHEN current_clients > 0 THEN current_clients - 1 ELSE 0 END")).Error
			if err != nil {
				return err
			}
		}

		for _, model := range []interface{}{
			&models.WeightMeasurement{},
			&models.MealEntry{},
			&models.ExerciseEntry{},
			&models.WaterIntake{},
			&models.StreakHistory{},
			&models.ConsultantNote{},
			&models.ConsultantRequest{},
			&models.UserConsultant{},
			&models.UserGoal{},
		} {
			if err := tx.Where("user_uid = ?", userUID).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_uid = ?", userUID).Delete(&models.User{}).Error
	})
	if err != nil {
		return err
	}

	s.invalidateDirectory(ctx)
	return nil
}

// RemoveConsultantAccount deletes the consultant together with their notes,
// invites and relationships. Goals they oversaw survive, but lose the
// consultant reference and fall back to the unapproved state since the
// approving party no longer exists.
func (s *AdminService) RemoveConsultantAccount(ctx context.Context, consultantUID string) error {
	if err := s.db.WithContext(ctx).First(&models.Consultant{}, "consultant_uid = ?", consultantUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: consultant not found", models.ErrNotFound)
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.ConsultantNote{},
			&models.ConsultantRequest{},
			&models.UserConsultant{},
		} {
			if err := tx.Where("consultant_uid = ?", consultantUID).Delete(model).Error; err != nil {
				return err
			}
		}

		err := tx.Model(&models.UserGoal{}).
			Where("consultant_uid = ?", consultantUID).
			Updates(map[string]interface{}{
				"consultant_uid":            nil,
				"is_approved_by_consultant": false,
			}).Error
		if err != nil {
			return err
		}

		return tx.Where("consultant_uid = ?", consultantUID).Delete(&models.Consultant{}).Error
	})
	if err != nil {
		return err
	}

	s.invalidateDirectory(ctx)
	return nil
}

type Statistics struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveUsers       int64 `json:"active_users"`
	TotalConsultants  int64 `json:"total_consultants"`
	ActiveConsultants int64 `json:"active_consultants"`
}

func (s *AdminService) GetStatistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Consultant{}).Count(&stats.TotalConsultants).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Consultant{}).Where("is_active = ?", true).Count(&stats.ActiveConsultants).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) FindUserByNickname(ctx context.Context, nickname string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "nickname = ?", nickname).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", models.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *AdminService) FindConsultantByNickname(ctx context.Context, nickname string) (*models.Consultant, error) {
	var consultant models.Consultant
	if err := s.db.WithContext(ctx).First(&consultant, "nickname = ?", nickname).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: consultant not found", models.ErrNotFound)
		}
		return nil, err
	}
	return &consultant, nil
}

func (s *AdminService) invalidateDirectory(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeleteFromCache(ctx, consultantDirectoryKey)
}
