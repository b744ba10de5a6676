package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"nutritrack-backend/models"
	"nutritrack-backend/monitoring"
	"nutritrack-backend/utils"
)

const (
	relationshipTopic      = "relationship_events"
	consultantDirectoryKey = "consultants:directory"
	directoryCacheTTL      = 5 * time.Minute
)

// ConsultantService is the relationship ledger: it owns invites, active
// consultation links and the consultant's client counter, and keeps the three
// consistent under concurrent access.
type ConsultantService struct {
	db     *gorm.DB
	cache  utils.RedisClient
	events utils.KafkaProducer
}

func NewConsultantService(db *gorm.DB, cache utils.RedisClient, events utils.KafkaProducer) *ConsultantService {
	return &ConsultantService{db: db, cache: cache, events: events}
}

// InviteUser opens a consultant-initiated invite. Capacity is checked here as
// a courtesy only; the authoritative gate runs at accept time.
func (s *ConsultantService) InviteUser(ctx context.Context, consultantUID, userUID string) error {
	var consultant models.Consultant
	if err := s.db.WithContext(ctx).First(&consultant, "consultant_uid = ?", consultantUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: consultant not found", models.ErrNotFound)
		}
		return err
	}
	if consultant.CurrentClients >= consultant.MaxClients {
		return fmt.Errorf("%w: no available slots for new clients", models.ErrConflict)
	}

	return s.createInvite(ctx, consultantUID, userUID, models.InitiatorConsultant)
}

// InviteConsultant opens a user-initiated invite to a consultant.
func (s *ConsultantService) InviteConsultant(ctx context.Context, userUID, consultantUID string) error {
	if err := s.db.WithContext(ctx).First(&models.Consultant{}, "consultant_uid = ?", consultantUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: consultant not found", models.ErrNotFound)
		}
		return err
	}

	return s.createInvite(ctx, consultantUID, userUID, models.InitiatorUser)
}

func (s *ConsultantService) createInvite(ctx context.Context, consultantUID, userUID string, initiator models.InviteInitiator) error {
	if err := s.db.WithContext(ctx).First(&models.User{}, "user_uid = ?", userUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", models.ErrNotFound)
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ConsultantRequest
		err := tx.Where("consultant_uid = ? AND user_uid = ? AND status = ?",
			consultantUID, userUID, models.InvitePending).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: invite already sent", models.ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		err = tx.Create(&models.ConsultantRequest{
			ConsultantUID: consultantUID,
			UserUID:       userUID,
			Status:        models.InvitePending,
			Initiator:     initiator,
			CreatedAt:     time.Now().UTC(),
		}).Error
		// Two racing invites for the pair can both pass the read above under
		// read committed; the partial unique index on pending rows settles it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: invite already sent", models.ErrConflict)
		}
		return err
	})
	if err != nil {
		return err
	}

	publishEvent(s.events, relationshipTopic, map[string]interface{}{
		"event":          "invite_sent",
		"consultant_uid": consultantUID,
		"user_uid":       userUID,
		"initiator":      initiator,
	})
	return nil
}

// RespondToInvite settles the pending invite for the pair. Only the side that
// did not open the invite may respond. On accept, the capacity check and the
// counter increment happen in one guarded statement inside the transaction, so
// two racing accepts for the same consultant cannot both pass the gate.
func (s *ConsultantService) RespondToInvite(ctx context.Context, responder models.InviteInitiator, consultantUID, userUID string, accept bool) error {
	var invite models.ConsultantRequest
	err := s.db.WithContext(ctx).
		Where("consultant_uid = ? AND user_uid = ? AND status = ?",
			consultantUID, userUID, models.InvitePending).
		First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: invite not found or already responded to", models.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if invite.Initiator == responder {
		return fmt.Errorf("%w: the initiating side cannot respond to its own invite", models.ErrUnauthorized)
	}

	status := models.InviteRejected
	if accept {
		status = models.InviteAccepted
	}
	now := time.Now().UTC()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Claim the invite first so a concurrent response loses cleanly.
		res := tx.Model(&models.ConsultantRequest{}).
			Where("request_id = ? AND status = ?", invite.RequestID, models.InvitePending).
			Updates(map[string]interface{}{"status": status, "responded_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: invite already responded to", models.ErrConflict)
		}

		if !accept {
			return nil
		}

		res = tx.Model(&models.Consultant{}).
			Where("consultant_uid = ? AND current_clients < max_clients", consultantUID).
			UpdateColumn("current_clients", gorm.Expr("current_clients + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: no available slots for new clients", models.ErrConflict)
		}

		return tx.Create(&models.UserConsultant{
			UserUID:        userUID,
			ConsultantUID:  consultantUID,
			AssignmentDate: now,
			IsActive:       true,
		}).Error
	})
	if err != nil {
		return err
	}

	monitoring.InviteResponsesTotal.WithLabelValues(string(status)).Inc()
	s.invalidateDirectory(ctx)
	publishEvent(s.events, relationshipTopic, map[string]interface{}{
		"event":          "invite_" + string(status),
		"consultant_uid": consultantUID,
		"user_uid":       userUID,
	})
	return nil
}

// Dissolve removes the active link for the pair, releases one unit of the
// consultant's capacity and clears the accepted invites that carried it.
// Invites and relationships of other pairs are untouched.
func (s *ConsultantService) Dissolve(ctx context.Context, userUID, consultantUID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_uid = ? AND consultant_uid = ?", userUID, consultantUID).
			Delete(&models.UserConsultant{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: user is not assigned to this consultant", models.ErrNotFound)
		}

		// Floor at zero guards against counter drift from before this pair
		// of operations became transactional.
		if err := tx.Model(&models.Consultant{}).
			Where("consultant_uid = ?", consultantUID).
			UpdateColumn("current_clients",
				gorm.Expr("CASE WHEN current_clients > 0 THEN current_clients - 1 ELSE 0 END")).Error; err != nil {
			return err
		}

		return tx.Where("user_uid = ? AND consultant_uid = ? AND status = ?",
			userUID, consultantUID, models.InviteAccepted).
			Delete(&models.ConsultantRequest{}).Error
	})
	if err != nil {
		return err
	}

	s.invalidateDirectory(ctx)
	publishEvent(s.events, relationshipTopic, map[string]interface{}{
		"event":          "relationship_dissolved",
		"consultant_uid": consultantUID,
		"user_uid":       userUID,
	})
	return nil
}

// ListRelationships returns the caller's active consultation links. Admins see
// every pair.
func (s *ConsultantService) ListRelationships(ctx context.Context, role, uid string) ([]models.UserConsultant, error) {
	q := s.db.WithContext(ctx).Order("assignment_date DESC")
	switch role {
	case RoleConsultant:
		q = q.Where("consultant_uid = ?", uid)
	case RoleUser:
		q = q.Where("user_uid = ?", uid)
	}

	var relationships []models.UserConsultant
	err := q.Find(&relationships).Error
	return relationships, err
}

// ListInvites returns the invites the caller is a party to, newest first.
func (s *ConsultantService) ListInvites(ctx context.Context, role, uid string) ([]models.ConsultantRequest, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	switch role {
	case RoleConsultant:
		q = q.Where("consultant_uid = ?", uid)
	case RoleUser:
		q = q.Where("user_uid = ?", uid)
	}

	var invites []models.ConsultantRequest
	err := q.Find(&invites).Error
	return invites, err
}

// ListConsultants serves the consultant directory, cached for a few minutes.
func (s *ConsultantService) ListConsultants(ctx context.Context) ([]models.Consultant, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFromCache(ctx, consultantDirectoryKey)
		switch {
		case err == nil:
			var consultants []models.Consultant
			if json.Unmarshal([]byte(cached), &consultants) == nil {
				return consultants, nil
			}
		case !errors.Is(err, utils.ErrCacheMiss):
			log.Printf("Failed to read consultant directory cache: %v", err)
		}
	}

	var consultants []models.Consultant
	if err := s.db.WithContext(ctx).Find(&consultants).Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(consultants); err == nil {
			if err := s.cache.SetToCache(ctx, consultantDirectoryKey, string(raw), directoryCacheTTL); err != nil {
				log.Printf("Failed to cache consultant directory: %v", err)
			}
		}
	}
	return consultants, nil
}

func (s *ConsultantService) GetConsultant(ctx context.Context, uid string) (*models.Consultant, error) {
	var consultant models.Consultant
	if err := s.db.WithContext(ctx).First(&consultant, "consultant_uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: consultant not found", models.ErrNotFound)
		}
		return nil, err
	}
	return &consultant, nil
}

func (s *ConsultantService) UpdateNickname(ctx context.Context, uid, nickname string) error {
	if nickname == "" {
		return fmt.Errorf("%w: new nickname is required", models.ErrValidation)
	}
	return s.updateConsultant(ctx, uid, map[string]interface{}{"nickname": nickname})
}

func (s *ConsultantService) UpdateProfilePicture(ctx context.Context, uid, picture string) error {
	if picture == "" {
		return fmt.Errorf("%w: new profile picture is required", models.ErrValidation)
	}
	return s.updateConsultant(ctx, uid, map[string]interface{}{"profile_picture": picture})
}

func (s *ConsultantService) UpdateProfileDescription(ctx context.Context, uid, description string) error {
	if description == "" {
		return fmt.Errorf("%w: new profile description is required", models.ErrValidation)
	}
	return s.updateConsultant(ctx, uid, map[string]interface{}{"profile_description": description})
}

// UpdateMaxClients changes the capacity ceiling. Lowering it below the current
// client count is allowed; the capacity invariant only gates new relationships.
func (s *ConsultantService) UpdateMaxClients(ctx context.Context, uid string, maxClients int) error {
	if maxClients < 0 {
		return fmt.Errorf("%w: max clients must not be negative", models.ErrValidation)
	}
	return s.updateConsultant(ctx, uid, map[string]interface{}{"max_clients": maxClients})
}

func (s *ConsultantService) UpdateExperienceYears(ctx context.Context, uid string, years int) error {
	if years < 0 {
		return fmt.Errorf("%w: experience years must not be negative", models.ErrValidation)
	}
	return s.updateConsultant(ctx, uid, map[string]interface{}{"experience_years": years})
}

func (s *ConsultantService) updateConsultant(ctx context.Context, uid string, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.Consultant{}).
		Where("consultant_uid = ?", uid).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: consultant not found", models.ErrNotFound)
	}
	s.invalidateDirectory(ctx)
	return nil
}

func (s *ConsultantService) invalidateDirectory(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteFromCache(ctx, consultantDirectoryKey); err != nil {
		log.Printf("Failed to invalidate consultant directory cache: %v", err)
	}
}
