package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nutritrack-backend/models"
)

// NoteService lets a consultant annotate goals of users they actively consult.
// Note rights follow the accepted invite for the pair, so dissolving the
// relationship revokes them.
type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

func (s *NoteService) AddNote(ctx context.Context, consultantUID string, goalID uint, content string) (*models.ConsultantNote, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: note content is required", models.ErrValidation)
	}

	var goal models.UserGoal
	if err := s.db.WithContext(ctx).First(&goal, "goal_id = ?", goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal not found", models.ErrNotFound)
		}
		return nil, err
	}

	if err := s.requireAcceptedConsultation(ctx, consultantUID, goal.UserUID); err != nil {
		return nil, err
	}

	note := &models.ConsultantNote{
		ConsultantUID: consultantUID,
		UserUID:       goal.UserUID,
		GoalID:        goalID,
		Content:       content,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, consultantUID string, noteID uint, content string) error {
	if content == "" {
		return fmt.Errorf("%w: note content is required", models.ErrValidation)
	}

	var note models.ConsultantNote
	if err := s.db.WithContext(ctx).First(&note, "note_id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: note not found", models.ErrNotFound)
		}
		return err
	}
	if note.ConsultantUID != consultantUID {
		return fmt.Errorf("%w: note belongs to another consultant", models.ErrUnauthorized)
	}
	if err := s.requireAcceptedConsultation(ctx, consultantUID, note.UserUID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&models.ConsultantNote{}).
		Where("note_id = ?", noteID).
		Update("content", content).Error
}

func (s *NoteService) ListNotesForGoal(ctx context.Context, goalID uint) ([]models.ConsultantNote, error) {
	var notes []models.ConsultantNote
	err := s.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *NoteService) DeleteNote(ctx context.Context, consultantUID string, noteID uint) error {
	var note models.ConsultantNote
	if err := s.db.WithContext(ctx).First(&note, "note_id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: note not found", models.ErrNotFound)
		}
		return err
	}
	if note.ConsultantUID != consultantUID {
		return fmt.Errorf("%w: note belongs to another consultant", models.ErrUnauthorized)
	}
	return s.db.WithContext(ctx).Delete(&models.ConsultantNote{}, "note_id = ?", noteID).Error
}

func (s *NoteService) requireAcceptedConsultation(ctx context.Context, consultantUID, userUID string) error {
	var invite models.ConsultantRequest
	err := s.db.WithContext(ctx).
		Where("consultant_uid = ? AND user_uid = ? AND status = ?",
			consultantUID, userUID, models.InviteAccepted).
		First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: consultation request must be accepted", models.ErrValidation)
	}
	return err
}
