package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutritrack-backend/services"
)

type NoteController struct {
	notes *services.NoteService
}

func NewNoteController(notes *services.NoteService) *NoteController {
	return &NoteController{notes: notes}
}

func (h *NoteController) AddNote(c *gin.Context) {
	consultantUID := c.GetString("uid")

	var req struct {
		GoalID  uint   `json:"goal_id" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.notes.AddNote(c.Request.Context(), consultantUID, req.GoalID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note": note})
}

func (h *NoteController) UpdateNote(c *gin.Context) {
	consultantUID := c.GetString("uid")
	noteID, err := parseUint(c.Param("noteId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note ID format"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.notes.UpdateNote(c.Request.Context(), consultantUID, noteID, req.Content); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note updated."})
}

func (h *NoteController) ListNotesForGoal(c *gin.Context) {
	goalID, err := parseUint(c.Param("goalId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID format"})
		return
	}

	notes, err := h.notes.ListNotesForGoal(c.Request.Context(), goalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (h *NoteController) DeleteNote(c *gin.Context) {
	consultantUID := c.GetString("uid")
	noteID, err := parseUint(c.Param("noteId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note ID format"})
		return
	}

	if err := h.notes.DeleteNote(c.Request.Context(), consultantUID, noteID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted."})
}
