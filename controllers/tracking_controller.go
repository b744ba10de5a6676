package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nutritrack-backend/models"
	"nutritrack-backend/services"
)

type TrackingController struct {
	tracking *services.TrackingService
}

func NewTrackingController(tracking *services.TrackingService) *TrackingController {
	return &TrackingController{tracking: tracking}
}

// Weight measurements

func (h *TrackingController) AddWeightMeasurement(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		Weight     float64   `json:"weight" binding:"required"`
		MeasuredAt time.Time `json:"measured_at"`
		DeviceID   string    `json:"device_id"`
		IsSynced   bool      `json:"is_synced"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.tracking.AddWeightMeasurement(c.Request.Context(), uid, req.Weight, req.MeasuredAt, req.DeviceID, req.IsSynced)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"measurement": m})
}

func (h *TrackingController) ListWeightMeasurements(c *gin.Context) {
	measurements, err := h.tracking.ListWeightMeasurements(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": measurements})
}

// Water intake

func (h *TrackingController) AddWater(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		AmountML float64 `json:"amount_ml" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intake, err := h.tracking.AddWater(c.Request.Context(), uid, req.AmountML)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"intake": intake})
}

func (h *TrackingController) UpdateWater(c *gin.Context) {
	uid := c.GetString("uid")
	intakeID, err := parseUint(c.Param("intakeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid intake ID format"})
		return
	}

	var req struct {
		AmountML float64 `json:"amount_ml" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tracking.UpdateWater(c.Request.Context(), uid, intakeID, req.AmountML); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Water intake updated."})
}

func (h *TrackingController) DeleteWater(c *gin.Context) {
	uid := c.GetString("uid")
	intakeID, err := parseUint(c.Param("intakeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid intake ID format"})
		return
	}

	if err := h.tracking.DeleteWater(c.Request.Context(), uid, intakeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Water intake deleted."})
}

func (h *TrackingController) ListWater(c *gin.Context) {
	intakes, err := h.tracking.ListWater(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intakes": intakes})
}

// Exercise entries

func (h *TrackingController) AddExercise(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		ExerciseName    string  `json:"exercise_name" binding:"required"`
		ExerciseType    string  `json:"exercise_type"`
		DurationMinutes int     `json:"duration_minutes" binding:"required"`
		CaloriesBurned  float64 `json:"calories_burned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.tracking.AddExercise(c.Request.Context(), uid, req.ExerciseName, req.ExerciseType, req.DurationMinutes, req.CaloriesBurned)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"exercise": entry})
}

func (h *TrackingController) UpdateExercise(c *gin.Context) {
	uid := c.GetString("uid")
	exerciseID, err := parseUint(c.Param("exerciseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exercise ID format"})
		return
	}

	var req struct {
		DurationMinutes int     `json:"duration_minutes" binding:"required"`
		CaloriesBurned  float64 `json:"calories_burned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tracking.UpdateExercise(c.Request.Context(), uid, exerciseID, req.DurationMinutes, req.CaloriesBurned); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise updated."})
}

func (h *TrackingController) DeleteExercise(c *gin.Context) {
	uid := c.GetString("uid")
	exerciseID, err := parseUint(c.Param("exerciseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exercise ID format"})
		return
	}

	if err := h.tracking.DeleteExercise(c.Request.Context(), uid, exerciseID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted."})
}

func (h *TrackingController) ListExercises(c *gin.Context) {
	entries, err := h.tracking.ListExercises(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": entries})
}

// Meal entries

func (h *TrackingController) AddMealEntry(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		ProductName string    `json:"product_name" binding:"required"`
		MealType    string    `json:"meal_type" binding:"required"`
		Grams       float64   `json:"quantity_grams"`
		Calories    float64   `json:"calories"`
		Protein     float64   `json:"protein"`
		Carbs       float64   `json:"carbs"`
		Fats        float64   `json:"fats"`
		EntryDate   time.Time `json:"entry_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.tracking.AddMealEntry(c.Request.Context(), &models.MealEntry{
		UserUID:       uid,
		ProductName:   req.ProductName,
		MealType:      req.MealType,
		QuantityGrams: req.Grams,
		Calories:      req.Calories,
		Protein:       req.Protein,
		Carbs:         req.Carbs,
		Fats:          req.Fats,
		EntryDate:     req.EntryDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *TrackingController) DeleteMealEntry(c *gin.Context) {
	uid := c.GetString("uid")
	entryID, err := parseUint(c.Param("entryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID format"})
		return
	}

	if err := h.tracking.DeleteMealEntry(c.Request.Context(), uid, entryID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal entry deleted."})
}

func (h *TrackingController) ListMealEntries(c *gin.Context) {
	entries, err := h.tracking.ListMealEntries(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Streaks

func (h *TrackingController) AddStreak(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		CurrentStreak int `json:"current_streak"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	streak, err := h.tracking.AddStreak(c.Request.Context(), uid, req.CurrentStreak)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"streak": streak})
}

func (h *TrackingController) UpdateStreak(c *gin.Context) {
	uid := c.GetString("uid")
	streakID, err := parseUint(c.Param("streakId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid streak ID format"})
		return
	}

	var req struct {
		CurrentStreak int `json:"current_streak"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tracking.UpdateStreak(c.Request.Context(), uid, streakID, req.CurrentStreak); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Streak updated."})
}

func (h *TrackingController) DisableStreak(c *gin.Context) {
	uid := c.GetString("uid")
	streakID, err := parseUint(c.Param("streakId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid streak ID format"})
		return
	}

	if err := h.tracking.DisableStreak(c.Request.Context(), uid, streakID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Streak disabled."})
}

func (h *TrackingController) ListStreaks(c *gin.Context) {
	streaks, err := h.tracking.ListStreaks(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streaks": streaks})
}
