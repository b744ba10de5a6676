package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nutritrack-backend/services"
)

type GoalController struct {
	goals *services.GoalService
}

func NewGoalController(goals *services.GoalService) *GoalController {
	return &GoalController{goals: goals}
}

func (h *GoalController) CreateGoal(c *gin.Context) {
	uid := c.GetString("uid")

	var req services.CreateGoalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, warning, err := h.goals.CreateGoal(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"goal": goal}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GoalController) GetGoal(c *gin.Context) {
	goalID, err := parseUint(c.Param("goalId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID format"})
		return
	}

	goal, err := h.goals.GetGoal(c.Request.Context(), goalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalController) GetUserGoalIDs(c *gin.Context) {
	uid := c.GetString("uid")

	ids, err := h.goals.ListGoalIDs(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal_ids": ids})
}

func (h *GoalController) GetGoalIDByUserUID(c *gin.Context) {
	userUID := c.Param("userUid")

	goalID, err := h.goals.GetGoalIDByUser(c.Request.Context(), userUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal_id": goalID})
}

func (h *GoalController) UpdateGoalWeight(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		GoalID    uint    `json:"goal_id" binding:"required"`
		NewWeight float64 `json:"new_weight" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	warning, err := h.goals.UpdateTargetWeight(c.Request.Context(), uid, req.GoalID, req.NewWeight)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"message": "Target weight updated and goal recalculated successfully."}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GoalController) ApproveGoal(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		GoalID uint `json:"goal_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.goals.ApproveGoal(c.Request.Context(), uid, req.GoalID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal successfully approved."})
}

func (h *GoalController) DeleteGoal(c *gin.Context) {
	uid := c.GetString("uid")
	goalID, err := parseUint(c.Param("goalId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID format"})
		return
	}

	if err := h.goals.DeleteGoal(c.Request.Context(), uid, goalID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal successfully deleted."})
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}
