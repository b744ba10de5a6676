package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutritrack-backend/services"
)

type AdminController struct {
	admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{admin: admin}
}

func (h *AdminController) RemoveUserAccount(c *gin.Context) {
	if err := h.admin.RemoveUserAccount(c.Request.Context(), c.Param("userUid")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User account and all related data removed."})
}

func (h *AdminController) RemoveConsultantAccount(c *gin.Context) {
	if err := h.admin.RemoveConsultantAccount(c.Request.Context(), c.Param("consultantUid")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consultant account and all related data removed."})
}

func (h *AdminController) GetStatistics(c *gin.Context) {
	stats, err := h.admin.GetStatistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminController) FindUserByNickname(c *gin.Context) {
	user, err := h.admin.FindUserByNickname(c.Request.Context(), c.Param("nickname"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminController) FindConsultantByNickname(c *gin.Context) {
	consultant, err := h.admin.FindConsultantByNickname(c.Request.Context(), c.Param("nickname"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, consultant)
}
