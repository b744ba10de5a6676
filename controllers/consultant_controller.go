package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutritrack-backend/models"
	"nutritrack-backend/services"
)

type ConsultantController struct {
	consultants *services.ConsultantService
}

func NewConsultantController(consultants *services.ConsultantService) *ConsultantController {
	return &ConsultantController{consultants: consultants}
}

func (h *ConsultantController) ListConsultants(c *gin.Context) {
	consultants, err := h.consultants.ListConsultants(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultants": consultants})
}

func (h *ConsultantController) GetConsultant(c *gin.Context) {
	consultant, err := h.consultants.GetConsultant(c.Request.Context(), c.Param("consultantUid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, consultant)
}

// InviteUser is called by a consultant offering consultation to a user.
func (h *ConsultantController) InviteUser(c *gin.Context) {
	consultantUID := c.GetString("uid")

	var req struct {
		UserUID string `json:"user_uid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.consultants.InviteUser(c.Request.Context(), consultantUID, req.UserUID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Invitation sent."})
}

// InviteConsultant is called by a user requesting consultation from a consultant.
func (h *ConsultantController) InviteConsultant(c *gin.Context) {
	userUID := c.GetString("uid")

	var req struct {
		ConsultantUID string `json:"consultant_uid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.consultants.InviteConsultant(c.Request.Context(), userUID, req.ConsultantUID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Invitation sent."})
}

type respondInviteRequest struct {
	ConsultantUID string `json:"consultant_uid"`
	UserUID       string `json:"user_uid"`
	Accept        *bool  `json:"accept" binding:"required"`
}

// RespondAsUser handles a user accepting or rejecting a consultant-initiated invite.
func (h *ConsultantController) RespondAsUser(c *gin.Context) {
	userUID := c.GetString("uid")

	var req respondInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ConsultantUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consultant_uid is required"})
		return
	}

	err := h.consultants.RespondToInvite(c.Request.Context(), models.InitiatorUser, req.ConsultantUID, userUID, *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": responseMessage(*req.Accept)})
}

// RespondAsConsultant handles a consultant accepting or rejecting a user-initiated invite.
func (h *ConsultantController) RespondAsConsultant(c *gin.Context) {
	consultantUID := c.GetString("uid")

	var req respondInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_uid is required"})
		return
	}

	err := h.consultants.RespondToInvite(c.Request.Context(), models.InitiatorConsultant, consultantUID, req.UserUID, *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": responseMessage(*req.Accept)})
}

func responseMessage(accepted bool) string {
	if accepted {
		return "Invitation accepted."
	}
	return "Invitation rejected."
}

func (h *ConsultantController) DissolveAsUser(c *gin.Context) {
	userUID := c.GetString("uid")

	var req struct {
		ConsultantUID string `json:"consultant_uid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.consultants.Dissolve(c.Request.Context(), userUID, req.ConsultantUID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consultation ended."})
}

func (h *ConsultantController) DissolveAsConsultant(c *gin.Context) {
	consultantUID := c.GetString("uid")

	var req struct {
		UserUID string `json:"user_uid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.consultants.Dissolve(c.Request.Context(), req.UserUID, consultantUID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consultation ended."})
}

func (h *ConsultantController) ListMyRelationships(c *gin.Context) {
	role := c.GetString("role")
	uid := c.GetString("uid")

	pairs, err := h.consultants.ListRelationships(c.Request.Context(), role, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"relationships": pairs})
}

func (h *ConsultantController) ListMyInvites(c *gin.Context) {
	role := c.GetString("role")
	uid := c.GetString("uid")

	invites, err := h.consultants.ListInvites(c.Request.Context(), role, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

func (h *ConsultantController) UpdateNickname(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		Nickname string `json:"nickname" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.consultants.UpdateNickname(c.Request.Context(), uid, req.Nickname); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Nickname updated."})
}

func (h *ConsultantController) UpdateProfileDescription(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		ProfileDescription string `json:"profile_description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.consultants.UpdateProfileDescription(c.Request.Context(), uid, req.ProfileDescription); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile description updated."})
}

func (h *ConsultantController) UpdateProfilePicture(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		ProfilePicture string `json:"profile_picture" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.consultants.UpdateProfilePicture(c.Request.Context(), uid, req.ProfilePicture); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile picture updated."})
}

func (h *ConsultantController) UpdateMaxClients(c *gin.Context) {
	uid := c.GetString("uid")

	// Pointer so the zero value binds; closing the books on new clients is valid.
	var req struct {
		MaxClients *int `json:"max_clients" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.consultants.UpdateMaxClients(c.Request.Context(), uid, *req.MaxClients); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Max clients updated."})
}

func (h *ConsultantController) UpdateExperienceYears(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		ExperienceYears *int `json:"experience_years" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.consultants.UpdateExperienceYears(c.Request.Context(), uid, *req.ExperienceYears); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Experience updated."})
}
