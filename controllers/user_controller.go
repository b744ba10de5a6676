package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutritrack-backend/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (h *UserController) GetMe(c *gin.Context) {
	profile, err := h.users.GetUser(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserController) GetUser(c *gin.Context) {
	profile, err := h.users.GetUser(c.Request.Context(), c.Param("userUid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserController) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserController) UpdateNickname(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		Nickname string `json:"nickname" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateNickname(c.Request.Context(), uid, req.Nickname); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Nickname updated."})
}

func (h *UserController) UpdateProfileDescription(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		ProfileDescription string `json:"profile_description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateProfileDescription(c.Request.Context(), uid, req.ProfileDescription); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile description updated."})
}

func (h *UserController) UpdateProfilePicture(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		ProfilePicture string `json:"profile_picture" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.users.UpdateProfilePicture(c.Request.Context(), uid, req.ProfilePicture)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile picture updated.", "profile_picture": url})
}

func (h *UserController) UpdateProfile(c *gin.Context) {
	uid := c.GetString("uid")

	var req services.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateProfile(c.Request.Context(), uid, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated."})
}

func (h *UserController) UpdateCurrentWeight(c *gin.Context) {
	uid := c.GetString("uid")

	var req struct {
		Weight float64 `json:"weight" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateCurrentWeight(c.Request.Context(), uid, req.Weight); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Weight updated and goals recalculated."})
}
