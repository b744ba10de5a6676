package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutritrack-backend/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (h *AuthController) RegisterUser(c *gin.Context) {
	var req services.RegisterUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, err := h.auth.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully.", "user_uid": uid})
}

func (h *AuthController) RegisterConsultant(c *gin.Context) {
	var req services.RegisterConsultantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, err := h.auth.RegisterConsultant(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Consultant registered successfully.", "consultant_uid": uid})
}

func (h *AuthController) RegisterAdmin(c *gin.Context) {
	var req services.RegisterAdminInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, err := h.auth.RegisterAdmin(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin registered successfully.", "admin_uid": uid})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthController) login(c *gin.Context, role string) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), role, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthController) LoginUser(c *gin.Context)       { h.login(c, services.RoleUser) }
func (h *AuthController) LoginConsultant(c *gin.Context) { h.login(c, services.RoleConsultant) }
func (h *AuthController) LoginAdmin(c *gin.Context)      { h.login(c, services.RoleAdmin) }
