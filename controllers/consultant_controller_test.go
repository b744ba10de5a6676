package controllers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutritrack-backend/config"
	"nutritrack-backend/models"
	"nutritrack-backend/services"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateSchema(db))

	height := 175
	weight := 75.0
	require.NoError(t, db.Create(&models.User{
		UserUID:       "alice",
		Nickname:      "alice",
		Email:         "alice@example.com",
		Password:      "hashed",
		Gender:        "female",
		Height:        &height,
		CurrentWeight: &weight,
		CreatedAt:     time.Now().UTC(),
		IsActive:      true,
		ActivityLevel: models.ActivitySedentary,
		BirthYear:     1995,
	}).Error)
	require.NoError(t, db.Create(&models.Consultant{
		ConsultantUID: "coach",
		Nickname:      "coach",
		Email:         "coach@example.com",
		Password:      "hashed",
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
		MaxClients:    5,
	}).Error)
	return db
}

// asCaller stands in for the auth middleware.
func asCaller(uid, role string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("uid", uid)
		c.Set("role", role)
		handler(c)
	}
}

func postJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestInviteConsultantUsesCallerAsUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerTestDB(t)
	ctrl := NewConsultantController(services.NewConsultantService(db, nil, nil))

	r := gin.New()
	r.POST("/consultation/invite-consultant", asCaller("alice", services.RoleUser, ctrl.InviteConsultant))

	w := postJSON(t, r, http.MethodPost, "/consultation/invite-consultant", `{"consultant_uid":"coach"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The invite must be oriented coach->alice, with the user as initiator.
	var invite models.ConsultantRequest
	require.NoError(t, db.First(&invite, "consultant_uid = ? AND user_uid = ?", "coach", "alice").Error)
	assert.Equal(t, models.InvitePending, invite.Status)
	assert.Equal(t, models.InitiatorUser, invite.Initiator)
}

func TestInviteConsultantUnknownConsultant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerTestDB(t)
	ctrl := NewConsultantController(services.NewConsultantService(db, nil, nil))

	r := gin.New()
	r.POST("/consultation/invite-consultant", asCaller("alice", services.RoleUser, ctrl.InviteConsultant))

	w := postJSON(t, r, http.MethodPost, "/consultation/invite-consultant", `{"consultant_uid":"ghost"}`)
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

func TestUpdateMaxClientsAcceptsZero(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerTestDB(t)
	ctrl := NewConsultantController(services.NewConsultantService(db, nil, nil))

	r := gin.New()
	r.PATCH("/consultants/me/max-clients", asCaller("coach", services.RoleConsultant, ctrl.UpdateMaxClients))

	w := postJSON(t, r, http.MethodPatch, "/consultants/me/max-clients", `{"max_clients":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var consultant models.Consultant
	require.NoError(t, db.First(&consultant, "consultant_uid = ?", "coach").Error)
	assert.Zero(t, consultant.MaxClients)

	w = postJSON(t, r, http.MethodPatch, "/consultants/me/max-clients", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}
