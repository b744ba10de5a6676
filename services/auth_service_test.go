package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutritrack-backend/models"
	"nutritrack-backend/utils"
)

var testSecret = []byte("test-secret")

func TestRegisterAndLoginUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	ctx := context.Background()

	height := 175
	weight := 75.0
	uid, err := svc.RegisterUser(ctx, RegisterUserInput{
		Nickname:      "Alice Smith",
		Email:         "alice@example.com",
		Password:      "correct horse",
		Gender:        "female",
		Height:        &height,
		CurrentWeight: &weight,
		ActivityLevel: models.ActivityModerate,
		BirthYear:     1995,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, uid)

	token, err := svc.Login(ctx, RoleUser, "alice@example.com", "correct horse")
	require.NoError(t, err)

	gotUID, gotRole, err := utils.NewJWTVerifier(testSecret).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uid, gotUID)
	assert.Equal(t, RoleUser, gotRole)
}

func TestRegisterUserValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, RegisterUserInput{
		Nickname:      "x",
		Email:         "x@example.com",
		Password:      "password1",
		ActivityLevel: "Couch",
		BirthYear:     1990,
	})
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.RegisterUser(ctx, RegisterUserInput{
		Nickname:      "x",
		Email:         "x@example.com",
		Password:      "password1",
		ActivityLevel: models.ActivitySedentary,
		BirthYear:     1850,
	})
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	ctx := context.Background()

	in := RegisterUserInput{
		Nickname:      "alice",
		Email:         "alice@example.com",
		Password:      "password1",
		ActivityLevel: models.ActivitySedentary,
		BirthYear:     1995,
	}
	_, err := svc.RegisterUser(ctx, in)
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, in)
	require.ErrorIs(t, err, models.ErrConflict)
}

func TestLoginFailures(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	ctx := context.Background()

	_, err := svc.RegisterConsultant(ctx, RegisterConsultantInput{
		Nickname:        "coach",
		Email:           "coach@example.com",
		Password:        "password1",
		ExperienceYears: 3,
		MaxClients:      10,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, RoleConsultant, "coach@example.com", "wrong")
	require.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = svc.Login(ctx, RoleConsultant, "nobody@example.com", "password1")
	require.ErrorIs(t, err, models.ErrUnauthorized)

	// Role and store are tied together; a consultant cannot log in as a user.
	_, err = svc.Login(ctx, RoleUser, "coach@example.com", "password1")
	require.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = svc.Login(ctx, "superuser", "coach@example.com", "password1")
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestLoginDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	ctx := context.Background()

	uid, err := svc.RegisterUser(ctx, RegisterUserInput{
		Nickname:      "alice",
		Email:         "alice@example.com",
		Password:      "password1",
		ActivityLevel: models.ActivitySedentary,
		BirthYear:     1995,
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("user_uid = ?", uid).
		Update("is_active", false).Error)

	_, err = svc.Login(ctx, RoleUser, "alice@example.com", "password1")
	require.ErrorIs(t, err, models.ErrUnauthorized)
}
