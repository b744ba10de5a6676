package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"

	"nutritrack-backend/models"
	"nutritrack-backend/utils"
)

const (
	RoleUser       = "user"
	RoleConsultant = "consultant"
	RoleAdmin      = "admin"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret []byte) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

type RegisterUserInput struct {
	Nickname           string               `json:"nickname" binding:"required"`
	Email              string               `json:"email" binding:"required,email"`
	Password           string               `json:"password" binding:"required,min=8"`
	Gender             string               `json:"gender"`
	Height             *int                 `json:"height"`
	CurrentWeight      *float64             `json:"current_weight"`
	ActivityLevel      models.ActivityLevel `json:"activity_level"`
	BirthYear          int                  `json:"birth_year"`
	ProfilePicture     string               `json:"profile_picture"`
	ProfileDescription string               `json:"profile_description"`
}

func (s *AuthService) RegisterUser(ctx context.Context, in RegisterUserInput) (string, error) {
	if !in.ActivityLevel.Valid() {
		return "", fmt.Errorf("%w: unknown activity level %q", models.ErrValidation, in.ActivityLevel)
	}
	if in.BirthYear < 1900 || in.BirthYear > time.Now().UTC().Year() {
		return "", fmt.Errorf("%w: birth year out of range", models.ErrValidation)
	}
	if err := s.checkEmailFree(ctx, &models.User{}, in.Email, "user already registered"); err != nil {
		return "", err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := models.User{
		UserUID:            newUID(in.Nickname),
		Nickname:           in.Nickname,
		Email:              in.Email,
		Password:           hashed,
		Gender:             in.Gender,
		Height:             in.Height,
		CurrentWeight:      in.CurrentWeight,
		CreatedAt:          now,
		LastLogin:          &now,
		IsActive:           true,
		ActivityLevel:      in.ActivityLevel,
		BirthYear:          in.BirthYear,
		ProfilePicture:     in.ProfilePicture,
		ProfileDescription: in.ProfileDescription,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", err
	}
	return user.UserUID, nil
}

type RegisterConsultantInput struct {
	Nickname           string `json:"nickname" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=8"`
	Gender             string `json:"gender"`
	ExperienceYears    int    `json:"experience_years"`
	MaxClients         int    `json:"max_clients"`
	ProfilePicture     string `json:"profile_picture"`
	ProfileDescription string `json:"profile_description"`
}

func (s *AuthService) RegisterConsultant(ctx context.Context, in RegisterConsultantInput) (string, error) {
	if in.MaxClients < 0 {
		return "", fmt.Errorf("%w: max clients must not be negative", models.ErrValidation)
	}
	if in.ExperienceYears < 0 {
		return "", fmt.Errorf("%w: experience years must not be negative", models.ErrValidation)
	}
	if err := s.checkEmailFree(ctx, &models.Consultant{}, in.Email, "consultant already registered"); err != nil {
		return "", err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	consultant := models.Consultant{
		ConsultantUID:      newUID(in.Nickname),
		Nickname:           in.Nickname,
		Email:              in.Email,
		Password:           hashed,
		Gender:             in.Gender,
		ExperienceYears:    in.ExperienceYears,
		MaxClients:         in.MaxClients,
		CreatedAt:          now,
		LastLogin:          &now,
		IsActive:           true,
		ProfilePicture:     in.ProfilePicture,
		ProfileDescription: in.ProfileDescription,
	}
	if err := s.db.WithContext(ctx).Create(&consultant).Error; err != nil {
		return "", err
	}
	return consultant.ConsultantUID, nil
}

type RegisterAdminInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number"`
}

func (s *AuthService) RegisterAdmin(ctx context.Context, in RegisterAdminInput) (string, error) {
	if err := s.checkEmailFree(ctx, &models.Admin{}, in.Email, "admin already registered"); err != nil {
		return "", err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	admin := models.Admin{
		AdminUID:         newUID(in.Name),
		RegistrationDate: time.Now().UTC(),
		Name:             in.Name,
		Email:            in.Email,
		Password:         hashed,
		PhoneNumber:      in.PhoneNumber,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return "", err
	}
	return admin.AdminUID, nil
}

// Login authenticates against the store for the given role and issues a JWT
// carrying the subject uid and role.
func (s *AuthService) Login(ctx context.Context, role, email, password string) (string, error) {
	var uid, hash string
	var lastLoginUpdate func() error

	db := s.db.WithContext(ctx)
	switch role {
	case RoleUser:
		var user models.User
		if err := db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
			return "", loginError(err)
		}
		uid, hash = user.UserUID, user.Password
		lastLoginUpdate = func() error {
			return db.Model(&models.User{}).Where("user_uid = ?", uid).
				Update("last_login", time.Now().UTC()).Error
		}
	case RoleConsultant:
		var consultant models.Consultant
		if err := db.Where("email = ? AND is_active = ?", email, true).First(&consultant).Error; err != nil {
			return "", loginError(err)
		}
		uid, hash = consultant.ConsultantUID, consultant.Password
		lastLoginUpdate = func() error {
			return db.Model(&models.Consultant{}).Where("consultant_uid = ?", uid).
				Update("last_login", time.Now().UTC()).Error
		}
	case RoleAdmin:
		var admin models.Admin
		if err := db.Where("email = ?", email).First(&admin).Error; err != nil {
			return "", loginError(err)
		}
		uid, hash = admin.AdminUID, admin.Password
		lastLoginUpdate = func() error { return nil }
	default:
		return "", fmt.Errorf("%w: unknown role %q", models.ErrValidation, role)
	}

	if !utils.CheckPasswordHash(password, hash) {
		return "", fmt.Errorf("%w: incorrect password", models.ErrUnauthorized)
	}
	if err := lastLoginUpdate(); err != nil {
		return "", err
	}

	return utils.GenerateJWT(s.jwtSecret, uid, role)
}

func (s *AuthService) checkEmailFree(ctx context.Context, model interface{}, email, conflictMsg string) error {
	err := s.db.WithContext(ctx).Where("email = ?", email).First(model).Error
	if err == nil {
		return fmt.Errorf("%w: %s", models.ErrConflict, conflictMsg)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func loginError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: account not found or disabled", models.ErrUnauthorized)
	}
	return err
}

func newUID(nickname string) string {
	base := strings.ToLower(strings.ReplaceAll(nickname, " ", ""))
	return fmt.Sprintf("%s%d", base, rand.Intn(100000))
}
