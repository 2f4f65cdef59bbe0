package tpms

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/models"
)

const minPasswordLength = 8

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateUserInput(input *models.UserInput) error {
	if input == nil {
		return validationError("Missing required fields: name, email, password")
	}
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return validationError("Missing required fields: %s", strings.Join(missing, ", "))
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(input.Name)); n < 2 || n > 100 {
		return validationError("Invalid name format")
	}
	if addr, err := mail.ParseAddress(input.Email); err != nil || addr.Address != strings.TrimSpace(input.Email) {
		return validationError("Invalid email format")
	}
	if len(input.Password) < minPasswordLength {
		return validationError("Password must be at least 8 characters")
	}
	return nil
}

func (t *TPMS) register(ctx context.Context, input *models.UserInput) (*models.User, error) {
	if err := validateUserInput(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, persistenceError("Failed to register user", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		CreatedAt:    clock.Now().UTC(),
	}

	err = t.UoW.WithTx(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return persistenceError("Failed to register user", err)
		}
		if count > 0 {
			return &Error{Kind: KindConflict, Message: "User already exists"}
		}
		if err := tx.Create(&user).Error; err != nil {
			return persistenceError("Failed to register user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSUser).
		Info("User registered", zap.String("user_id", user.ID))
	return &user, nil
}

func (t *TPMS) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	invalid := &Error{Kind: KindUnauthorized, Message: "Invalid credentials"}
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, invalid
	}

	var user models.User
	err := t.Db.Conn.WithContext(ctx).First(&user, "email = ?", normalizeEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, persistenceError("Failed to authenticate", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSUser).
			Info("Authentication rejected", zap.String("user_id", user.ID))
		return nil, invalid
	}
	return &user, nil
}

func (t *TPMS) getUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := t.Db.Conn.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, lookupError(err, "User %s not found", userID)
	}
	return &user, nil
}

type IUserImpl struct {
	tpms *TPMS
}

func (iu *IUserImpl) Register(ctx context.Context, input *models.UserInput) (*models.User, error) {
	return iu.tpms.register(ctx, input)
}

func (iu *IUserImpl) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return iu.tpms.authenticate(ctx, email, password)
}

func (iu *IUserImpl) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return iu.tpms.getUser(ctx, userID)
}

func (t *TPMS) GetIUser() IUser {
	return &IUserImpl{tpms: t}
}
