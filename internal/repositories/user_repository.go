package repositories

import (
	"errors"
	"strings"
	"time"

	"mural_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrAdminNotFound = errors.New("administrator not found")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	// FindByLogin ищет по email или имени пользователя
	FindByLogin(db *gorm.DB, identifier string) (*models.User, error)
	// ExistsAny true, если занято хотя бы одно из значений. Пустой bp не проверяется.
	ExistsAny(db *gorm.DB, username, email, bp string) (bool, error)

	SetVerified(db *gorm.DB, userID string) error
	SetVerificationCode(db *gorm.DB, userID, code string, expiresAt time.Time) error
	ClearExpiredCodes(db *gorm.DB, now time.Time) (int64, error)
	TouchLastAccess(db *gorm.DB, userID string, at time.Time) error
	SetBanned(db *gorm.DB, userID string, banned bool, reason *string) error

	// Admin operations
	FindAdmin(db *gorm.DB, userID string) (*models.Administrator, error)
	CreateAdmin(db *gorm.DB, admin *models.Administrator) error
	IsAdmin(db *gorm.DB, userID string) (bool, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByLogin(db *gorm.DB, identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	var user models.User
	err := db.Where("email = ? OR nome_usuario = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ExistsAny(db *gorm.DB, username, email, bp string) (bool, error) {
	q := db.Model(&models.User{}).Where("nome_usuario = ? OR email = ?", username, email)
	if bp != "" {
		q = q.Or("bp = ?", bp)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepositoryImpl) SetVerified(db *gorm.DB, userID string) error {
	return r.updates(db, userID, map[string]interface{}{
		"email_verificado":   true,
		"codigo_verificacao": nil,
		"codigo_expiracao":   nil,
	})
}

func (r *UserRepositoryImpl) SetVerificationCode(db *gorm.DB, userID, code string, expiresAt time.Time) error {
	return r.updates(db, userID, map[string]interface{}{
		"codigo_verificacao": code,
		"codigo_expiracao":   expiresAt,
	})
}

// ClearExpiredCodes обнуляет просроченные коды непроверенных пользователей
func (r *UserRepositoryImpl) ClearExpiredCodes(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.User{}).
		Where("codigo_expiracao IS NOT NULL AND codigo_expiracao < ?", now).
		Updates(map[string]interface{}{"codigo_verificacao": nil, "codigo_expiracao": nil})
	return result.RowsAffected, result.Error
}

func (r *UserRepositoryImpl) TouchLastAccess(db *gorm.DB, userID string, at time.Time) error {
	return r.updates(db, userID, map[string]interface{}{"ultimo_acesso": at})
}

func (r *UserRepositoryImpl) SetBanned(db *gorm.DB, userID string, banned bool, reason *string) error {
	return r.updates(db, userID, map[string]interface{}{"banido": banned, "motivo_ban": reason})
}

func (r *UserRepositoryImpl) updates(db *gorm.DB, userID string, fields map[string]interface{}) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Admin operations

func (r *UserRepositoryImpl) FindAdmin(db *gorm.DB, userID string) (*models.Administrator, error) {
	var admin models.Administrator
	if err := db.First(&admin, "usuario_id = ?", userID).Error; err != nil {
		return nil, notFound(err, ErrAdminNotFound)
	}
	return &admin, nil
}

func (r *UserRepositoryImpl) CreateAdmin(db *gorm.DB, admin *models.Administrator) error {
	return db.Create(admin).Error
}

func (r *UserRepositoryImpl) IsAdmin(db *gorm.DB, userID string) (bool, error) {
	var count int64
	if err := db.Model(&models.Administrator{}).Where("usuario_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
