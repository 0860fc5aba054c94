package repositories

import (
	"errors"
	"time"

	"mural_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository хранит серверные сессии, выданные при логине
type SessionRepository interface {
	Create(db *gorm.DB, session *models.Session) error
	// FindActive возвращает только не истекшую сессию
	FindActive(db *gorm.DB, token string, now time.Time) (*models.Session, error)
	// DeleteByToken идемпотентен: отсутствие сессии не ошибка
	DeleteByToken(db *gorm.DB, token string) error
	DeleteByUserID(db *gorm.DB, userID string) (int64, error)
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

func (r *sessionRepository) FindActive(db *gorm.DB, token string, now time.Time) (*models.Session, error) {
	var session models.Session
	err := db.Where("token = ? AND expira_em > ?", token, now).First(&session).Error
	if err != nil {
		return nil, notFound(err, ErrSessionNotFound)
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&models.Session{}).Error
}

func (r *sessionRepository) DeleteByUserID(db *gorm.DB, userID string) (int64, error) {
	result := db.Where("usuario_id = ?", userID).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expira_em <= ?", now).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
