package middleware

import (
	"errors"
	"strings"

	"mural_backend/internal/auth"
	"mural_backend/internal/logger"
	"mural_backend/internal/models"
	"mural_backend/internal/repositories"
	"mural_backend/pkg/apperrors"
	"mural_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TokenCookie - cookie, которую выставляет логин
const TokenCookie = "token"

// UserLoader - часть UserRepository, нужная middleware
type UserLoader interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
}

// AdminLookup возвращает уровень администратора или ErrAdminOnly
type AdminLookup interface {
	AdminLevel(db *gorm.DB, userID string) (models.AdminLevel, error)
}

// AuthMiddleware - middleware проверки JWT (заголовок Bearer или cookie token)
func AuthMiddleware(secret string, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, secret, users)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "authentication failed", "path", c.Request.URL.Path, "error", err.Error())
			apperrors.HandleError(c, err)
			return
		}
		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth заполняет пользователя, если токен валиден, и никогда не прерывает запрос
func OptionalAuth(secret string, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := authenticate(c, secret, users); err == nil {
			setUser(c, user)
		}
		c.Next()
	}
}

// StudentOnly - только студенты (после AuthMiddleware)
func StudentOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserType(c) != models.UserTypeStudent {
			apperrors.HandleError(c, apperrors.ErrStudentOnly)
			return
		}
		c.Next()
	}
}

// AdminOnly требует запись администратора с уровнем не ниже need
func AdminOnly(admins AdminLookup, need models.AdminLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Usuário não autenticado"))
			return
		}

		level, err := admins.AdminLevel(dbFrom(c), userID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if !auth.LevelAtLeast(level, need) {
			logger.CtxWarn(c.Request.Context(), "admin level too low", "have", string(level), "need", string(need))
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		c.Set(contextkeys.AdminKey, level)
		c.Next()
	}
}

func authenticate(c *gin.Context, secret string, users UserLoader) (*models.User, error) {
	token := ExtractToken(c)
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("Token de acesso não fornecido")
	}

	claims, err := auth.ParseToken(token, secret)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := users.FindByID(dbFrom(c), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Banned {
		reason := ""
		if user.BanReason != nil {
			reason = *user.BanReason
		}
		return nil, apperrors.ErrUserBanned(reason)
	}
	return user, nil
}

// ExtractToken читает токен из Authorization: Bearer, затем из cookie token
func ExtractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(contextkeys.UserIDKey, user.ID)
	c.Set(contextkeys.UserTypeKey, user.UserType)
	c.Set(contextkeys.UserKey, user)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
}

func dbFrom(c *gin.Context) *gorm.DB {
	db, _ := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
	return db
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

func GetUserType(c *gin.Context) models.UserType {
	t, _ := c.Get(contextkeys.UserTypeKey)
	userType, _ := t.(models.UserType)
	return userType
}

// GetUser возвращает пользователя, загруженного AuthMiddleware
func GetUser(c *gin.Context) *models.User {
	u, _ := c.Get(contextkeys.UserKey)
	user, _ := u.(*models.User)
	return user
}

// IsAdmin true, если AdminOnly уже пропустил запрос
func IsAdmin(c *gin.Context) bool {
	_, ok := c.Get(contextkeys.AdminKey)
	return ok
}
