package helpers

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"mural_backend/database"
	"mural_backend/internal/auth"
	"mural_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultPassword = "Senha123"

var bpSeq atomic.Int64

// NewTestDB открывает отдельную in-memory sqlite БД на каждый тест и мигрирует все модели
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("%sfile:%s?mode=memory&cache=shared", database.SQLitePrefix, uuid.NewString())
	db, err := database.Open(dsn)
	require.NoError(t, err, "не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func hash(t *testing.T, password string) string {
	t.Helper()
	// MinCost, чтобы тесты не тратили время на bcrypt
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func unique(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CreateStudent создает верифицированного студента с паролем DefaultPassword
func CreateStudent(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	name := unique("aluno")
	bp := fmt.Sprintf("SP%06dX", bpSeq.Add(1))
	realName := "Aluno Teste"
	u := &models.User{
		UserType:      models.UserTypeStudent,
		Username:      name,
		Email:         name + "@aluno.ifsp.edu.br",
		PasswordHash:  hash(t, DefaultPassword),
		RealName:      &realName,
		BP:            &bp,
		EmailVerified: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateVisitor создает посетителя. verified=false оставляет действующий код "1234".
func CreateVisitor(t *testing.T, db *gorm.DB, verified bool) *models.User {
	t.Helper()
	name := unique("visit")
	u := &models.User{
		UserType:      models.UserTypeVisitor,
		Username:      name,
		Email:         name + "@example.com",
		PasswordHash:  hash(t, DefaultPassword),
		EmailVerified: verified,
	}
	if !verified {
		code := "1234"
		exp := auth.CodeExpiry(time.Now(), auth.VerificationCodeTTL)
		u.VerificationCode = &code
		u.CodeExpiresAt = &exp
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// MakeAdmin выдает пользователю уровень администратора
func MakeAdmin(t *testing.T, db *gorm.DB, user *models.User, level models.AdminLevel) *models.Administrator {
	t.Helper()
	admin := &models.Administrator{UserID: user.ID, PermissionLevel: level}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

// CreatePost создает видимый текстовый пост
func CreatePost(t *testing.T, db *gorm.DB, author *models.User, description string) *models.Post {
	t.Helper()
	p := &models.Post{
		UserID:      author.ID,
		Description: description,
		MediaType:   "texto",
		Approved:    true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateComment создает видимый комментарий
func CreateComment(t *testing.T, db *gorm.DB, post *models.Post, author *models.User, text string) *models.Comment {
	t.Helper()
	c := &models.Comment{PostID: post.ID, UserID: author.ID, Text: text, Approved: true}
	require.NoError(t, db.Create(c).Error)
	return c
}
