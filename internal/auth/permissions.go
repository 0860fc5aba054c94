package auth

import (
	"strings"

	"mural_backend/internal/models"
)

// Уровни администраторов по возрастанию прав
var adminLevelRank = map[models.AdminLevel]int{
	models.AdminLevelModerator:  1,
	models.AdminLevelAdmin:      2,
	models.AdminLevelSuperAdmin: 3,
}

// ValidAdminLevel проверяет валидность уровня
func ValidAdminLevel(level models.AdminLevel) bool {
	_, ok := adminLevelRank[level]
	return ok
}

// LevelAtLeast reports whether have grants everything need grants.
// Unknown levels never satisfy anything.
func LevelAtLeast(have, need models.AdminLevel) bool {
	h, ok := adminLevelRank[have]
	if !ok {
		return false
	}
	n, ok := adminLevelRank[need]
	if !ok {
		return false
	}
	return h >= n
}

// CanModerate проверяет может ли администратор разбирать жалобы
func CanModerate(level models.AdminLevel) bool {
	return LevelAtLeast(level, models.AdminLevelModerator)
}

// CanBan проверяет может ли администратор банить пользователей
func CanBan(level models.AdminLevel) bool {
	return LevelAtLeast(level, models.AdminLevelAdmin)
}

// IsIFSPEmail проверяет институциональный домен без учета регистра
func IsIFSPEmail(email, domain string) bool {
	if domain == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), strings.ToLower(domain))
}

// CanPost: only students publish posts.
func CanPost(userType models.UserType) bool {
	return userType == models.UserTypeStudent
}
