package validator

import (
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"mural_backend/internal/auth"
	"mural_backend/internal/models"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$`)
	code4Pattern    = regexp.MustCompile(`^[0-9]{4}$`)
)

// Список типов медиа держим здесь, чтобы validator не зависел от internal/media
var mediaCategories = map[string]struct{}{
	"imagem": {}, "video": {}, "audio": {}, "pdf": {}, "gif": {}, "texto": {},
}

// registerCustomRules регистрирует кастомные функции валидации.
func registerCustomRules(v *validator.Validate, bp *regexp.Regexp) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правила приложение не должно стартовать
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("username", validateUsername)
	mustRegister("strongpassword", validateStrongPassword)
	mustRegister("bp", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return bp.MatchString(strings.ToUpper(strings.TrimSpace(value)))
	})
	mustRegister("code4", validateCode4)
	mustRegister("mediacategory", validateMediaCategory)
	mustRegister("contenttype", validateContentType)
	mustRegister("reportaction", validateReportAction)
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	n := utf8.RuneCountInString(value)
	return n >= 3 && n <= 50 && usernamePattern.MatchString(value)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return auth.IsStrongPassword(value)
}

func validateCode4(fl validator.FieldLevel) bool {
	return code4Pattern.MatchString(fl.Field().String())
}

func validateMediaCategory(fl validator.FieldLevel) bool {
	value := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	if value == "" {
		return true
	}
	_, ok := mediaCategories[value]
	return ok
}

func validateContentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ReportTarget(value).Valid()
}

func validateReportAction(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ReportAction(value).Valid()
}
