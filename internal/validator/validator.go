package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"mural_backend/internal/config"
)

// ValidationError - кастомный тип ошибки с картой "поле" -> "сообщение".
type ValidationError struct {
	Errors map[string]string
}

// Error реализует стандартный интерфейс error.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	errMsgs := make([]string, 0, len(fields))
	for _, field := range fields {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, e.Errors[field]))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator - обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
	bp       *regexp.Regexp
}

type Option func(*Validator)

// WithBPPattern заменяет регулярное выражение для BP (prontuário).
func WithBPPattern(pattern string) Option {
	return func(v *Validator) {
		if pattern == "" {
			return
		}
		v.bp = regexp.MustCompile(pattern)
	}
}

// New создает новый экземпляр Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(),
		bp:       regexp.MustCompile(config.DefaultBPRegex),
	}
	for _, opt := range opts {
		opt(v)
	}

	// JSON-теги в сообщениях об ошибках вместо имен полей Go
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "" {
			tag = fld.Tag.Get("form")
		}
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v.validate, v.bp)

	return v
}

// Validate выполняет валидацию структуры. При ошибках возвращает *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		customErrors[fe.Field()] = v.getErrorMessage(fe)
	}

	return &ValidationError{Errors: customErrors}
}

// MatchBP проверяет BP, уже приведенный к верхнему регистру.
func (v *Validator) MatchBP(bp string) bool {
	return v.bp.MatchString(strings.ToUpper(strings.TrimSpace(bp)))
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "Email inválido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Deve ter no mínimo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("Deve ser no mínimo %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Deve ter no máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("Deve ser no máximo %s", fe.Param())
	case "len":
		return fmt.Sprintf("Deve ter exatamente %s caracteres", fe.Param())
	case "oneof":
		return fmt.Sprintf("Deve ser um de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "username":
		return "Nome de usuário deve ter 3-50 caracteres, apenas letras, números, _ e -"
	case "strongpassword":
		return "Senha deve ter no mínimo 8 caracteres, com maiúscula, minúscula e número"
	case "bp":
		return "Formato de BP inválido"
	case "code4":
		return "Código deve ter 4 dígitos"
	case "mediacategory":
		return "Tipo de mídia inválido"
	case "contenttype":
		return "Tipo de conteúdo inválido"
	case "reportaction":
		return "Ação inválida"
	default:
		return fmt.Sprintf("Valor inválido (regra '%s')", fe.Tag())
	}
}
