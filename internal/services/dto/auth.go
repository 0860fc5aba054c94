package dto

import (
	"time"

	"mural_backend/internal/models"
)

// RegisterStudentRequest - регистрация студента по BP и институциональному email
type RegisterStudentRequest struct {
	RealName string `json:"nome_real" validate:"required,min=3,max=255"`
	BP       string `json:"bp" validate:"required,bp"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,strongpassword"`
	Username string `json:"nome_usuario" validate:"required,username"`
}

// RegisterVisitorRequest - регистрация посетителя, подтверждается кодом из email
type RegisterVisitorRequest struct {
	Username string `json:"nome_usuario" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,strongpassword"`
}

type RegisterResponse struct {
	ID       string          `json:"id"`
	Username string          `json:"nome_usuario"`
	UserType models.UserType `json:"tipo_usuario"`
	// NeedsVerification true для посетителей: нужно ввести код из письма
	NeedsVerification bool `json:"requer_verificacao"`
}

type VerifyCodeRequest struct {
	UserID string `json:"usuario_id" validate:"required"`
	Code   string `json:"codigo" validate:"required,code4"`
}

type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Identifier string `json:"identificador" validate:"required"`
	Password   string `json:"senha" validate:"required"`
}

type LogoutRequest struct {
	SessionToken string `json:"token_sessao"`
}

type LoginResponse struct {
	Token        string  `json:"token"`
	SessionToken string  `json:"token_sessao"`
	ExpiresAt    string  `json:"expira_em"`
	User         UserDTO `json:"usuario"`
}

// UserDTO - публичная информация о пользователе
type UserDTO struct {
	ID              string          `json:"id"`
	Username        string          `json:"nome_usuario"`
	UserType        models.UserType `json:"tipo_usuario"`
	RealName        *string         `json:"nome_real,omitempty"`
	ProfilePhotoURL *string         `json:"foto_perfil_url,omitempty"`
}

// MeResponse - профиль текущего пользователя
type MeResponse struct {
	UserDTO
	Email           string             `json:"email"`
	BP              *string            `json:"bp,omitempty"`
	Bio             *string            `json:"bio,omitempty"`
	EmailVerified   bool               `json:"email_verificado"`
	CreatedAt       time.Time          `json:"criado_em"`
	LastAccess      *time.Time         `json:"ultimo_acesso,omitempty"`
	IsAdmin         bool               `json:"eh_admin"`
	PermissionLevel *models.AdminLevel `json:"nivel_permissao,omitempty"`
}

type TokenValidationResponse struct {
	Valid    bool            `json:"valido"`
	UserID   string          `json:"usuario_id,omitempty"`
	UserType models.UserType `json:"tipo_usuario,omitempty"`
}

func NewUserDTO(u *models.User) UserDTO {
	if u == nil {
		return UserDTO{}
	}
	return UserDTO{
		ID:              u.ID,
		Username:        u.Username,
		UserType:        u.UserType,
		RealName:        u.RealName,
		ProfilePhotoURL: u.ProfilePhotoURL,
	}
}
