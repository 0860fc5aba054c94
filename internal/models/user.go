package models

import "time"

type User struct {
	BaseModel
	UserType         UserType   `gorm:"column:tipo_usuario;type:varchar(20);not null;index" json:"tipo_usuario"`
	Username         string     `gorm:"column:nome_usuario;type:varchar(50);uniqueIndex;not null" json:"nome_usuario"`
	Email            string     `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash     string     `gorm:"column:senha_hash;not null" json:"-"`
	RealName         *string    `gorm:"column:nome_real;type:varchar(255)" json:"nome_real,omitempty"`
	BP               *string    `gorm:"column:bp;type:varchar(20);uniqueIndex" json:"bp,omitempty"`
	EmailVerified    bool       `gorm:"column:email_verificado;not null" json:"email_verificado"`
	VerificationCode *string    `gorm:"column:codigo_verificacao;type:varchar(4)" json:"-"`
	CodeExpiresAt    *time.Time `gorm:"column:codigo_expiracao" json:"-"`
	Banned           bool       `gorm:"column:banido;not null;index" json:"banido"`
	BanReason        *string    `gorm:"column:motivo_ban" json:"motivo_ban,omitempty"`
	ProfilePhotoURL  *string    `gorm:"column:foto_perfil_url" json:"foto_perfil_url,omitempty"`
	Bio              *string    `gorm:"column:bio" json:"bio,omitempty"`
	LastAccess       *time.Time `gorm:"column:ultimo_acesso" json:"ultimo_acesso,omitempty"`
}

func (User) TableName() string { return "usuarios" }

func (u *User) IsStudent() bool { return u.UserType == UserTypeStudent }

// NeedsVerification is true for visitors that have not confirmed their email.
func (u *User) NeedsVerification() bool {
	return u.UserType == UserTypeVisitor && !u.EmailVerified
}

type Administrator struct {
	BaseModel
	UserID          string     `gorm:"column:usuario_id;type:varchar(36);uniqueIndex;not null" json:"usuario_id"`
	PermissionLevel AdminLevel `gorm:"column:nivel_permissao;type:varchar(20);not null" json:"nivel_permissao"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Administrator) TableName() string { return "administradores" }

type Session struct {
	BaseModel
	UserID    string    `gorm:"column:usuario_id;type:varchar(36);not null;index" json:"usuario_id"`
	Token     string    `gorm:"column:token;type:varchar(64);uniqueIndex;not null" json:"-"`
	IPAddress string    `gorm:"column:ip_address;type:varchar(64)" json:"ip_address"`
	UserAgent string    `gorm:"column:user_agent" json:"user_agent"`
	ExpiresAt time.Time `gorm:"column:expira_em;not null;index" json:"expira_em"`
}

func (Session) TableName() string { return "sessoes" }
