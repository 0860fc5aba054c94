package models

type UserType string
type AdminLevel string
type ReportTarget string
type ReportAction string

const (
	UserTypeStudent UserType = "estudante"
	UserTypeVisitor UserType = "visitante"

	AdminLevelModerator  AdminLevel = "moderador"
	AdminLevelAdmin      AdminLevel = "admin"
	AdminLevelSuperAdmin AdminLevel = "super_admin"

	ReportTargetPost    ReportTarget = "postagem"
	ReportTargetComment ReportTarget = "comentario"

	ReportActionIgnore ReportAction = "ignorar"
	ReportActionHide   ReportAction = "ocultar"
	ReportActionRemove ReportAction = "remover"
)

func (t UserType) Valid() bool {
	return t == UserTypeStudent || t == UserTypeVisitor
}

func (t ReportTarget) Valid() bool {
	return t == ReportTargetPost || t == ReportTargetComment
}

func (a ReportAction) Valid() bool {
	switch a {
	case ReportActionIgnore, ReportActionHide, ReportActionRemove:
		return true
	}
	return false
}
