package apperrors

import (
	"fmt"
	"net/http"
)

/*
Фабрики и предопределенные ошибки домена мурала.
Сообщения на португальском: они уходят напрямую клиенту.
*/

// =========================================================================
// Фабрики
// =========================================================================

// ErrNotFound - ошибка репозитория, превращенная в 404
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Recurso não encontrado", http.StatusNotFound)
}

func ErrAlreadyExists(err error, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", message, http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrUserBanned includes the ban reason, or a default when none was recorded.
func ErrUserBanned(reason string) *AppError {
	if reason == "" {
		reason = "Não especificado"
	}
	return New(CodeUserBanned, "auth", "Usuário banido. Motivo: "+reason, http.StatusForbidden)
}

func ErrFileTooLarge(maxBytes int64) *AppError {
	msg := fmt.Sprintf("Arquivo muito grande. Tamanho máximo: %.0fMB", float64(maxBytes)/(1024*1024))
	return New(CodeFileTooLarge, "media", msg, http.StatusRequestEntityTooLarge)
}

func ErrInvalidFileType(message string) *AppError {
	return New(CodeInvalidFileType, "media", message, http.StatusUnsupportedMediaType)
}

func ErrInvalidFileName(message string) *AppError {
	return New(CodeInvalidFileName, "media", message, http.StatusBadRequest)
}

func ErrStorage(err error) *AppError {
	return Wrap(err, CodeStorageFailure, "media", "Erro ao salvar arquivo", http.StatusInternalServerError)
}

func ErrRateLimited(retryAfterSeconds int) *AppError {
	return New(CodeRateLimited, "rate_limit", "Muitas requisições. Tente novamente mais tarde", http.StatusTooManyRequests).
		WithDetails(map[string]int{"retry_after": retryAfterSeconds})
}

// =========================================================================
// Предопределенные переменные
// =========================================================================

// --- Auth ---

var ErrUserNotFound = New(CodeNotFound, "auth", "Usuário não encontrado", http.StatusNotFound)

var ErrLoginUserNotFound = New(CodeInvalidCredentials, "auth", "Usuário não encontrado", http.StatusUnauthorized)

var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Senha incorreta", http.StatusUnauthorized)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Token inválido ou expirado", http.StatusUnauthorized)

var ErrEmailNotVerified = New(CodeNotVerified, "auth", "Email não verificado. Verifique seu email", http.StatusForbidden)

var ErrAlreadyVerified = New(CodeInvalidOperation, "auth", "Email já verificado", http.StatusBadRequest)

var ErrCodeIncorrect = New(CodeInvalidCode, "auth", "Código incorreto", http.StatusBadRequest)

var ErrCodeExpired = New(CodeCodeExpired, "auth", "Código expirado. Solicite um novo código", http.StatusBadRequest)

var ErrStudentAlreadyExists = New(CodeAlreadyExists, "auth", "Usuário, email ou BP já cadastrado", http.StatusConflict)

var ErrVisitorAlreadyExists = New(CodeAlreadyExists, "auth", "Nome de usuário ou email já cadastrado", http.StatusConflict)

var ErrNotInstitutionalEmail = New(CodeValidationFailed, "auth", "Use seu email institucional do IFSP", http.StatusBadRequest)

var ErrStudentOnly = New(CodeForbidden, "auth", "Apenas estudantes podem realizar esta ação", http.StatusForbidden)

var ErrAdminOnly = New(CodeForbidden, "auth", "Acesso restrito a administradores", http.StatusForbidden)

var ErrInsufficientPermissions = New(CodeForbidden, "auth", "Permissão insuficiente", http.StatusForbidden)

// --- Media ---

var ErrFileRequired = New(CodeFileRequired, "media", "Arquivo é obrigatório para este tipo de mídia", http.StatusBadRequest)

var ErrInvalidMediaType = New(CodeInvalidMediaType, "media",
	"Tipo de mídia inválido. Tipos válidos: imagem, video, audio, pdf, gif, texto", http.StatusBadRequest)

// --- Posts ---

var ErrPostNotFound = New(CodeNotFound, "post", "Postagem não encontrada", http.StatusNotFound)

var ErrNotPostAuthor = New(CodeForbidden, "post", "Você só pode editar suas próprias postagens", http.StatusForbidden)

var ErrCannotDeletePost = New(CodeForbidden, "post", "Você não tem permissão para deletar esta postagem", http.StatusForbidden)

// --- Comments ---

var ErrCommentNotFound = New(CodeNotFound, "comment", "Comentário não encontrado", http.StatusNotFound)

var ErrNotCommentAuthor = New(CodeForbidden, "comment", "Você não tem permissão para editar este comentário", http.StatusForbidden)

var ErrCannotDeleteComment = New(CodeForbidden, "comment", "Você não tem permissão para deletar este comentário", http.StatusForbidden)

var ErrCommentDeleted = New(CodeInvalidOperation, "comment", "Comentário deletado não pode ser editado", http.StatusBadRequest)

var ErrCommentAlreadyDeleted = New(CodeInvalidOperation, "comment", "Comentário já foi deletado", http.StatusBadRequest)

var ErrBannedCannotComment = New(CodeUserBanned, "comment", "Usuário banido não pode comentar", http.StatusForbidden)

// --- Reports & moderation ---

var ErrAlreadyReported = New(CodeAlreadyExists, "report", "Você já denunciou este conteúdo", http.StatusConflict)

var ErrReportNotFound = New(CodeNotFound, "report", "Denúncia não encontrada", http.StatusNotFound)

var ErrReportResolved = New(CodeInvalidOperation, "report", "Denúncia já resolvida", http.StatusBadRequest)

var ErrCannotBanSelf = New(CodeForbidden, "moderation", "Você não pode banir a si mesmo", http.StatusForbidden)

var ErrCannotBanAdmin = New(CodeForbidden, "moderation", "Administradores não podem ser banidos", http.StatusForbidden)
