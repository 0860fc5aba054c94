package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

const (
	// System
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business rules
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"

	// Auth
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeUserBanned         ErrorCode = "USER_BANNED"
	CodeNotVerified        ErrorCode = "EMAIL_NOT_VERIFIED"
	CodeInvalidCode        ErrorCode = "INVALID_CODE"
	CodeCodeExpired        ErrorCode = "CODE_EXPIRED"

	// Media
	CodeFileTooLarge     ErrorCode = "FILE_TOO_LARGE"
	CodeInvalidFileType  ErrorCode = "INVALID_FILE_TYPE"
	CodeInvalidFileName  ErrorCode = "INVALID_FILE_NAME"
	CodeFileRequired     ErrorCode = "FILE_REQUIRED"
	CodeStorageFailure   ErrorCode = "STORAGE_FAILURE"
	CodeInvalidMediaType ErrorCode = "INVALID_MEDIA_TYPE"
)
