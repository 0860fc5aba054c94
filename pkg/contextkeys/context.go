package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, по которому хранится *gorm.DB (пул или транзакция)
const DBContextKey = contextKey("db")

// Keys set by the auth middleware on the gin context.
const (
	UserIDKey   = "userID"
	UserTypeKey = "userType"
	UserKey     = "user"
	AdminKey    = "admin"
)
