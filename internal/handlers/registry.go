package handlers

import (
	"mural_backend/internal/services"
	"mural_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	PostHandler    *PostHandler
	CommentHandler *CommentHandler
	AdminHandler   *AdminHandler
	HealthHandler  *HealthHandler
}

// Middlewares - собранные middleware, которые хэндлеры навешивают на свои маршруты
type Middlewares struct {
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	StudentOnly  gin.HandlerFunc
	Moderator    gin.HandlerFunc
	Admin        gin.HandlerFunc
	LoginLimit   gin.HandlerFunc
	PostLimit    gin.HandlerFunc
	CommentLimit gin.HandlerFunc
	BodyLimit    gin.HandlerFunc
}

type HandlersConfig struct {
	MaxUpload   int64
	Cookies     CookieConfig
	Environment string
}

func NewAppHandlers(cfg HandlersConfig, v *validator.Validator, svc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(v, cfg.MaxUpload)
	return &AppHandlers{
		AuthHandler:    NewAuthHandler(base, svc.AuthService, cfg.Cookies),
		PostHandler:    NewPostHandler(base, svc.PostService, svc.AdminService),
		CommentHandler: NewCommentHandler(base, svc.CommentService, svc.AdminService),
		AdminHandler:   NewAdminHandler(base, svc.AdminService),
		HealthHandler:  NewHealthHandler(cfg.Environment),
	}
}

// RegisterAPI навешивает все маршруты /api
func (h *AppHandlers) RegisterAPI(api *gin.RouterGroup, mw *Middlewares) {
	h.AuthHandler.RegisterRoutes(api, mw)
	h.PostHandler.RegisterRoutes(api, mw)
	h.CommentHandler.RegisterRoutes(api, mw)
	h.AdminHandler.RegisterRoutes(api, mw)
}
