package handlers

import (
	"net/http"
	"time"

	"mural_backend/internal/middleware"
	"mural_backend/internal/services"
	"mural_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const SessionCookie = "token_sessao"

// CookieConfig - параметры cookie с JWT
type CookieConfig struct {
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookies     CookieConfig
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookies:     cookies,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, mw *Middlewares) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/registrar/estudante", h.RegisterStudent)
		authGroup.POST("/registrar/visitante", h.RegisterVisitor)
		authGroup.POST("/verificar-codigo", h.VerifyCode)
		authGroup.POST("/reenviar-codigo", h.ResendCode)
		authGroup.POST("/login", mw.LoginLimit, h.Login)
		authGroup.GET("/validar-token", h.ValidateToken)

		protected := authGroup.Group("")
		protected.Use(mw.Auth)
		{
			protected.POST("/logout", h.Logout)
			protected.GET("/me", h.Me)
		}
	}
}

// RegisterStudent godoc
// @Summary Cadastro de estudante
// @Description Cria uma conta de estudante com BP e email institucional
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Dados do estudante"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 409 {object} apperrors.AppError
// @Router /auth/registrar/estudante [post]
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.RegisterStudent(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// RegisterVisitor godoc
// @Summary Cadastro de visitante
// @Description Cria uma conta de visitante e envia o código de verificação por email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterVisitorRequest true "Dados do visitante"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 409 {object} apperrors.AppError
// @Router /auth/registrar/visitante [post]
func (h *AuthHandler) RegisterVisitor(c *gin.Context) {
	var req dto.RegisterVisitorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.RegisterVisitor(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// VerifyCode godoc
// @Summary Verificar código
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyCodeRequest true "Usuário e código de 4 dígitos"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /auth/verificar-codigo [post]
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req dto.VerifyCodeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.VerifyCode(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email verificado com sucesso"})
}

// ResendCode godoc
// @Summary Reenviar código
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendCodeRequest true "Email do visitante"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /auth/reenviar-codigo [post]
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req dto.ResendCodeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResendCode(c.Request.Context(), h.GetDB(c), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Novo código enviado para seu email"})
}

// Login godoc
// @Summary Login
// @Description Autentica por nome de usuário ou email. Define o cookie token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apperrors.AppError
// @Failure 403 {object} apperrors.AppError
// @Failure 429 {object} apperrors.AppError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setCookie(c, middleware.TokenCookie, resp.Token, int(h.cookies.TTL.Seconds()))
	h.setCookie(c, SessionCookie, resp.SessionToken, int(h.cookies.TTL.Seconds()))
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Logout
// @Description Encerra a sessão (token_sessao no corpo, header X-Session-Token ou cookie)
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest false "Token de sessão"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} apperrors.AppError
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindOptional_JSON(c, &req) {
		return
	}

	sessionToken := req.SessionToken
	if sessionToken == "" {
		sessionToken = c.GetHeader("X-Session-Token")
	}
	if sessionToken == "" {
		sessionToken, _ = c.Cookie(SessionCookie)
	}

	if err := h.authService.Logout(h.GetDB(c), sessionToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setCookie(c, middleware.TokenCookie, "", -1)
	h.setCookie(c, SessionCookie, "", -1)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logout realizado com sucesso"})
}

// Me godoc
// @Summary Usuário atual
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} apperrors.AppError
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.authService.Me(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ValidateToken godoc
// @Summary Validar token
// @Description Sempre responde 200; valido=false quando o token falta ou é inválido
// @Tags auth
// @Produce json
// @Success 200 {object} dto.TokenValidationResponse
// @Router /auth/validar-token [get]
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	token := middleware.ExtractToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"valido": false, "mensagem": "Token não fornecido"})
		return
	}

	resp := h.authService.ValidateToken(token)
	if !resp.Valid {
		c.JSON(http.StatusOK, gin.H{"valido": false, "mensagem": "Token inválido ou expirado"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.cookies.Secure, true)
}
