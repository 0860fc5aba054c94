package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"mural_backend/internal/auth"
	"mural_backend/internal/middleware"
	"mural_backend/internal/services"
	"mural_backend/internal/services/dto"
	"mural_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FileField - имя поля multipart с файлом поста
const FileField = "arquivo"

type PostHandler struct {
	*BaseHandler
	postService  services.PostService
	adminService services.AdminService
}

func NewPostHandler(base *BaseHandler, postService services.PostService, adminService services.AdminService) *PostHandler {
	return &PostHandler{
		BaseHandler:  base,
		postService:  postService,
		adminService: adminService,
	}
}

func (h *PostHandler) RegisterRoutes(rg *gin.RouterGroup, mw *Middlewares) {
	posts := rg.Group("/postagens")
	{
		posts.GET("", h.List)
		posts.GET("/:id", h.Get)
		posts.GET("/usuario/:usuario_id", h.ListByUser)

		posts.POST("", mw.Auth, mw.StudentOnly, mw.PostLimit, mw.BodyLimit, h.Create)
		posts.PUT("/:id", mw.Auth, h.Update)
		posts.DELETE("/:id", mw.Auth, h.Delete)
		posts.POST("/:id/denunciar", mw.Auth, h.Report)
	}
}

// Create godoc
// @Summary Criar postagem
// @Description Cria uma postagem de texto, imagem, vídeo, áudio, PDF ou GIF (multipart)
// @Tags posts
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param descricao formData string true "Descrição (10 a 5000 caracteres)"
// @Param tipo_midia formData string true "texto, imagem, video, audio, pdf ou gif"
// @Param arquivo formData file false "Arquivo de mídia"
// @Param transcrever formData bool false "Transcrever áudio"
// @Param idioma formData string false "Idioma da transcrição"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 403 {object} apperrors.AppError
// @Failure 413 {object} apperrors.AppError
// @Failure 415 {object} apperrors.AppError
// @Failure 429 {object} apperrors.AppError
// @Router /postagens [post]
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	file, err := h.formFile(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), h.GetDB(c), userID, &req, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// formFile возвращает nil без ошибки, если файл не передан
func (h *PostHandler) formFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile(FileField)
	switch {
	case err == nil:
		return file, nil
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	case middleware.IsBodyTooLarge(err):
		return nil, apperrors.ErrFileTooLarge(h.maxUpload)
	default:
		return nil, apperrors.NewBadRequestError("Arquivo inválido: " + err.Error())
	}
}

// List godoc
// @Summary Listar postagens
// @Tags posts
// @Produce json
// @Param pagina query int false "Página"
// @Param por_pagina query int false "Itens por página (até 50)"
// @Param tipo query string false "Filtro por tipo de mídia"
// @Param ordem query string false "recentes, visualizacoes ou comentarios"
// @Success 200 {object} dto.PaginatedResponse[dto.PostResponse]
// @Failure 400 {object} apperrors.AppError
// @Router /postagens [get]
func (h *PostHandler) List(c *gin.Context) {
	var query dto.PostListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.postService.List(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Obter postagem
// @Description Retorna a postagem e incrementa visualizações
// @Tags posts
// @Produce json
// @Param id path string true "ID da postagem"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} apperrors.AppError
// @Router /postagens/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListByUser godoc
// @Summary Postagens de um usuário
// @Tags posts
// @Produce json
// @Param usuario_id path string true "ID do usuário"
// @Param pagina query int false "Página"
// @Param por_pagina query int false "Itens por página"
// @Success 200 {object} dto.PaginatedResponse[dto.PostResponse]
// @Router /postagens/usuario/{usuario_id} [get]
func (h *PostHandler) ListByUser(c *gin.Context) {
	var query dto.PageQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.postService.ListByUser(h.GetDB(c), c.Param("usuario_id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Editar descrição
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID da postagem"
// @Param request body dto.UpdatePostRequest true "Nova descrição"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /postagens/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.postService.UpdateDescription(h.GetDB(c), userID, c.Param("id"), req.Description)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Remover postagem
// @Description O autor ou um moderador pode remover
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID da postagem"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /postagens/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	if err := h.postService.Delete(db, userID, c.Param("id"), canModerate(db, h.adminService, userID)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Postagem deletada com sucesso"})
}

// Report godoc
// @Summary Denunciar postagem
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID da postagem"
// @Param request body dto.ReportRequest true "Motivo"
// @Success 201 {object} dto.MessageResponse
// @Failure 404 {object} apperrors.AppError
// @Failure 409 {object} apperrors.AppError
// @Router /postagens/{id}/denunciar [post]
func (h *PostHandler) Report(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.postService.Report(h.GetDB(c), userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Denúncia registrada com sucesso"})
}

// canModerate - есть ли у пользователя права модератора (ошибки трактуются как "нет")
func canModerate(db *gorm.DB, admins services.AdminService, userID string) bool {
	level, err := admins.AdminLevel(db, userID)
	return err == nil && auth.CanModerate(level)
}
