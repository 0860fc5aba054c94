package handlers

import (
	"net/http"

	"mural_backend/internal/services"
	"mural_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
	adminService   services.AdminService
}

func NewCommentHandler(base *BaseHandler, commentService services.CommentService, adminService services.AdminService) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    base,
		commentService: commentService,
		adminService:   adminService,
	}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, mw *Middlewares) {
	comments := rg.Group("/comentarios")
	{
		comments.GET("/postagem/:postagem_id", h.ListByPost)
		comments.GET("/postagem/:postagem_id/contar", h.Count)
		comments.GET("/usuario/:usuario_id", h.ListByUser)
		comments.GET("/:id", h.Get)

		comments.POST("/postagem/:postagem_id", mw.Auth, mw.CommentLimit, h.Create)
		comments.PUT("/:id", mw.Auth, h.Update)
		comments.DELETE("/:id", mw.Auth, h.Delete)
		comments.POST("/:id/denunciar", mw.Auth, h.Report)
	}
}

// ListByPost godoc
// @Summary Comentários de uma postagem
// @Tags comments
// @Produce json
// @Param postagem_id path string true "ID da postagem"
// @Param pagina query int false "Página"
// @Param por_pagina query int false "Itens por página"
// @Param ordenacao query string false "recentes ou antigos"
// @Success 200 {object} dto.PaginatedResponse[dto.CommentResponse]
// @Failure 404 {object} apperrors.AppError
// @Router /comentarios/postagem/{postagem_id} [get]
func (h *CommentHandler) ListByPost(c *gin.Context) {
	var query dto.CommentListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.commentService.List(h.GetDB(c), c.Param("postagem_id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Comentar
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param postagem_id path string true "ID da postagem"
// @Param request body dto.CommentRequest true "Texto (até 1000 caracteres)"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Failure 429 {object} apperrors.AppError
// @Router /comentarios/postagem/{postagem_id} [post]
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), h.GetDB(c), c.Param("postagem_id"), userID, req.Text)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Count godoc
// @Summary Contar comentários
// @Tags comments
// @Produce json
// @Param postagem_id path string true "ID da postagem"
// @Success 200 {object} dto.CommentCountResponse
// @Router /comentarios/postagem/{postagem_id}/contar [get]
func (h *CommentHandler) Count(c *gin.Context) {
	resp, err := h.commentService.Count(h.GetDB(c), c.Param("postagem_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Obter comentário
// @Tags comments
// @Produce json
// @Param id path string true "ID do comentário"
// @Success 200 {object} dto.CommentResponse
// @Failure 404 {object} apperrors.AppError
// @Router /comentarios/{id} [get]
func (h *CommentHandler) Get(c *gin.Context) {
	comment, err := h.commentService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Update godoc
// @Summary Editar comentário
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID do comentário"
// @Param request body dto.CommentRequest true "Novo texto"
// @Success 200 {object} dto.CommentResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 403 {object} apperrors.AppError
// @Router /comentarios/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	comment, err := h.commentService.Update(h.GetDB(c), userID, c.Param("id"), req.Text)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Remover comentário
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID do comentário"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} apperrors.AppError
// @Router /comentarios/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	if err := h.commentService.Delete(db, userID, c.Param("id"), canModerate(db, h.adminService, userID)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Comentário deletado com sucesso"})
}

// Report godoc
// @Summary Denunciar comentário
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID do comentário"
// @Param request body dto.ReportRequest true "Motivo"
// @Success 201 {object} dto.MessageResponse
// @Failure 409 {object} apperrors.AppError
// @Router /comentarios/{id}/denunciar [post]
func (h *CommentHandler) Report(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.commentService.Report(h.GetDB(c), userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Denúncia registrada com sucesso"})
}

// ListByUser godoc
// @Summary Comentários de um usuário
// @Tags comments
// @Produce json
// @Param usuario_id path string true "ID do usuário"
// @Success 200 {object} dto.PaginatedResponse[dto.CommentResponse]
// @Router /comentarios/usuario/{usuario_id} [get]
func (h *CommentHandler) ListByUser(c *gin.Context) {
	var query dto.PageQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.commentService.ListByUser(h.GetDB(c), c.Param("usuario_id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
