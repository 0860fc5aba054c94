package handlers

import (
	"net/http"

	"mural_backend/internal/services"
	"mural_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

// RegisterRoutes: жалобы - модератор и выше, баны - admin и выше
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, mw *Middlewares) {
	admin := rg.Group("/admin")
	admin.Use(mw.Auth)
	{
		admin.GET("/denuncias", mw.Moderator, h.ListReports)
		admin.POST("/denuncias/:id/resolver", mw.Moderator, h.ResolveReport)
		admin.POST("/usuarios/:id/banir", mw.Admin, h.BanUser)
		admin.POST("/usuarios/:id/desbanir", mw.Admin, h.UnbanUser)
	}
}

// ListReports godoc
// @Summary Listar denúncias
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param resolvido query bool false "Filtrar por resolvidas"
// @Param tipo query string false "postagem ou comentario"
// @Param pagina query int false "Página"
// @Param por_pagina query int false "Itens por página"
// @Success 200 {object} dto.PaginatedResponse[dto.ReportResponse]
// @Failure 403 {object} apperrors.AppError
// @Router /admin/denuncias [get]
func (h *AdminHandler) ListReports(c *gin.Context) {
	var query dto.ReportListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.adminService.ListReports(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResolveReport godoc
// @Summary Resolver denúncia
// @Description ignorar, ocultar ou remover o conteúdo denunciado
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID da denúncia"
// @Param request body dto.ResolveReportRequest true "Ação"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /admin/denuncias/{id}/resolver [post]
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ResolveReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.adminService.ResolveReport(c.Request.Context(), h.GetDB(c), adminID, c.Param("id"), req.Action)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// BanUser godoc
// @Summary Banir usuário
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID do usuário"
// @Param request body dto.BanRequest true "Motivo"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /admin/usuarios/{id}/banir [post]
func (h *AdminHandler) BanUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.adminService.BanUser(c.Request.Context(), h.GetDB(c), adminID, c.Param("id"), req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Usuário banido com sucesso"})
}

// UnbanUser godoc
// @Summary Desbanir usuário
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Router /admin/usuarios/{id}/desbanir [post]
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.adminService.UnbanUser(c.Request.Context(), h.GetDB(c), adminID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Usuário desbanido com sucesso"})
}
