package api

import (
	"log/slog"
	"net/http"

	"github.com/Domenick1991/cardoctor/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	service catalog.CatalogUseCase
	logger  *slog.Logger
}

func NewServiceHandler(service catalog.CatalogUseCase, logger *slog.Logger) *ServiceHandler {
	return &ServiceHandler{service: service, logger: logger}
}

func (h *ServiceHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *ServiceHandler) list(c *gin.Context) {
	services, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// get answers null for an unknown id.
func (h *ServiceHandler) get(c *gin.Context) {
	service, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, service)
}
