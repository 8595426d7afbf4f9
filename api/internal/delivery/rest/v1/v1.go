package v1

import (
	"paygate/api/internal/config"
	"paygate/api/internal/logger"
	"paygate/api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	services *service.Services
	config   *config.Config
	log      logger.Logger
	validate *validator.Validate
}

func (h *Handler) InitRoutes(g *gin.RouterGroup) {
	{
		h.initManagementRoutes(g.Group("/management", h.accessMiddleware()))
		h.initAdminRoutes(g.Group("/admin", h.accessMiddleware()))
	}
}

func NewHandler(services *service.Services, config *config.Config, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		log:      log,
		services: services,
		validate: newValidator(),
	}
}
