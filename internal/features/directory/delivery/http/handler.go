package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sorteios-backend/internal/common/middleware"
	directoryservice "sorteios-backend/internal/features/directory/service"
)

type DirectoryHandler struct {
	service directoryservice.DirectoryService
}

func NewDirectoryHandler(service directoryservice.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

func (h *DirectoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/channels", h.listChannels)
	router.GET("/cargos", h.listCargos)
}

// @Summary List guild channels for selectors
// @Produce json
// @Param guild_id query string true "Guild identifier"
// @Success 200 {object} map[string]interface{}
// @Router /channels [get]
func (h *DirectoryHandler) listChannels(c *gin.Context) {
	guildID := c.Query("guild_id")
	if guildID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guild_id is required"})
		return
	}

	channels, err := h.service.ListChannels(c.Request.Context(), guildID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

// @Summary List guild roles for selectors
// @Produce json
// @Param guild_id query string true "Guild identifier"
// @Success 200 {object} map[string]interface{}
// @Router /cargos [get]
func (h *DirectoryHandler) listCargos(c *gin.Context) {
	guildID := c.Query("guild_id")
	if guildID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guild_id is required"})
		return
	}

	cargos, err := h.service.ListCargos(c.Request.Context(), guildID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cargos": cargos})
}
