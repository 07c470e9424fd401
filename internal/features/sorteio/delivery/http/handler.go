package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sorteios-backend/internal/common/middleware"
	"sorteios-backend/internal/features/sorteio/models"
	"sorteios-backend/internal/features/sorteio/models/dto"
	sorteioservice "sorteios-backend/internal/features/sorteio/service"
)

type SorteioHandler struct {
	service sorteioservice.SorteioService
}

func NewSorteioHandler(service sorteioservice.SorteioService) *SorteioHandler {
	return &SorteioHandler{service: service}
}

func (h *SorteioHandler) RegisterRoutes(router *gin.RouterGroup) {
	sorteios := router.Group("/sorteios")
	{
		sorteios.GET("", h.list)
		sorteios.POST("", h.create)
		sorteios.GET("/:id", h.getByID)
		sorteios.PATCH("/:id", h.update)
		sorteios.DELETE("/:id", h.delete)
		sorteios.POST("/:id/postar", h.postar)
		sorteios.POST("/:id/verificar", h.verificar)
	}
}

// scope extracts the bot_id/guild_id pair every route is keyed by.
func scope(c *gin.Context) (botID, guildID string, ok bool) {
	botID = c.Query("bot_id")
	guildID = c.Query("guild_id")
	if botID == "" || guildID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bot_id and guild_id are required"})
		return "", "", false
	}
	return botID, guildID, true
}

// @Summary List sorteios of a guild
// @Produce json
// @Param bot_id query string true "Bot identifier"
// @Param guild_id query string true "Guild identifier"
// @Success 200 {object} dto.SorteiosResponse
// @Router /sorteios [get]
func (h *SorteioHandler) list(c *gin.Context) {
	botID, guildID, ok := scope(c)
	if !ok {
		return
	}

	sorteios, err := h.service.List(c.Request.Context(), botID, guildID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SorteiosResponse{Sorteios: sorteios})
}

// @Summary Create a sorteio
// @Accept json
// @Produce json
// @Param input body dto.SorteioCreateRequest true "Sorteio fields"
// @Success 200 {object} dto.SorteioResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sorteios [post]
func (h *SorteioHandler) create(c *gin.Context) {
	var input dto.SorteioCreateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sorteio, err := h.service.Create(c.Request.Context(), input.ToModel())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SorteioResponse{Sorteio: sorteio})
}

// @Summary Get a sorteio
// @Produce json
// @Param id path string true "Sorteio ID"
// @Success 200 {object} dto.SorteioResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sorteios/{id} [get]
func (h *SorteioHandler) getByID(c *gin.Context) {
	botID, guildID, ok := scope(c)
	if !ok {
		return
	}

	sorteio, err := h.service.GetByID(c.Request.Context(), botID, guildID, c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SorteioResponse{Sorteio: sorteio})
}

// @Summary Update a sorteio
// @Accept json
// @Produce json
// @Param id path string true "Sorteio ID"
// @Param input body dto.SorteioUpdateRequest true "Fields to change"
// @Success 200 {object} dto.SorteioResponse
// @Router /sorteios/{id} [patch]
func (h *SorteioHandler) update(c *gin.Context) {
	botID, guildID, ok := scope(c)
	if !ok {
		return
	}

	var input dto.SorteioUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sorteio, err := h.service.Update(c.Request.Context(), botID, guildID, c.Param("id"), input.Apply)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SorteioResponse{Sorteio: sorteio})
}

// @Summary Delete a sorteio
// @Produce json
// @Param id path string true "Sorteio ID"
// @Success 200 {object} map[string]interface{}
// @Router /sorteios/{id} [delete]
func (h *SorteioHandler) delete(c *gin.Context) {
	botID, guildID, ok := scope(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), botID, guildID, c.Param("id")); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// @Summary Publish or resync the announcement message
// @Accept json
// @Produce json
// @Param id path string true "Sorteio ID"
// @Param input body dto.PostarRequest true "Target channel"
// @Success 200 {object} dto.SorteioResponse
// @Failure 409 {object} dto.ErrorResponse "Publish already in flight"
// @Router /sorteios/{id}/postar [post]
func (h *SorteioHandler) postar(c *gin.Context) {
	var input dto.PostarRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sorteio, err := h.service.Publicar(c.Request.Context(), input.BotID, input.GuildID, c.Param("id"), input.ChannelID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SorteioResponse{Sorteio: sorteio})
}

// @Summary Evaluate a candidate against the stored requirements
// @Accept json
// @Produce json
// @Param id path string true "Sorteio ID"
// @Param input body models.Candidato true "Candidate attributes"
// @Success 200 {object} models.Decision
// @Router /sorteios/{id}/verificar [post]
func (h *SorteioHandler) verificar(c *gin.Context) {
	botID, guildID, ok := scope(c)
	if !ok {
		return
	}

	var candidato models.Candidato
	if err := c.ShouldBindJSON(&candidato); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, err := h.service.Verificar(c.Request.Context(), botID, guildID, c.Param("id"), candidato)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, decision)
}
