package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lamnguyen/folio/internal/store"
	"github.com/lamnguyen/folio/pkg/logger"
)

// PortfolioHandler serves the public read endpoints the site sections render
// from. Responses are cached briefly in Redis when one is configured.
type PortfolioHandler struct {
	store  *store.Store
	cache  *Cache
	logger logger.Logger
}

func NewPortfolioHandler(s *store.Store, cache *Cache, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{store: s, cache: cache, logger: log}
}

func (h *PortfolioHandler) serveCached(c *gin.Context, key string, build func() any) {
	ctx := c.Request.Context()

	if data, ok := h.cache.Get(ctx, key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	dto := build()
	data, err := json.Marshal(dto)
	if err != nil {
		h.logger.Error("Cannot encode portfolio response", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.cache.Set(ctx, key, data)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *PortfolioHandler) GetProfile(c *gin.Context) {
	h.serveCached(c, CacheKeyProfile, func() any {
		return ToProfileDTO(h.store.Profile())
	})
}

func (h *PortfolioHandler) GetSkills(c *gin.Context) {
	h.serveCached(c, CacheKeySkills, func() any {
		return ToSkillDTOs(h.store.Skills())
	})
}

func (h *PortfolioHandler) GetExperiences(c *gin.Context) {
	h.serveCached(c, CacheKeyExperiences, func() any {
		return ToExperienceDTOs(h.store.Experiences())
	})
}

func (h *PortfolioHandler) GetProjects(c *gin.Context) {
	h.serveCached(c, CacheKeyProjects, func() any {
		return ToProjectDTOs(h.store.Projects())
	})
}

// Status reports the sync flags so the front end can show a loader until
// the remote attempt settles.
func (h *PortfolioHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"is_loading": h.store.IsLoading(),
		"is_synced":  h.store.IsSynced(),
	})
}
