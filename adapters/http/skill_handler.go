package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lamnguyen/folio/internal/domain/skill"
	"github.com/lamnguyen/folio/internal/store"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/logger"
)

type SkillHandler struct {
	store  *store.Store
	cache  *Cache
	logger logger.Logger
}

func NewSkillHandler(s *store.Store, cache *Cache, log logger.Logger) *SkillHandler {
	return &SkillHandler{store: s, cache: cache, logger: log}
}

func (h *SkillHandler) AddSkill(c *gin.Context) {
	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skill", err))
		return
	}

	h.store.AddSkill(skill.Skill{
		Name:     req.Name,
		Level:    req.Level,
		Category: skill.Category(req.Category),
		Icon:     req.Icon,
	})
	h.cache.Invalidate(c.Request.Context(), CacheKeySkills)

	c.JSON(http.StatusCreated, ToSkillDTOs(h.store.Skills()))
}

// UpdateSkill merges the supplied fields into the skill named in the path.
// An unknown name is a no-op, matching the store's contract.
func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	name := c.Param("name")

	var req UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skill update", err))
		return
	}

	h.store.UpdateSkill(name, req.ToDomainUpdate())
	h.cache.Invalidate(c.Request.Context(), CacheKeySkills)

	c.JSON(http.StatusOK, ToSkillDTOs(h.store.Skills()))
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	name := c.Param("name")

	h.store.DeleteSkill(name)
	h.cache.Invalidate(c.Request.Context(), CacheKeySkills)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
