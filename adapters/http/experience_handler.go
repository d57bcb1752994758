package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lamnguyen/folio/internal/domain/experience"
	"github.com/lamnguyen/folio/internal/store"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/logger"
)

type ExperienceHandler struct {
	store  *store.Store
	cache  *Cache
	logger logger.Logger
}

func NewExperienceHandler(s *store.Store, cache *Cache, log logger.Logger) *ExperienceHandler {
	return &ExperienceHandler{store: s, cache: cache, logger: log}
}

func (h *ExperienceHandler) AddExperience(c *gin.Context) {
	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for experience", err))
		return
	}

	created := h.store.AddExperience(experience.Experience{
		Title:        req.Title,
		Organization: req.Organization,
		Location:     req.Location,
		Period:       req.Period,
		Description:  req.Description,
		Type:         experience.Type(req.Type),
	})
	h.cache.Invalidate(c.Request.Context(), CacheKeyExperiences)

	c.JSON(http.StatusCreated, gin.H{"id": created.ID.String()})
}

func (h *ExperienceHandler) UpdateExperience(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid experience id", err))
		return
	}

	var req UpdateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for experience update", err))
		return
	}

	h.store.UpdateExperience(id, req.ToDomainUpdate())
	h.cache.Invalidate(c.Request.Context(), CacheKeyExperiences)

	c.JSON(http.StatusOK, ToExperienceDTOs(h.store.Experiences()))
}

func (h *ExperienceHandler) DeleteExperience(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid experience id", err))
		return
	}

	h.store.DeleteExperience(id)
	h.cache.Invalidate(c.Request.Context(), CacheKeyExperiences)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
