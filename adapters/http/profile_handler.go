package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lamnguyen/folio/internal/domain/profile"
	"github.com/lamnguyen/folio/internal/store"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/logger"
)

type ProfileHandler struct {
	store  *store.Store
	cache  *Cache
	logger logger.Logger
}

func NewProfileHandler(s *store.Store, cache *Cache, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{store: s, cache: cache, logger: log}
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	h.store.UpdateProfile(c.Request.Context(), req.ToDomainUpdate())
	h.cache.Invalidate(c.Request.Context(), CacheKeyProfile)

	c.JSON(http.StatusOK, ToProfileDTO(h.store.Profile()))
}

func (h *ProfileHandler) UpdateProfileImage(c *gin.Context) {
	var req UpdateProfileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile image update", err))
		return
	}

	h.store.UpdateProfileImage(c.Request.Context(), req.Image)
	h.cache.Invalidate(c.Request.Context(), CacheKeyProfile)

	c.JSON(http.StatusOK, ToProfileDTO(h.store.Profile()))
}

func (h *ProfileHandler) UpdateSocialLink(c *gin.Context) {
	platform := c.Param("platform")
	if platform == "" {
		c.Error(apperror.NewInvalidInput("platform is required", nil))
		return
	}

	var req UpdateSocialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for social link update", err))
		return
	}

	h.store.UpdateSocialLink(c.Request.Context(), platform, profile.LinkUpdate{URL: req.URL, Icon: req.Icon})
	h.cache.Invalidate(c.Request.Context(), CacheKeyProfile)

	c.JSON(http.StatusOK, ToProfileDTO(h.store.Profile()))
}
