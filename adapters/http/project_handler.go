package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lamnguyen/folio/internal/domain/project"
	"github.com/lamnguyen/folio/internal/store"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/logger"
)

type ProjectHandler struct {
	store  *store.Store
	cache  *Cache
	logger logger.Logger
}

func NewProjectHandler(s *store.Store, cache *Cache, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{store: s, cache: cache, logger: log}
}

func (h *ProjectHandler) AddProject(c *gin.Context) {
	var req AddProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for project", err))
		return
	}

	created := h.store.AddProject(project.Project{
		Title:        req.Title,
		Description:  req.Description,
		Category:     project.Category(req.Category),
		Image:        req.Image,
		Link:         req.Link,
		LiveURL:      req.LiveURL,
		GithubURL:    req.GithubURL,
		Technologies: req.Technologies,
	})
	h.cache.Invalidate(c.Request.Context(), CacheKeyProjects)

	c.JSON(http.StatusCreated, ToProjectDTO(created))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project id", err))
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for project update", err))
		return
	}

	h.store.UpdateProject(id, req.ToDomainUpdate())
	h.cache.Invalidate(c.Request.Context(), CacheKeyProjects)

	c.JSON(http.StatusOK, ToProjectDTOs(h.store.Projects()))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project id", err))
		return
	}

	h.store.DeleteProject(id)
	h.cache.Invalidate(c.Request.Context(), CacheKeyProjects)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
