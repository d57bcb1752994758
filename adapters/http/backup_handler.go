package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lamnguyen/folio/internal/application/backup"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/logger"
)

type BackupHandler struct {
	backupUC *backup.BackupUseCase
	logger   logger.Logger
}

func NewBackupHandler(uc *backup.BackupUseCase, log logger.Logger) *BackupHandler {
	return &BackupHandler{backupUC: uc, logger: log}
}

// TriggerBackup uploads a copy of the local mirror to the media storage.
// Requires an uploader; deployments without one get a 503.
func (h *BackupHandler) TriggerBackup(c *gin.Context) {
	if h.backupUC == nil {
		c.Error(apperror.NewUnavailable("backup requires a configured media storage", nil))
		return
	}

	if err := h.backupUC.Execute(c.Request.Context()); err != nil {
		c.Error(apperror.NewInternal("backup failed", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "backup uploaded"})
}
