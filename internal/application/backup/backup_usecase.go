package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/lamnguyen/folio/internal/application/service"
	"github.com/lamnguyen/folio/pkg/logger"
)

// BackupUseCase pushes a copy of the local mirror file to the hosted object
// storage so a lost device does not mean lost content in local-only
// deployments.
type BackupUseCase struct {
	mirrorPath string
	uploader   service.Uploader
	logger     logger.Logger
}

func NewBackupUseCase(mirrorPath string, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		mirrorPath: mirrorPath,
		uploader:   uploader,
		logger:     log,
	}
}

func (uc *BackupUseCase) Execute(ctx context.Context) error {
	uc.logger.Info("Starting local mirror backup...")

	f, err := os.Open(uc.mirrorPath)
	if err != nil {
		return fmt.Errorf("cannot open local mirror: %w", err)
	}
	defer f.Close()

	timestamp := time.Now().UTC().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("mirror-%s-%s", timestamp, filepath.Base(uc.mirrorPath))
	folder := "backups/mirror"
	publicID := fmt.Sprintf("%s/%s", folder, filename)

	uploadURL, err := uc.uploader.Upload(ctx, f, folder, publicID)
	if err != nil {
		uc.logger.Error("Failed to upload mirror backup", err)
		return fmt.Errorf("upload mirror backup: %w", err)
	}

	uc.logger.Info("Local mirror backup uploaded successfully",
		zap.String("url", uploadURL),
		zap.String("public_id", publicID),
	)
	return nil
}
