package services

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/dongbac/feedback-backend/config"
	"github.com/dongbac/feedback-backend/logger"
	"github.com/dongbac/feedback-backend/types"
	"go.uber.org/zap"
)

// HealthService reports whether the two storage locations the service
// depends on are present and writable.
type HealthService struct {
	logFile   string
	uploadDir string
	version   string
	startTime time.Time
	log       *zap.SugaredLogger
}

func NewHealthService(cfg *config.Config) *HealthService {
	return &HealthService{
		logFile:   cfg.Storage.LogFile,
		uploadDir: cfg.Storage.UploadDir,
		version:   cfg.Server.Version,
		startTime: time.Now(),
		log:       logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.ComponentHealth)
	overallStatus := types.HealthStatusUp

	logStatus := h.checkWritableDir(ctx, filepath.Dir(h.logFile))
	components["feedback_log"] = logStatus
	if logStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	uploadStatus := h.checkWritableDir(ctx, h.uploadDir)
	components["upload_store"] = uploadStatus
	if uploadStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Version:    h.version,
		Timestamp:  time.Now().UTC(),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Components: components,
	}
}

// checkWritableDir creates dir if needed and probes it with a throwaway
// file, the same operations an actual submission performs.
func (h *HealthService) checkWritableDir(ctx context.Context, dir string) types.ComponentHealth {
	if err := ctx.Err(); err != nil {
		return types.ComponentHealth{Status: types.HealthStatusDown, Details: err.Error()}
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		h.log.Warnw("Health check failed to create directory", "dir", dir, "error", err)
		return types.ComponentHealth{Status: types.HealthStatusDown, Details: err.Error()}
	}

	probe, err := os.CreateTemp(dir, ".healthcheck-*")
	if err != nil {
		h.log.Warnw("Health check failed to write probe file", "dir", dir, "error", err)
		return types.ComponentHealth{Status: types.HealthStatusDown, Details: err.Error()}
	}
	probe.Close()
	_ = os.Remove(probe.Name())

	return types.ComponentHealth{Status: types.HealthStatusUp}
}
