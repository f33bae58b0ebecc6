// internal/server/handlers.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"linkedin-autoposter/internal/common/config"
	"linkedin-autoposter/internal/common/logger"
	"linkedin-autoposter/internal/workflow"
)

// WorkflowRunner executes one posting run.
type WorkflowRunner interface {
	Run(ctx context.Context, trigger string) *workflow.Result
}

type Handlers struct {
	cfg    *config.Config
	runner WorkflowRunner
	logger logger.Logger
}

func NewHandlers(cfg *config.Config, runner WorkflowRunner, log logger.Logger) *Handlers {
	return &Handlers{
		cfg:    cfg,
		runner: runner,
		logger: log,
	}
}

// Cron is the scheduled entry point. The secret check runs before anything
// else; a mismatch must not cause any outbound call.
func (h *Handlers) Cron(c *gin.Context) {
	if secret := h.cfg.Server.CronSecret; secret != "" {
		if c.GetHeader("Authorization") != "Bearer "+secret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
	}

	h.runAndRespond(c, workflow.TriggerCron)
}

// ManualPost triggers a run on demand. It shares the cron path directly
// instead of calling the cron endpoint over HTTP, so it needs no secret.
func (h *Handlers) ManualPost(c *gin.Context) {
	h.runAndRespond(c, workflow.TriggerManual)
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) runAndRespond(c *gin.Context, trigger string) {
	if missing := h.cfg.MissingRequired(); len(missing) > 0 {
		h.logger.Error("refusing to run without credentials", map[string]interface{}{
			"missing": missing,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Missing required environment variables",
			"required": config.RequiredEnvVars,
		})
		return
	}

	result := h.runner.Run(c.Request.Context(), trigger)

	if !result.Success {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to create LinkedIn post",
			"details":   result.Err.Details,
			"timestamp": result.Timestamp.Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"postText":    result.PostText,
		"imagePrompt": result.ImagePrompt,
		"imageUrl":    result.ImageURL,
		"postId":      result.PostID,
		"timestamp":   result.Timestamp.Format(time.RFC3339),
	})
}
