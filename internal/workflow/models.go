// internal/workflow/models.go
package workflow

import (
	"time"

	stderrors "linkedin-autoposter/internal/common/errors"
)

// Trigger names the entry point that started a run.
const (
	TriggerCron     = "cron"
	TriggerManual   = "manual"
	TriggerSchedule = "schedule"
)

// Stage names used in logs and failure metrics.
const (
	StageGenerate     = "generate"
	StageResolveImage = "resolve_image"
	StageUpload       = "upload"
	StagePublish      = "publish"
)

// Result is the outcome of one workflow run. On success PostText, ImagePrompt,
// ImageURL and PostID are set; on failure Err carries the aborting error.
// Timestamp is recorded at run completion in UTC.
type Result struct {
	Success     bool
	PostText    string
	ImagePrompt string
	ImageURL    string
	PostID      string
	Err         *stderrors.StandardError
	Timestamp   time.Time
}
