// internal/workflow/workflow.go

// Package workflow orchestrates one posting run: generate content, resolve an
// image URL, upload the image, publish the post.
package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	stderrors "linkedin-autoposter/internal/common/errors"
	"linkedin-autoposter/internal/common/logger"
	"linkedin-autoposter/internal/common/metrics"
	"linkedin-autoposter/internal/generator"
)

// ContentGenerator produces the post body and image prompt.
type ContentGenerator interface {
	Generate(ctx context.Context) (*generator.Content, error)
}

// ImageResolver turns an image prompt into a fetchable image URL.
type ImageResolver interface {
	Resolve(imagePrompt string) string
}

// MediaUploader uploads the image behind imageURL and returns an asset URN.
type MediaUploader interface {
	UploadImage(ctx context.Context, imageURL string) (string, error)
}

// PostPublisher creates the post; an empty asset publishes text-only.
type PostPublisher interface {
	CreatePost(ctx context.Context, text, asset string) (string, error)
}

// Runner executes runs sequentially per call. Concurrent calls are allowed
// and independent; there is no cross-run mutual exclusion.
type Runner struct {
	generator ContentGenerator
	resolver  ImageResolver
	uploader  MediaUploader
	publisher PostPublisher
	logger    logger.Logger
}

func NewRunner(gen ContentGenerator, res ImageResolver, up MediaUploader, pub PostPublisher, log logger.Logger) *Runner {
	return &Runner{
		generator: gen,
		resolver:  res,
		uploader:  up,
		publisher: pub,
		logger:    log,
	}
}

// Run executes one posting run. Generation and publish failures abort the
// run; an upload failure is logged and counted, and the run continues with a
// text-only post. trigger names the entry point for logs and metrics.
func (r *Runner) Run(ctx context.Context, trigger string) *Result {
	runID := uuid.New().String()
	log := r.logger.With(map[string]interface{}{
		"runId":   runID,
		"trigger": trigger,
	})

	log.Info("workflow run started", nil)

	content, err := r.timedGenerate(ctx)
	if err != nil {
		return r.fail(log, trigger, StageGenerate, err)
	}

	start := time.Now()
	imageURL := r.resolver.Resolve(content.ImagePrompt)
	metrics.StepDuration.WithLabelValues(StageResolveImage).Observe(time.Since(start).Seconds())

	start = time.Now()
	asset, err := r.uploader.UploadImage(ctx, imageURL)
	metrics.StepDuration.WithLabelValues(StageUpload).Observe(time.Since(start).Seconds())
	if err != nil {
		// Soft failure: post without the image rather than losing the run.
		log.WithError(err).Warn("image upload failed, posting without image", nil)
		metrics.MediaUploadFailures.Inc()
		asset = ""
	}

	start = time.Now()
	postID, err := r.publisher.CreatePost(ctx, content.PostText, asset)
	metrics.StepDuration.WithLabelValues(StagePublish).Observe(time.Since(start).Seconds())
	if err != nil {
		return r.fail(log, trigger, StagePublish, err)
	}

	log.Info("workflow run completed", map[string]interface{}{
		"postId":    postID,
		"withMedia": asset != "",
	})
	metrics.WorkflowRuns.WithLabelValues(trigger, "success").Inc()

	return &Result{
		Success:     true,
		PostText:    content.PostText,
		ImagePrompt: content.ImagePrompt,
		ImageURL:    imageURL,
		PostID:      postID,
		Timestamp:   time.Now().UTC(),
	}
}

func (r *Runner) timedGenerate(ctx context.Context) (*generator.Content, error) {
	start := time.Now()
	content, err := r.generator.Generate(ctx)
	metrics.StepDuration.WithLabelValues(StageGenerate).Observe(time.Since(start).Seconds())
	return content, err
}

func (r *Runner) fail(log logger.Logger, trigger, stage string, err error) *Result {
	log.WithError(err).Error("workflow run failed", map[string]interface{}{
		"stage": stage,
	})
	metrics.WorkflowRuns.WithLabelValues(trigger, "failure").Inc()
	metrics.WorkflowFailures.WithLabelValues(stage).Inc()

	return &Result{
		Success:   false,
		Err:       stderrors.AsStandard(err),
		Timestamp: time.Now().UTC(),
	}
}
