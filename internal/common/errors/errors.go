// Package errors provides standardized error handling for the posting workflow.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfigurationMissing  ErrorCode = "CONFIGURATION_MISSING"
	ErrCodeUnauthorized          ErrorCode = "UNAUTHORIZED"
	ErrCodeGenerationFailed      ErrorCode = "GENERATION_FAILED"
	ErrCodeImageGenerationFailed ErrorCode = "IMAGE_GENERATION_FAILED"
	ErrCodeMediaUploadFailed     ErrorCode = "MEDIA_UPLOAD_FAILED"
	ErrCodePostPublishFailed     ErrorCode = "POST_PUBLISH_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewConfigurationError creates a non-retryable error listing missing
// environment variables. The trigger surface renders it as a 500 without
// making any outbound call.
func NewConfigurationError(missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationMissing,
		Message:   "Missing required environment variables",
		Details:   fmt.Sprintf("missing: %v", missing),
		Retryable: false,
		Metadata:  map[string]interface{}{"missing": missing},
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates a non-retryable credential mismatch error.
func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Unauthorized",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationError creates a retryable text generation error.
func NewGenerationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Content generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewImageGenerationError creates a retryable image resolution error. The
// placeholder resolver never fails; this exists for generating backends.
func NewImageGenerationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeImageGenerationFailed,
		Message:   "Image generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMediaUploadError creates a retryable media upload error. The workflow
// treats it as soft: the run continues with a text-only post.
func NewMediaUploadError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMediaUploadFailed,
		Message:   "Media upload failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPostPublishError creates a retryable post creation error.
func NewPostPublishError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePostPublishFailed,
		Message:   "Post publish failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// AsStandard extracts a *StandardError from err, wrapping unknown errors as a
// non-retryable publish failure so callers always have a code to report.
func AsStandard(err error) *StandardError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StandardError); ok {
		return se
	}
	return &StandardError{
		Code:      ErrCodePostPublishFailed,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
