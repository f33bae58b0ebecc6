// internal/generator/generator.go
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"linkedin-autoposter/internal/common/config"
	stderrors "linkedin-autoposter/internal/common/errors"
	"linkedin-autoposter/internal/common/logger"
)

const postPrompt = `Generate an engaging LinkedIn post about an interesting AI topic.
The post should be:
- Professional and insightful
- 150-250 words
- Include relevant hashtags (3-5)
- Focus on recent AI trends, applications, or insights
- Encourage engagement

Just provide the post text, nothing else.`

const imagePromptTemplate = `Based on this LinkedIn post about AI, create a detailed image generation prompt (1-2 sentences) for an eye-catching, professional image:

%s

Just provide the image prompt, nothing else.`

// Service produces post content through two sequential generative-text calls:
// the post body first, then an image prompt derived from that body.
type Service struct {
	cfg    config.GeminiConfig
	client *http.Client
	logger logger.Logger
}

func NewService(cfg config.GeminiConfig, log logger.Logger) *Service {
	return &Service{
		cfg: cfg,
		client: &http.Client{
			Timeout: config.GetDuration(cfg.Timeout),
		},
		logger: log.With(map[string]interface{}{
			"component": "generator",
		}),
	}
}

// Generate returns the post text and an image prompt. The second call depends
// on the first call's output, so they are never issued concurrently. Any
// transport error, non-200 status, or empty response text fails the run.
func (s *Service) Generate(ctx context.Context) (*Content, error) {
	postText, err := s.generateText(ctx, postPrompt)
	if err != nil {
		return nil, stderrors.NewGenerationError(fmt.Errorf("post text: %w", err))
	}

	imagePrompt, err := s.generateText(ctx, fmt.Sprintf(imagePromptTemplate, postText))
	if err != nil {
		return nil, stderrors.NewGenerationError(fmt.Errorf("image prompt: %w", err))
	}

	s.logger.Info("content generated", map[string]interface{}{
		"postLength":   len(postText),
		"promptLength": len(imagePrompt),
	})

	return &Content{
		PostText:    postText,
		ImagePrompt: imagePrompt,
	}, nil
}

// generateText issues one generateContent call and extracts the first
// candidate's text, whitespace-trimmed.
func (s *Service) generateText(ctx context.Context, prompt string) (string, error) {
	requestBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
	}

	body, _ := json.Marshal(requestBody)
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.Model, s.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generateContent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generateContent returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResponse generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	text := apiResponse.firstText()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response text")
	}

	return strings.TrimSpace(text), nil
}
