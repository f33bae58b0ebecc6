// internal/linkedin/client.go

// Package linkedin is a thin client for the two LinkedIn REST flows the
// service needs: the three-step feedshare media upload and UGC post creation.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"linkedin-autoposter/internal/common/config"
	stderrors "linkedin-autoposter/internal/common/errors"
	"linkedin-autoposter/internal/common/logger"
)

type Client struct {
	baseURL     string
	accessToken string
	ownerURN    string
	httpClient  *http.Client
	logger      logger.Logger
}

func NewClient(cfg config.LinkedInConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		ownerURN:    cfg.PersonURN,
		httpClient: &http.Client{
			Timeout: config.GetDuration(cfg.Timeout),
		},
		logger: log.With(map[string]interface{}{
			"component": "linkedin",
		}),
	}
}

// UploadImage runs the feedshare upload protocol: register an upload slot,
// download the image bytes from imageURL, PUT them to the returned upload
// URL, and return the asset URN. Both the upload URL and the asset URN are
// opaque server values and are threaded through unchanged. A slot registered
// before a later step fails is abandoned; LinkedIn has no rollback call.
func (c *Client) UploadImage(ctx context.Context, imageURL string) (string, error) {
	uploadURL, asset, err := c.registerUpload(ctx)
	if err != nil {
		return "", stderrors.NewMediaUploadError(err)
	}

	imageBytes, err := c.downloadImage(ctx, imageURL)
	if err != nil {
		c.logger.Warn("abandoning registered upload slot", map[string]interface{}{
			"asset": asset,
		})
		return "", stderrors.NewMediaUploadError(err)
	}

	if err := c.putImage(ctx, uploadURL, imageBytes); err != nil {
		c.logger.Warn("abandoning registered upload slot", map[string]interface{}{
			"asset": asset,
		})
		return "", stderrors.NewMediaUploadError(err)
	}

	c.logger.Info("image uploaded", map[string]interface{}{
		"asset":     asset,
		"sizeBytes": len(imageBytes),
	})

	return asset, nil
}

func (c *Client) registerUpload(ctx context.Context) (uploadURL, asset string, err error) {
	payload := registerUploadRequest{
		RegisterUploadRequest: registerUploadBody{
			Recipes: []string{"urn:li:digitalmediaRecipe:feedshare-image"},
			Owner:   c.ownerURN,
			ServiceRelationships: []serviceRelationship{
				{
					RelationshipType: "OWNER",
					Identifier:       "urn:li:userGeneratedContent",
				},
			},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal register request: %w", err)
	}

	url := fmt.Sprintf("%s/assets?action=registerUpload", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", "", fmt.Errorf("failed to create register request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to register upload: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read register response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", "", fmt.Errorf("register upload failed (status %d): %s", resp.StatusCode, string(body))
	}

	var registerResp registerUploadResponse
	if err := json.Unmarshal(body, &registerResp); err != nil {
		return "", "", fmt.Errorf("failed to unmarshal register response: %w", err)
	}

	mechanism, ok := registerResp.Value.UploadMechanism[uploadMechanismKey]
	if !ok || mechanism.UploadURL == "" {
		return "", "", fmt.Errorf("register response missing upload mechanism")
	}
	if registerResp.Value.Asset == "" {
		return "", "", fmt.Errorf("register response missing asset")
	}

	return mechanism.UploadURL, registerResp.Value.Asset, nil
}

func (c *Client) downloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed (status %d)", resp.StatusCode)
	}

	imageBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image bytes: %w", err)
	}

	return imageBytes, nil
}

func (c *Client) putImage(ctx context.Context, uploadURL string, imageBytes []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(imageBytes))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload image bytes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("image upload failed (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// CreatePost publishes a UGC post. An empty asset publishes text-only with
// shareMediaCategory NONE and no media array; a non-empty asset attaches it
// as a single READY image. Returns the created post id.
func (c *Client) CreatePost(ctx context.Context, text, asset string) (string, error) {
	content := shareContent{
		ShareCommentary:    textValue{Text: text},
		ShareMediaCategory: "NONE",
	}
	if asset != "" {
		content.ShareMediaCategory = "IMAGE"
		content.Media = []shareMedia{
			{
				Status:      "READY",
				Description: textValue{Text: "AI Generated Image"},
				Media:       asset,
				Title:       textValue{Text: "AI Insights"},
			},
		}
	}

	payload := ugcPostRequest{
		Author:         c.ownerURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]shareContent{
			"com.linkedin.ugc.ShareContent": content,
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", stderrors.NewPostPublishError(fmt.Errorf("failed to marshal post: %w", err))
	}

	url := fmt.Sprintf("%s/ugcPosts", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", stderrors.NewPostPublishError(fmt.Errorf("failed to create post request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", stderrors.NewPostPublishError(fmt.Errorf("failed to create post: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", stderrors.NewPostPublishError(fmt.Errorf("failed to read post response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", stderrors.NewPostPublishError(
			fmt.Errorf("post creation failed (status %d): %s", resp.StatusCode, string(body)))
	}

	var postResp ugcPostResponse
	if err := json.Unmarshal(body, &postResp); err != nil {
		return "", stderrors.NewPostPublishError(fmt.Errorf("failed to unmarshal post response: %w", err))
	}

	c.logger.Info("post created", map[string]interface{}{
		"postId":    postResp.ID,
		"withMedia": asset != "",
	})

	return postResp.ID, nil
}
