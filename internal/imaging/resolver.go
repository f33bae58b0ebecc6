// internal/imaging/resolver.go

// Package imaging resolves an image prompt to a fetchable image URL. The
// placeholder resolver renders the prompt as text on a static placeholder
// image; a generating backend (Imagen, DALL-E) would slot in behind the same
// method.
package imaging

import (
	"fmt"
	"net/url"
	"strings"

	"linkedin-autoposter/internal/common/config"
)

// Resolver builds placeholder image URLs. It is pure and never fails.
type Resolver struct {
	cfg config.ImageConfig
}

func NewResolver(cfg config.ImageConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve truncates the prompt and embeds it as the text overlay of a
// placeholder image URL. Spaces are rendered as %20, not +, so the URL
// matches the form browsers and the upload step expect.
func (r *Resolver) Resolve(imagePrompt string) string {
	text := truncate(imagePrompt, r.cfg.MaxPromptLength)
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")

	return fmt.Sprintf("%s/%dx%d/%s/%s/%s?text=%s",
		strings.TrimRight(r.cfg.BaseURL, "/"),
		r.cfg.Width, r.cfg.Height,
		r.cfg.Background, r.cfg.Foreground, r.cfg.Format,
		encoded,
	)
}

// truncate cuts s to at most max runes without splitting a character.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
