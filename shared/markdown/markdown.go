// Package markdown turns user-written thread descriptions and predictions into
// sanitized HTML fragments.
package markdown

import (
	"bytes"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const defaultCacheSize = 512

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	cache  *lru.Cache[string, string]
}

// New returns a renderer that keeps up to cacheSize rendered fragments.
// A non-positive size falls back to a small default.
func New(cacheSize int) *Renderer {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	// only fails for a non-positive size
	cache, _ := lru.New[string, string](cacheSize)

	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithUnsafe()),
	)

	policy := bluemonday.UGCPolicy()
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{md: md, policy: policy, cache: cache}
}

// Render converts text to HTML. Raw HTML in the input is passed to the
// sanitizer, never to the output as is. Empty input renders as "".
func (r *Renderer) Render(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if cached, ok := r.cache.Get(text); ok {
		return cached
	}

	var buf bytes.Buffer
	rendered := text
	if err := r.md.Convert([]byte(text), &buf); err == nil {
		rendered = buf.String()
	}
	safe := strings.TrimSpace(r.policy.Sanitize(rendered))
	r.cache.Add(text, safe)
	return safe
}

// Len reports how many fragments are cached.
func (r *Renderer) Len() int {
	return r.cache.Len()
}
