package ai

import (
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Generator wraps the completion endpoint client used for site generation
// and enhancement.
type Generator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// Options configures a Generator. BaseURL points the client at an
// OpenAI-compatible provider such as OpenRouter.
type Options struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	SiteName  string // sent as X-Title on every request
	SiteURL   string // sent as HTTP-Referer on every request
}

func NewGenerator(opts Options) *Generator {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	// OpenRouter attributes traffic via these two headers, so they ride on a
	// custom transport rather than per-request options.
	cfg.HTTPClient = &http.Client{
		Timeout: 90 * time.Second,
		Transport: attributionHeaders{
			referer: opts.SiteURL,
			title:   opts.SiteName,
		},
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4000
	}

	return &Generator{
		client:    openai.NewClientWithConfig(cfg),
		model:     opts.Model,
		maxTokens: maxTokens,
	}
}

type attributionHeaders struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t attributionHeaders) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
