// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translator is the client for the remote machine-translation API.
package translator

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the Google Cloud Translation v2 endpoint.
const DefaultEndpoint = "https://translation.googleapis.com/language/translate/v2"

// DefaultTimeout bounds a single remote call.
const DefaultTimeout = 15 * time.Second

// formatHTML tells the provider the text contains markup whose tags must be kept.
const formatHTML = "html"

// Options configures the client.
type Options struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration

	// RateLimit is the maximum number of requests per second (0 = unlimited).
	RateLimit float64
	Burst     int

	// Sanitize strips script-capable markup from translated HTML. Layout
	// markup (class, style, embeds) is kept so a variant renders like its
	// origin.
	Sanitize bool
}

// Client calls the remote translation API. One call per Translate, no retry.
type Client struct {
	apiKey    string
	endpoint  string
	http      *resty.Client
	limiter   *rate.Limiter
	sanitizer *bluemonday.Policy
}

// New creates a new Client.
func New(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	c := &Client{
		apiKey:   opts.APIKey,
		endpoint: opts.Endpoint,
		http:     resty.New().SetTimeout(opts.Timeout),
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	if opts.Sanitize {
		c.sanitizer = contentPolicy()
	}
	return c
}

// contentPolicy is the UGC policy widened to the markup an editor can put in
// content: classes, inline styles and iframe embeds.
func contentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowAttrs("style").Globally()
	p.AllowElements("iframe")
	p.AllowAttrs("src").OnElements("iframe")
	p.AllowAttrs("width", "height", "frameborder").Matching(bluemonday.Integer).OnElements("iframe")
	p.AllowAttrs("allow", "allowfullscreen", "loading", "referrerpolicy").OnElements("iframe")
	return p
}

// Configured reports whether the provider credential is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Translate translates text from sourceLang to targetLang and returns the
// first translation candidate.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if c.apiKey == "" {
		return "", &ConfigError{Setting: "OCMS_TRANSLATE_API_KEY"}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &ProviderError{Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-HTTP-Method-Override", http.MethodGet).
		SetFormData(map[string]string{
			"key":    c.apiKey,
			"source": sourceLang,
			"target": targetLang,
			"format": formatHTML,
			"q":      text,
		}).
		Post(c.endpoint)
	if err != nil {
		return "", &ProviderError{Err: err}
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return "", &ProviderError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("malformed response body (%d bytes)", len(body)),
		}
	}

	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return "", &ProviderError{StatusCode: resp.StatusCode(), Message: msg.String()}
	}
	if resp.IsError() {
		return "", &ProviderError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	}

	translated := gjson.GetBytes(body, "data.translations.0.translatedText")
	if !translated.Exists() {
		return "", &ProviderError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("response has no translations"),
		}
	}

	out := translated.String()
	if c.sanitizer != nil {
		out = c.sanitizer.Sanitize(out)
	}
	return out, nil
}
