// Package provider implements the network client for the random-title
// provider and the article content endpoints of a MediaWiki-style REST API.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/wikiroam/randomarticle/internal/config"
	"github.com/wikiroam/randomarticle/internal/logger"
	"github.com/wikiroam/randomarticle/internal/models"
	"github.com/wikiroam/randomarticle/internal/retry"
)

const restBasePath = "/api/rest_v1"

// Client talks to the provider REST surface. One client is shared across
// sites; requests are built against the site host unless a base URL
// override is configured (used in tests and single-site deployments).
type Client struct {
	baseURL    string
	timeout    time.Duration
	maxRetries int
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a provider client from configuration.
func NewClient(cfg *config.ProviderConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitRPS),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log,
	}
}

type randomTitleResponse struct {
	Items []struct {
		Title string `json:"title"`
	} `json:"items"`
}

type summaryResponse struct {
	Extract     string `json:"extract"`
	Description string `json:"description"`
	Thumbnail   struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// FetchRandomTitle asks the provider for one random article title scoped to
// the site. Transient network failures are retried up to the configured
// bound; permanent failures (bad site, no content) surface immediately.
func (c *Client) FetchRandomTitle(ctx context.Context, site models.SiteContext) (string, error) {
	endpoint := c.endpoint(site, "/page/random/title")

	var title string
	err := retry.Do(ctx, retry.Config{
		MaxRetries:  c.maxRetries,
		Delay:       200 * time.Millisecond,
		IsRetryable: isTransient,
	}, func() error {
		start := time.Now()
		body, reqErr := c.get(ctx, endpoint)
		duration := time.Since(start)

		if reqErr != nil {
			c.logger.Warn("Random title request failed",
				logger.String("site", site.Host()),
				logger.Duration("duration", duration),
				logger.Error(reqErr),
			)
			return reqErr
		}

		var resp randomTitleResponse
		if decodeErr := json.Unmarshal(body, &resp); decodeErr != nil {
			return fmt.Errorf("decode random title response: %w", decodeErr)
		}
		if len(resp.Items) == 0 || resp.Items[0].Title == "" {
			return errors.New("random title response contained no items")
		}

		title = resp.Items[0].Title
		c.logger.Debug("Fetched random title",
			logger.String("site", site.Host()),
			logger.String("title", title),
			logger.Duration("duration", duration),
		)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fetch random title: %w", err)
	}

	return title, nil
}

// FetchPreview loads summary metadata for an article. Callers treat
// failures as best-effort; nothing is retried here.
func (c *Client) FetchPreview(ctx context.Context, key models.ArticleKey) (*models.ArticlePreview, error) {
	endpoint := c.endpoint(key.Site, "/page/summary/"+url.PathEscape(key.Title))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch preview: %w", err)
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode preview response: %w", err)
	}

	return &models.ArticlePreview{
		Key:          key,
		Snippet:      resp.Extract,
		ThumbnailURL: resp.Thumbnail.Source,
		Description:  resp.Description,
		FetchedAt:    time.Now(),
	}, nil
}

// FetchContent loads the full article content as an opaque blob.
func (c *Client) FetchContent(ctx context.Context, key models.ArticleKey) ([]byte, error) {
	endpoint := c.endpoint(key.Site, "/page/mobile-sections/"+url.PathEscape(key.Title))

	start := time.Now()
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch content: %w", err)
	}

	c.logger.Debug("Fetched article content",
		logger.String("title", key.Title),
		logger.String("site", key.Site.Host()),
		logger.Int("bytes", len(body)),
		logger.Duration("duration", time.Since(start)),
	)

	return body, nil
}

func (c *Client) endpoint(site models.SiteContext, path string) string {
	if c.baseURL != "" {
		return c.baseURL + restBasePath + path
	}
	return "https://" + site.Host() + restBasePath + path
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, url: endpoint}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

// statusError marks non-200 responses so retry classification can tell
// server-side hiccups from permanent client errors.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider returned status %d for %s", e.code, e.url)
}

// isTransient reports whether a request failure is worth one more attempt.
// Network errors and 5xx/429 responses qualify; 4xx responses do not.
func isTransient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError || se.code == http.StatusTooManyRequests
	}
	return retry.DefaultIsRetryable(err)
}
