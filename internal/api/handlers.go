package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wikiroam/randomarticle/internal/logger"
	"github.com/wikiroam/randomarticle/internal/models"
	"github.com/wikiroam/randomarticle/internal/resolver"
)

const healthCheckTimeout = 2 * time.Second

// ArticleResolver is the resolution entry point used by the HTTP handlers.
type ArticleResolver interface {
	Resolve(ctx context.Context, site models.SiteContext) resolver.Result
}

// PreviewReader reads cached previews for response enrichment.
type PreviewReader interface {
	Get(ctx context.Context, key models.ArticleKey) (*models.ArticlePreview, error)
}

// Pinger is a dependency health probe.
type Pinger func(ctx context.Context) error

// Handlers provides HTTP handlers for the API
type Handlers struct {
	resolver  ArticleResolver
	previews  PreviewReader
	dbPing    Pinger
	redisPing Pinger
	logger    logger.Logger
	version   string
}

// NewHandlers creates a new handlers instance
func NewHandlers(res ArticleResolver, previews PreviewReader, dbPing, redisPing Pinger, log logger.Logger, version string) *Handlers {
	return &Handlers{
		resolver:  res,
		previews:  previews,
		dbPing:    dbPing,
		redisPing: redisPing,
		logger:    log,
		version:   version,
	}
}

type randomResponse struct {
	Site    string                 `json:"site"`
	Title   string                 `json:"title"`
	Preview *models.ArticlePreview `json:"preview,omitempty"`
}

// ResolveRandom handles GET /api/v1/sites/:site/random
func (h *Handlers) ResolveRandom(c *gin.Context) {
	site, err := models.NewSiteContext(c.Param("site"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid site identifier",
		})
		return
	}

	result := h.resolver.Resolve(c.Request.Context(), site)
	if !result.Ready() {
		h.logger.Warn("Random resolution failed",
			logger.String("site", site.Host()),
			logger.String("kind", result.Kind.String()),
			logger.Error(result.Err),
		)
		c.JSON(statusForKind(result.Kind), gin.H{
			"error": result.Kind.Message(),
			"kind":  result.Kind.String(),
		})
		return
	}

	resp := randomResponse{
		Site:  result.Key.Site.Host(),
		Title: result.Key.Title,
	}

	// Preview enrichment is best-effort; the key alone is a valid answer.
	if preview, previewErr := h.previews.Get(c.Request.Context(), result.Key); previewErr == nil {
		resp.Preview = preview
	} else if !errors.Is(previewErr, models.ErrNotFound) {
		h.logger.Warn("Preview lookup failed",
			logger.String("site", site.Host()),
			logger.String("title", result.Key.Title),
			logger.Error(previewErr),
		)
	}

	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	checks := gin.H{}

	if h.dbPing != nil {
		if err := h.dbPing(ctx); err != nil {
			status = "degraded"
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}
	}
	if h.redisPing != nil {
		if err := h.redisPing(ctx); err != nil {
			status = "degraded"
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "randomarticle",
		"version": h.version,
		"checks":  checks,
	})
}

// statusForKind maps a failure kind to an HTTP status.
func statusForKind(kind resolver.ErrorKind) int {
	switch kind {
	case resolver.KindNoRandomTitle:
		return http.StatusBadGateway
	case resolver.KindContentUnavailable:
		return http.StatusBadGateway
	case resolver.KindInvalidConfiguration:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
