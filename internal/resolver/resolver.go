// Package resolver turns a site context into a ready-to-display random
// article reference, populating the preview cache and article store on the
// way.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wikiroam/randomarticle/internal/logger"
	"github.com/wikiroam/randomarticle/internal/models"
)

// Resolver coordinates the title provider, preview cache and article store.
// It owns none of their data; all access goes through their contracts.
type Resolver struct {
	titles   TitleProvider
	fetcher  ContentFetcher
	store    ArticleStore
	previews PreviewStore
	metrics  MetricsTracker
	logger   logger.Logger
	tracer   trace.Tracer
}

// Deps contains the collaborators for creating a Resolver. Metrics may be
// nil; everything else is required.
type Deps struct {
	Titles   TitleProvider
	Fetcher  ContentFetcher
	Store    ArticleStore
	Previews PreviewStore
	Metrics  MetricsTracker
	Logger   logger.Logger
}

// NewResolver creates a resolver, failing fast when a required collaborator
// is missing.
func NewResolver(deps Deps) (*Resolver, error) {
	switch {
	case deps.Titles == nil:
		return nil, fmt.Errorf("%w: title provider is nil", ErrInvalidConfiguration)
	case deps.Fetcher == nil:
		return nil, fmt.Errorf("%w: content fetcher is nil", ErrInvalidConfiguration)
	case deps.Store == nil:
		return nil, fmt.Errorf("%w: article store is nil", ErrInvalidConfiguration)
	case deps.Previews == nil:
		return nil, fmt.Errorf("%w: preview store is nil", ErrInvalidConfiguration)
	case deps.Logger == nil:
		return nil, fmt.Errorf("%w: logger is nil", ErrInvalidConfiguration)
	}

	return &Resolver{
		titles:   deps.Titles,
		fetcher:  deps.Fetcher,
		store:    deps.Store,
		previews: deps.Previews,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		tracer:   otel.Tracer("random-article-resolver"),
	}, nil
}

// Resolve produces exactly one Result for the site: Ready with the resolved
// key, or Failed with the reason. Cache and store writes along the way are
// best-effort except for persisting full content, which gates success.
func (r *Resolver) Resolve(ctx context.Context, site models.SiteContext) Result {
	start := time.Now()

	ctx, span := r.tracer.Start(ctx, "resolver.resolve",
		trace.WithAttributes(attribute.String("site", site.Host())))
	defer span.End()

	result := r.resolve(ctx, site)

	duration := time.Since(start)
	span.SetAttributes(attribute.String("outcome", result.Kind.String()))
	if r.metrics != nil {
		r.metrics.ObserveResolution(result.Kind.String(), duration)
	}

	if result.Ready() {
		r.logger.Info("Resolved random article",
			logger.String("site", site.Host()),
			logger.String("title", result.Key.Title),
			logger.Duration("duration", duration),
		)
	} else {
		r.logger.Warn("Random article resolution failed",
			logger.String("site", site.Host()),
			logger.String("kind", result.Kind.String()),
			logger.Duration("duration", duration),
			logger.Error(result.Err),
		)
	}

	return result
}

func (r *Resolver) resolve(ctx context.Context, site models.SiteContext) Result {
	title, err := r.titles.FetchRandomTitle(ctx, site)
	if err != nil {
		return failed(KindNoRandomTitle, fmt.Errorf("%w: %w", ErrNoRandomTitle, err))
	}

	key, err := models.NewArticleKey(site, title)
	if err != nil {
		return failed(KindNoRandomTitle, fmt.Errorf("%w: %w", ErrNoRandomTitle, err))
	}

	r.ensurePreview(ctx, key)

	if err := r.ensureRecord(ctx, key); err != nil {
		return failed(KindContentUnavailable, fmt.Errorf("%w: %w", ErrContentUnavailable, err))
	}

	return ready(key)
}

// ensurePreview populates the preview cache on a miss. Preview failures
// never abort resolution.
func (r *Resolver) ensurePreview(ctx context.Context, key models.ArticleKey) {
	_, err := r.previews.Get(ctx, key)
	if err == nil {
		return
	}
	if !errors.Is(err, models.ErrNotFound) {
		r.logger.Warn("Preview cache read failed",
			logger.String("title", key.Title),
			logger.Error(err),
		)
	}

	preview, fetchErr := r.fetcher.FetchPreview(ctx, key)
	if fetchErr != nil {
		r.logger.Warn("Preview fetch failed",
			logger.String("title", key.Title),
			logger.String("site", key.Site.Host()),
			logger.Error(fetchErr),
		)
		return
	}

	if putErr := r.previews.Put(ctx, preview); putErr != nil {
		r.logger.Warn("Preview cache write failed",
			logger.String("title", key.Title),
			logger.Error(putErr),
		)
	}
}

// ensureRecord guarantees a full article record exists for the key. A store
// hit only bumps the access time; a miss fetches and persists the content.
// An incomplete fetch never leaves a partial record behind.
func (r *Resolver) ensureRecord(ctx context.Context, key models.ArticleKey) error {
	_, err := r.store.Get(ctx, key)
	if err == nil {
		if touchErr := r.store.Touch(ctx, key); touchErr != nil {
			r.logger.Warn("Access time bump failed",
				logger.String("title", key.Title),
				logger.Error(touchErr),
			)
		}
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		r.logger.Warn("Article store read failed",
			logger.String("title", key.Title),
			logger.Error(err),
		)
	}

	content, err := r.fetcher.FetchContent(ctx, key)
	if err != nil {
		return fmt.Errorf("fetch content: %w", err)
	}

	if _, err := r.store.Put(ctx, key, content); err != nil {
		return fmt.Errorf("persist content: %w", err)
	}

	return nil
}
