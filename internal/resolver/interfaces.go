package resolver

import (
	"context"
	"time"

	"github.com/wikiroam/randomarticle/internal/models"
)

// TitleProvider is the external network collaborator that picks one random
// article title for a site. Implementations own their retry policy for
// transient failures.
type TitleProvider interface {
	FetchRandomTitle(ctx context.Context, site models.SiteContext) (string, error)
}

// ContentFetcher loads article data from the network.
type ContentFetcher interface {
	// FetchPreview loads summary metadata for an article
	FetchPreview(ctx context.Context, key models.ArticleKey) (*models.ArticlePreview, error)
	// FetchContent loads the full article content as an opaque blob
	FetchContent(ctx context.Context, key models.ArticleKey) ([]byte, error)
}

// ArticleStore is the persistent store of previously loaded articles,
// keyed by site+title.
type ArticleStore interface {
	// Get returns the stored record or models.ErrNotFound
	Get(ctx context.Context, key models.ArticleKey) (*models.ArticleRecord, error)
	// Put persists freshly fetched content for a key
	Put(ctx context.Context, key models.ArticleKey, fullContent []byte) (*models.ArticleRecord, error)
	// Touch bumps the access timestamp of an existing record
	Touch(ctx context.Context, key models.ArticleKey) error
}

// PreviewStore is the short-lived cache of preview metadata.
type PreviewStore interface {
	// Get returns the cached preview or models.ErrNotFound
	Get(ctx context.Context, key models.ArticleKey) (*models.ArticlePreview, error)
	// Put stores a preview under its key
	Put(ctx context.Context, preview *models.ArticlePreview) error
}

// MetricsTracker records resolution outcomes. A nil tracker disables
// recording.
type MetricsTracker interface {
	ObserveResolution(outcome string, duration time.Duration)
}
