package models

import (
	"fmt"
	"time"
)

// ArticleKey uniquely identifies one article within one site. It is the
// lookup key for both the article store and the preview cache.
type ArticleKey struct {
	Site  SiteContext
	Title string
}

// NewArticleKey builds a key from an already-normalized site context.
func NewArticleKey(site SiteContext, title string) (ArticleKey, error) {
	if site.IsZero() {
		return ArticleKey{}, fmt.Errorf("%w: zero site context", ErrInvalidSite)
	}
	if title == "" {
		return ArticleKey{}, ErrEmptyTitle
	}
	return ArticleKey{Site: site, Title: title}, nil
}

func (k ArticleKey) String() string {
	return k.Site.Host() + "/" + k.Title
}

// ArticlePreview is the lightweight summary metadata for an article,
// cheaper to fetch than full content. Owned by the preview cache; absence
// means a cache miss, staleness is enforced by the cache's TTL.
type ArticlePreview struct {
	Key          ArticleKey `json:"-"`
	Snippet      string     `json:"snippet,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	Description  string     `json:"description,omitempty"`
	FetchedAt    time.Time  `json:"fetched_at"`
}

// ArticleRecord is the full persisted content of one article. Created on the
// first successful content fetch; later loads only bump LastAccessed. The
// record's lifecycle (eviction) is owned by the store, never by callers.
type ArticleRecord struct {
	ID           string    `db:"id"`
	Site         string    `db:"site"`
	Title        string    `db:"title"`
	FullContent  []byte    `db:"full_content"`
	LastAccessed time.Time `db:"last_accessed"`
	CreatedAt    time.Time `db:"created_at"`
}

// Key reconstructs the article key for a record loaded from the store.
// Site values in the store are already canonical.
func (r *ArticleRecord) Key() ArticleKey {
	return ArticleKey{Site: SiteContext{host: r.Site}, Title: r.Title}
}
