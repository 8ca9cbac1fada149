package models_test

import (
	"errors"
	"testing"

	"github.com/wikiroam/randomarticle/internal/models"
)

func TestNewSiteContext(t *testing.T) {
	testCases := []struct {
		name       string
		identifier string
		wantHost   string
		wantErr    bool
	}{
		{
			name:       "plain host passes through",
			identifier: "en.wikipedia.org",
			wantHost:   "en.wikipedia.org",
		},
		{
			name:       "scheme and trailing slash stripped",
			identifier: "https://en.wikipedia.org/",
			wantHost:   "en.wikipedia.org",
		},
		{
			name:       "http scheme stripped",
			identifier: "http://de.wikipedia.org",
			wantHost:   "de.wikipedia.org",
		},
		{
			name:       "uppercase lowered",
			identifier: "EN.Wikipedia.ORG",
			wantHost:   "en.wikipedia.org",
		},
		{
			name:       "surrounding whitespace trimmed",
			identifier: "  fr.wikipedia.org  ",
			wantHost:   "fr.wikipedia.org",
		},
		{
			name:       "empty is invalid",
			identifier: "",
			wantErr:    true,
		},
		{
			name:       "whitespace only is invalid",
			identifier: "   ",
			wantErr:    true,
		},
		{
			name:       "scheme only is invalid",
			identifier: "https://",
			wantErr:    true,
		},
		{
			name:       "embedded path is invalid",
			identifier: "en.wikipedia.org/wiki",
			wantErr:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			site, err := models.NewSiteContext(tc.identifier)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NewSiteContext(%q) expected error, got %q", tc.identifier, site.Host())
				}
				if !errors.Is(err, models.ErrInvalidSite) {
					t.Errorf("error = %v, want ErrInvalidSite", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSiteContext(%q) unexpected error: %v", tc.identifier, err)
			}
			if site.Host() != tc.wantHost {
				t.Errorf("Host() = %q, want %q", site.Host(), tc.wantHost)
			}
		})
	}
}

func TestSiteContext_IsZero(t *testing.T) {
	var zero models.SiteContext
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}

	site, err := models.NewSiteContext("en.wikipedia.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if site.IsZero() {
		t.Error("constructed context should not report IsZero")
	}
}

func TestNewArticleKey(t *testing.T) {
	site, err := models.NewSiteContext("en.wikipedia.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key, err := models.NewArticleKey(site, "Octopus")
	if err != nil {
		t.Fatalf("NewArticleKey() unexpected error: %v", err)
	}
	if key.Title != "Octopus" {
		t.Errorf("Title = %q, want %q", key.Title, "Octopus")
	}
	if key.String() != "en.wikipedia.org/Octopus" {
		t.Errorf("String() = %q", key.String())
	}

	if _, err := models.NewArticleKey(site, ""); !errors.Is(err, models.ErrEmptyTitle) {
		t.Errorf("empty title error = %v, want ErrEmptyTitle", err)
	}

	var zero models.SiteContext
	if _, err := models.NewArticleKey(zero, "Octopus"); !errors.Is(err, models.ErrInvalidSite) {
		t.Errorf("zero site error = %v, want ErrInvalidSite", err)
	}
}
