package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/wikiroam/randomarticle/internal/database"
	"github.com/wikiroam/randomarticle/internal/models"
)

func newMockRepository(t *testing.T) (*database.ArticleRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return database.NewArticleRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func testKey(t *testing.T) models.ArticleKey {
	t.Helper()

	site, err := models.NewSiteContext("en.wikipedia.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	key, err := models.NewArticleKey(site, "Octopus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return key
}

func articleColumns() []string {
	return []string{"id", "site", "title", "full_content", "last_accessed", "created_at"}
}

func TestArticleRepository_Get(t *testing.T) {
	key := testKey(t)
	now := time.Now()

	testCases := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "returns record when present",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(articleColumns()).
					AddRow("rec-1", "en.wikipedia.org", "Octopus", []byte("content"), now, now)
				mock.ExpectQuery("SELECT id, site, title, full_content, last_accessed, created_at").
					WithArgs("en.wikipedia.org", "Octopus").
					WillReturnRows(rows)
			},
		},
		{
			name: "maps missing row to ErrNotFound",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id, site, title, full_content, last_accessed, created_at").
					WithArgs("en.wikipedia.org", "Octopus").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tc.setupMock(mock)

			record, err := repo.Get(context.Background(), key)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("Get() error = %v, want %v", err, tc.wantErr)
				}
			} else {
				if err != nil {
					t.Fatalf("Get() unexpected error: %v", err)
				}
				if record.Title != "Octopus" {
					t.Errorf("Title = %q, want %q", record.Title, "Octopus")
				}
				if record.Key() != key {
					t.Errorf("Key() = %v, want %v", record.Key(), key)
				}
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}

func TestArticleRepository_Get_QueryError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT id, site, title, full_content").
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Get(context.Background(), testKey(t))
	if err == nil {
		t.Fatal("Get() expected error for connection failure")
	}
	if errors.Is(err, models.ErrNotFound) {
		t.Error("connection failure must not map to ErrNotFound")
	}
}

func TestArticleRepository_Put(t *testing.T) {
	key := testKey(t)
	content := []byte("full article body")
	now := time.Now()

	t.Run("inserts new record", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		rows := sqlmock.NewRows(articleColumns()).
			AddRow("rec-1", "en.wikipedia.org", "Octopus", content, now, now)
		mock.ExpectQuery("INSERT INTO articles").
			WillReturnRows(rows)

		record, err := repo.Put(context.Background(), key, content)
		if err != nil {
			t.Fatalf("Put() unexpected error: %v", err)
		}
		if string(record.FullContent) != string(content) {
			t.Errorf("FullContent = %q, want %q", record.FullContent, content)
		}

		if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
			t.Errorf("unfulfilled expectations: %v", expectErr)
		}
	})

	t.Run("database error surfaces", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery("INSERT INTO articles").
			WillReturnError(sql.ErrConnDone)

		if _, err := repo.Put(context.Background(), key, content); err == nil {
			t.Error("Put() expected error")
		}
	})
}

func TestArticleRepository_Touch(t *testing.T) {
	key := testKey(t)

	testCases := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "bumps access time",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE articles SET last_accessed").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing record returns error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE articles SET last_accessed").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
		},
		{
			name: "database error returns error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE articles SET last_accessed").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tc.setupMock(mock)

			err := repo.Touch(context.Background(), key)
			if (err != nil) != tc.wantErr {
				t.Errorf("Touch() error = %v, wantErr %v", err, tc.wantErr)
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}
