package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelfcache/internal/entities"
)

const samplePage = `{
  "count": 2,
  "next": "https://gutendex.com/books/?page=2",
  "previous": null,
  "results": [
    {
      "id": 84,
      "title": "Frankenstein; Or, The Modern Prometheus",
      "authors": [{"name": "Shelley, Mary Wollstonecraft", "birth_year": 1797, "death_year": 1851}],
      "subjects": ["Science fiction", "Horror tales"],
      "summaries": ["\"Frankenstein\" is a novel.\r\nIt is gothic."],
      "languages": ["en"],
      "copyright": false,
      "media_type": "Text",
      "download_count": 101517,
      "formats": {"image/jpeg": "https://www.gutenberg.org/cache/epub/84/pg84.cover.medium.jpg"}
    },
    {
      "id": 1342,
      "title": "Pride and Prejudice",
      "authors": [{"name": "Austen, Jane"}],
      "subjects": [],
      "summaries": [],
      "languages": ["en", "fr"],
      "download_count": 60000
    }
  ]
}`

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, WithMinInterval(0), WithTimeout(5*time.Second))
}

func TestFetchBooks(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/books", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	records, err := client.FetchBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int32(1), requests.Load(), "only the first page is requested")
	assert.Equal(t, int64(84), records[0].ID)
	assert.Equal(t, "Frankenstein; Or, The Modern Prometheus", records[0].Title)
	assert.Equal(t, "Shelley, Mary Wollstonecraft", records[0].Authors[0].Name)
	assert.Equal(t, int64(101517), records[0].DownloadCount)
	assert.Equal(t, "https://www.gutenberg.org/cache/epub/84/pg84.cover.medium.jpg", records[0].CoverURL())

	assert.Empty(t, records[1].CoverURL())
	assert.Equal(t, []string{"en", "fr"}, records[1].Languages)
}

func TestFetchBooks_TrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Page{})
	}))
	defer server.Close()

	client := newTestClient(server.URL + "/")
	records, err := client.FetchBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchBooks_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchBooks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrFetchFailed)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestFetchBooks_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchBooks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrFetchFailed)
	assert.Contains(t, err.Error(), "decode response")
}

func TestFetchBooks_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).FetchBooks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrFetchFailed)
}

func TestFetchBooks_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL).FetchBooks(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrFetchFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("")

	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Zero(t, client.httpClient.Timeout)
	assert.NotNil(t, client.limiter)
}
