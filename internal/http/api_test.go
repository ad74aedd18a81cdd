package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelfcache/internal/catalog"
	"github.com/mrlokans/shelfcache/internal/database"
	"github.com/mrlokans/shelfcache/internal/database/annotations"
	"github.com/mrlokans/shelfcache/internal/database/items"
	"github.com/mrlokans/shelfcache/internal/services"
)

const catalogPage = `{
  "count": 2,
  "results": [
    {"id": 1342, "title": "Pride and Prejudice", "authors": [{"name": "Austen, Jane"}], "subjects": [], "summaries": ["Courtship."], "languages": ["en"]},
    {"id": 84, "title": "Frankenstein", "authors": [{"name": "Shelley, Mary"}], "subjects": [], "summaries": [], "languages": ["en"]}
  ]
}`

type apiEnv struct {
	db          *database.Database
	router      *gin.Engine
	items       *services.ItemCache
	annotations *services.Annotations
}

func newAPIEnv(t *testing.T, catalogHandler http.HandlerFunc) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if catalogHandler == nil {
		catalogHandler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(catalogPage))
		}
	}
	catalogServer := httptest.NewServer(catalogHandler)
	t.Cleanup(catalogServer.Close)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "api.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	client := catalog.NewClient(catalogServer.URL, catalog.WithMinInterval(0), catalog.WithTimeout(5*time.Second))
	itemCache := services.NewItemCache(items.NewRepository(db.DB, db.Hub), client)
	annotationService := services.NewAnnotations(annotations.NewRepository(db.DB, db.Hub))

	router := NewRouter(RouterConfig{
		Database:          db,
		Items:             itemCache,
		Annotations:       annotationService,
		HeartbeatInterval: time.Hour,
		Version:           "test",
	})
	return &apiEnv{db: db, router: router, items: itemCache, annotations: annotationService}
}

func (e *apiEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
