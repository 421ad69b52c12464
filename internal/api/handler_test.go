package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"phone-inspection-backend/config"
	"phone-inspection-backend/internal/blob"
	"phone-inspection-backend/internal/model"
	"phone-inspection-backend/internal/report"
	"phone-inspection-backend/internal/session"
	"phone-inspection-backend/internal/store"
)

var testDBSeq atomic.Int64

type testEnv struct {
	router   *gin.Engine
	store    store.Store
	uploader *blob.MemoryUploader
}

// newTestEnv builds a full router over an in-memory sqlite database with the
// inline report renderer and an in-memory blob store. The rate limit is set
// high enough to be invisible to tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Account{}, &model.Order{}, &model.Inspection{}))

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 10000
	cfg.Server.RateLimitBurst = 10000
	cfg.Server.CacheTTLSeconds = 60
	cfg.Session.CookieName = "inspection_session"
	cfg.Session.TTL = time.Hour

	appStore := store.NewGormStore(db)
	sessions := session.NewManager(cfg.Session.TTL)
	uploader := blob.NewMemoryUploader()
	exporter := report.NewExporter(appStore, report.InlineRenderer{})

	return &testEnv{
		router:   NewRouter(appStore, sessions, uploader, exporter, cfg),
		store:    appStore,
		uploader: uploader,
	}
}

// doJSON performs a JSON request, attaching the given session cookies.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signUpAndIn registers the user and returns the session cookies.
func (e *testEnv) signUpAndIn(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/api/auth/signup", gin.H{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.doJSON(t, http.MethodPost, "/api/auth/signin", gin.H{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "signin must set a session cookie")
	return cookies
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func jsonUnmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func orderPath(id int64) string {
	return fmt.Sprintf("/api/orders/%d", id)
}
