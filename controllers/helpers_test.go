package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentrate/models"
	"rentrate/routes"
)

var dbCounter int64

// fakeProvider counts provider invocations so tests can pin the
// exactly-once cache behavior.
type fakeProvider struct {
	translateCalls int
	detectCalls    int
	translateFn    func(text, source, target string) (string, error)
	detectFn       func(text string) (string, float64, error)
}

func (f *fakeProvider) Translate(text, source, target string) (string, error) {
	f.translateCalls++
	if f.translateFn != nil {
		return f.translateFn(text, source, target)
	}
	return "[" + target + "] " + text, nil
}

func (f *fakeProvider) Detect(text string) (string, float64, error) {
	f.detectCalls++
	if f.detectFn != nil {
		return f.detectFn(text)
	}
	return "en", 0.98, nil
}

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine, *fakeProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("UPLOAD_DIR", t.TempDir())

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=1", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// In-memory SQLite: every new connection would get a fresh database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Review{},
		&models.Photo{},
		&models.Translation{},
	))

	provider := &fakeProvider{}
	router := gin.New()
	routes.SetupRoutes(router, db, nil, provider)
	return db, router, provider
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func registerUser(t *testing.T, router *gin.Engine, email string) *http.Cookie {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/register", gin.H{
		"email":          email,
		"password":       "TestPass123",
		"terms_accepted": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("auth cookie not set on register")
	return nil
}

func newBearerRequest(t *testing.T, token string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req, httptest.NewRecorder()
}

func createReview(t *testing.T, router *gin.Engine, body gin.H, cookies ...*http.Cookie) map[string]interface{} {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/reviews", body, cookies...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var review map[string]interface{}
	decodeBody(t, w, &review)
	return review
}
