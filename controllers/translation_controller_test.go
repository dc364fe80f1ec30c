package controllers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentrate/models"
	"rentrate/routes"
	"rentrate/services"
)

func TestTranslateValidation(t *testing.T) {
	_, router, _ := setupTest(t)

	t.Run("missing text", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/translate", gin.H{"target_lang": "de"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]string
		decodeBody(t, w, &body)
		assert.Equal(t, "Missing required field: text", body["error"])
	})

	t.Run("missing target language", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/translate", gin.H{"text": "Hello"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]string
		decodeBody(t, w, &body)
		assert.Equal(t, "Missing required field: target_lang", body["error"])
	})

	t.Run("whitespace-only text", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/translate", gin.H{"text": "   ", "target_lang": "de"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTranslateCachesExactTriples(t *testing.T) {
	db, router, provider := setupTest(t)

	body := gin.H{"text": "Hello world", "source_lang": "en", "target_lang": "de"}

	w := doJSON(t, router, http.MethodPost, "/api/translate", body)
	require.Equal(t, http.StatusOK, w.Code)

	var first map[string]interface{}
	decodeBody(t, w, &first)
	assert.Equal(t, "[de] Hello world", first["translated_text"])
	assert.Equal(t, false, first["from_cache"])
	assert.Equal(t, 1, provider.translateCalls)

	var count int64
	db.Model(&models.Translation{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// The identical triple must come from the cache, not the provider.
	w = doJSON(t, router, http.MethodPost, "/api/translate", body)
	require.Equal(t, http.StatusOK, w.Code)

	var second map[string]interface{}
	decodeBody(t, w, &second)
	assert.Equal(t, "[de] Hello world", second["translated_text"])
	assert.Equal(t, true, second["from_cache"])
	assert.Equal(t, 1, provider.translateCalls, "a cache hit must not reach the provider")

	// A different target is a different triple.
	w = doJSON(t, router, http.MethodPost, "/api/translate", gin.H{
		"text": "Hello world", "source_lang": "en", "target_lang": "fr",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, provider.translateCalls)
}

func TestTranslateDetectsMissingSource(t *testing.T) {
	_, router, provider := setupTest(t)
	provider.detectFn = func(text string) (string, float64, error) {
		return "es", 0.91, nil
	}

	w := doJSON(t, router, http.MethodPost, "/api/translate", gin.H{
		"text": "Hola mundo", "target_lang": "en",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, "es", resp["source_lang"])
	assert.Equal(t, 1, provider.detectCalls)
	assert.Equal(t, 1, provider.translateCalls)
}

func TestTranslateSameLanguageEchoes(t *testing.T) {
	db, router, provider := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/translate", gin.H{
		"text": "Hello", "source_lang": "en", "target_lang": "en",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, "Hello", resp["translated_text"])
	assert.Equal(t, false, resp["from_cache"])
	assert.Zero(t, provider.translateCalls, "same-language requests must not call the provider")

	var count int64
	db.Model(&models.Translation{}).Count(&count)
	assert.Zero(t, count, "same-language requests must not be cached")
}

func TestTranslateProviderErrors(t *testing.T) {
	_, router, provider := setupTest(t)

	t.Run("detection failure", func(t *testing.T) {
		provider.detectFn = func(text string) (string, float64, error) {
			return "", 0, services.ErrNoDetection
		}
		w := doJSON(t, router, http.MethodPost, "/api/translate", gin.H{
			"text": "zzzz", "target_lang": "en",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]string
		decodeBody(t, w, &body)
		assert.Equal(t, "Could not detect source language", body["error"])
	})

	t.Run("provider failure", func(t *testing.T) {
		provider.translateFn = func(text, source, target string) (string, error) {
			return "", errors.New("upstream exploded")
		}
		w := doJSON(t, router, http.MethodPost, "/api/translate", gin.H{
			"text": "Hello", "source_lang": "en", "target_lang": "de",
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]string
		decodeBody(t, w, &body)
		assert.Contains(t, body["error"], "Translation service error")
	})
}

func TestTranslateUnconfiguredProvider(t *testing.T) {
	db, _, _ := setupTest(t)

	// A client with no base URL mirrors a deployment without the provider.
	router := gin.New()
	routes.SetupRoutes(router, db, nil, services.NewLibreTranslateClient("", ""))

	w := doJSON(t, router, http.MethodPost, "/api/translate", gin.H{
		"text": "Hello", "source_lang": "en", "target_lang": "de",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "Translation service is not configured", body["error"])
}

func TestDetectLanguage(t *testing.T) {
	_, router, provider := setupTest(t)

	t.Run("missing text", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/detect-language", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("detects", func(t *testing.T) {
		provider.detectFn = func(text string) (string, float64, error) {
			return "fr", 0.87, nil
		}
		w := doJSON(t, router, http.MethodPost, "/api/detect-language", gin.H{"text": "Bonjour"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		decodeBody(t, w, &resp)
		assert.Equal(t, "fr", resp["detected_language"])
		assert.InDelta(t, 0.87, resp["confidence"].(float64), 0.001)
	})
}
