package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

var (
	ErrProviderNotConfigured = errors.New("translation provider is not configured")
	ErrNoDetection           = errors.New("could not detect source language")
)

// TranslationProvider is the external collaborator behind /api/translate and
// /api/detect-language. The shipped implementation talks to a
// LibreTranslate-compatible API; which provider runs behind the URL is a
// deployment detail.
type TranslationProvider interface {
	Translate(text, sourceLang, targetLang string) (string, error)
	Detect(text string) (lang string, confidence float64, err error)
}

type LibreTranslateClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewLibreTranslateClient(baseURL, apiKey string) *LibreTranslateClient {
	return &LibreTranslateClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *LibreTranslateClient) post(path string, payload map[string]string) (io.ReadCloser, error) {
	if c.BaseURL == "" {
		return nil, ErrProviderNotConfigured
	}
	if c.APIKey != "" {
		payload["api_key"] = c.APIKey
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Post(c.BaseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("translation API returned status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

func (c *LibreTranslateClient) Translate(text, sourceLang, targetLang string) (string, error) {
	body, err := c.post("/translate", map[string]string{
		"q":      text,
		"source": sourceLang,
		"target": targetLang,
		"format": "text",
	})
	if err != nil {
		return "", err
	}
	defer body.Close()

	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return out.TranslatedText, nil
}

func (c *LibreTranslateClient) Detect(text string) (string, float64, error) {
	body, err := c.post("/detect", map[string]string{"q": text})
	if err != nil {
		return "", 0, err
	}
	defer body.Close()

	var out []struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		return "", 0, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(out) == 0 || out[0].Language == "" {
		return "", 0, ErrNoDetection
	}

	// The API reports confidence in percent.
	confidence := out[0].Confidence
	if confidence > 1 {
		confidence = confidence / 100
	}
	return out[0].Language, confidence, nil
}
