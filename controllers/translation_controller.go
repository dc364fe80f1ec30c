package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentrate/models"
	"rentrate/services"
)

type TranslationController struct {
	DB       *gorm.DB
	Provider services.TranslationProvider
}

func NewTranslationController(db *gorm.DB, provider services.TranslationProvider) TranslationController {
	return TranslationController{DB: db, Provider: provider}
}

type TranslateInput struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	FromCache      bool   `json:"from_cache"`
}

func providerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProviderNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Translation service is not configured"})
	case errors.Is(err, services.ErrNoDetection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not detect source language"})
	default:
		log.Printf("translation provider error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Translation service error: " + err.Error()})
	}
}

// Translate godoc
// @Summary Translate text, with an exact-match cache in front of the provider
// @Description Identical (text, source, target) triples hit the cache and
// @Description never reach the provider twice. Omitted source_lang is detected.
// @Tags translation
// @Accept json
// @Produce json
// @Param input body TranslateInput true "Text and language pair"
// @Success 200 {object} TranslateResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /translate [post]
func (t TranslationController) Translate(c *gin.Context) {
	var input TranslateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(input.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: text"})
		return
	}
	if input.TargetLang == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: target_lang"})
		return
	}

	source := input.SourceLang
	if source == "" {
		detected, _, err := t.Provider.Detect(input.Text)
		if err != nil {
			providerError(c, err)
			return
		}
		source = detected
	}

	// Nothing to translate; do not cache and do not call the provider.
	if source == input.TargetLang {
		c.JSON(http.StatusOK, TranslateResponse{
			TranslatedText: input.Text,
			SourceLang:     source,
			TargetLang:     input.TargetLang,
			FromCache:      false,
		})
		return
	}

	var cached models.Translation
	err := t.DB.Where("original_text = ? AND source_lang = ? AND target_lang = ?",
		input.Text, source, input.TargetLang).First(&cached).Error
	if err == nil {
		c.JSON(http.StatusOK, TranslateResponse{
			TranslatedText: cached.TranslatedText,
			SourceLang:     source,
			TargetLang:     input.TargetLang,
			FromCache:      true,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query translation cache"})
		return
	}

	translated, err := t.Provider.Translate(input.Text, source, input.TargetLang)
	if err != nil {
		providerError(c, err)
		return
	}

	entry := models.Translation{
		OriginalText:   input.Text,
		SourceLang:     source,
		TargetLang:     input.TargetLang,
		TranslatedText: translated,
	}
	if err := t.DB.Create(&entry).Error; err != nil {
		// A failed cache write is not worth failing the request over.
		log.Printf("failed to cache translation: %v", err)
	}

	c.JSON(http.StatusOK, TranslateResponse{
		TranslatedText: translated,
		SourceLang:     source,
		TargetLang:     input.TargetLang,
		FromCache:      false,
	})
}

// DetectLanguage godoc
// @Summary Detect the language of a text
// @Tags translation
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /detect-language [post]
func (t TranslationController) DetectLanguage(c *gin.Context) {
	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(input.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: text"})
		return
	}

	lang, confidence, err := t.Provider.Detect(input.Text)
	if err != nil {
		providerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detected_language": lang,
		"confidence":        confidence,
	})
}
