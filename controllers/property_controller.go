package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"rentrate/config"
	"rentrate/models"
	"rentrate/services"
)

type PropertyController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewPropertyController(db *gorm.DB, redisCli *redis.Client) PropertyController {
	return PropertyController{DB: db, Redis: redisCli}
}

type PropertyResponse struct {
	ID           uint      `json:"id"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	PropertyType string    `json:"property_type"`
	CreatedAt    time.Time `json:"created_at"`
}

type PropertySummary struct {
	PropertyResponse
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

type PropertyDetail struct {
	PropertySummary
	Reviews []ReviewResponse `json:"reviews"`
}

func toPropertyResponse(property models.Property) PropertyResponse {
	return PropertyResponse{
		ID:           property.ID,
		Address:      property.Address,
		City:         property.City,
		PropertyType: property.PropertyType,
		CreatedAt:    property.CreatedAt,
	}
}

type reviewAggregate struct {
	PropertyID    uint
	ReviewCount   int64
	AverageRating float64
}

// reviewAggregates returns review count and average rating per property in
// one grouped query instead of per-row lookups.
func (pc PropertyController) reviewAggregates(propertyIDs ...uint) (map[uint]reviewAggregate, error) {
	tx := pc.DB.Model(&models.Review{}).
		Select("property_id, COUNT(*) AS review_count, AVG(rating) AS average_rating").
		Group("property_id")
	if len(propertyIDs) > 0 {
		tx = tx.Where("property_id IN ?", propertyIDs)
	}

	var rows []reviewAggregate
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	aggregates := make(map[uint]reviewAggregate, len(rows))
	for _, row := range rows {
		aggregates[row.PropertyID] = row
	}
	return aggregates, nil
}

// GetProperties godoc
// @Summary List properties with review count and average rating
// @Tags properties
// @Produce json
// @Success 200 {array} PropertySummary
// @Router /properties [get]
func (pc PropertyController) GetProperties(c *gin.Context) {
	cacheKey := "properties:all"

	var cached []PropertySummary
	if err := services.GetFromRedis(config.Ctx, pc.Redis, cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var properties []models.Property
	if err := pc.DB.Order("created_at DESC, id DESC").Find(&properties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties"})
		return
	}

	aggregates, err := pc.reviewAggregates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties"})
		return
	}

	summaries := make([]PropertySummary, 0, len(properties))
	for _, property := range properties {
		agg := aggregates[property.ID]
		summaries = append(summaries, PropertySummary{
			PropertyResponse: toPropertyResponse(property),
			ReviewCount:      agg.ReviewCount,
			AverageRating:    agg.AverageRating,
		})
	}

	if payload, err := json.Marshal(summaries); err == nil {
		if err := services.SetToRedis(config.Ctx, pc.Redis, cacheKey, payload, time.Hour); err != nil {
			log.Printf("failed to cache %s: %v", cacheKey, err)
		}
	}

	c.JSON(http.StatusOK, summaries)
}

// GetProperty godoc
// @Summary Get one property with its reviews
// @Tags properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} PropertyDetail
// @Failure 404 {object} map[string]string
// @Router /properties/{id} [get]
func (pc PropertyController) GetProperty(c *gin.Context) {
	var property models.Property
	if err := pc.DB.First(&property, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	var reviews []models.Review
	err := pc.DB.Preload("Photos").
		Where("property_id = ?", property.ID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}

	detail := PropertyDetail{
		PropertySummary: PropertySummary{PropertyResponse: toPropertyResponse(property)},
		Reviews:         make([]ReviewResponse, 0, len(reviews)),
	}
	for _, review := range reviews {
		review.Property = property
		detail.Reviews = append(detail.Reviews, toReviewResponse(review))
		detail.AverageRating += float64(review.Rating)
	}
	detail.ReviewCount = int64(len(reviews))
	if detail.ReviewCount > 0 {
		detail.AverageRating /= float64(detail.ReviewCount)
	}

	c.JSON(http.StatusOK, detail)
}
