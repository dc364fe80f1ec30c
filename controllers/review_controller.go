package controllers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"rentrate/config"
	"rentrate/models"
	"rentrate/services"
)

const (
	maxPhotosPerReview = 5
	maxRequestBytes    = 16 << 20 // request size cap, uploads included
)

type ReviewController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewReviewController(db *gorm.DB, redisCli *redis.Client) ReviewController {
	return ReviewController{DB: db, Redis: redisCli}
}

type PhotoResponse struct {
	ID       uint   `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type ReviewResponse struct {
	ID             uint              `json:"id"`
	PropertyID     uint              `json:"property_id"`
	Property       *PropertyResponse `json:"property"`
	UserID         *uint             `json:"user_id,omitempty"`
	ReviewerName   string            `json:"reviewer_name"`
	Rating         int               `json:"rating"`
	ReviewText     string            `json:"review_text"`
	LandlordName   string            `json:"landlord_name"`
	LandlordRating *int              `json:"landlord_rating"`
	Photos         []PhotoResponse   `json:"photos"`
	CreatedAt      time.Time         `json:"created_at"`
}

func toReviewResponse(review models.Review) ReviewResponse {
	photos := make([]PhotoResponse, 0, len(review.Photos))
	for _, photo := range review.Photos {
		photos = append(photos, PhotoResponse{
			ID:       photo.ID,
			Filename: photo.Filename,
			URL:      fmt.Sprintf("/api/photos/%d", photo.ID),
		})
	}

	var property *PropertyResponse
	if review.Property.ID != 0 {
		p := toPropertyResponse(review.Property)
		property = &p
	}

	return ReviewResponse{
		ID:             review.ID,
		PropertyID:     review.PropertyID,
		Property:       property,
		UserID:         review.UserID,
		ReviewerName:   review.ReviewerName,
		Rating:         review.Rating,
		ReviewText:     review.ReviewText,
		LandlordName:   review.LandlordName,
		LandlordRating: review.LandlordRating,
		Photos:         photos,
		CreatedAt:      review.CreatedAt,
	}
}

type reviewInput struct {
	Address        string `json:"address"`
	City           string `json:"city"`
	PropertyType   string `json:"property_type"`
	ReviewerName   string `json:"reviewer_name"`
	Rating         *int   `json:"rating"`
	ReviewText     string `json:"review_text"`
	LandlordName   string `json:"landlord_name"`
	LandlordRating *int   `json:"landlord_rating"`
}

// parsePropertyFilter validates the property_id query value. Anything
// non-numeric counts as no filter at all so it cannot mint cache keys the
// write-path invalidation never deletes.
func parsePropertyFilter(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (rc ReviewController) invalidateListCaches(propertyID uint) {
	_ = services.DeleteFromRedis(config.Ctx, rc.Redis,
		"reviews:all",
		fmt.Sprintf("reviews:property:%d", propertyID),
		"properties:all",
	)
}

// GetReviews godoc
// @Summary List reviews, newest first
// @Tags reviews
// @Produce json
// @Param property_id query int false "Filter by property"
// @Success 200 {array} ReviewResponse
// @Router /reviews [get]
func (rc ReviewController) GetReviews(c *gin.Context) {
	propertyID, filtered := parsePropertyFilter(c.DefaultQuery("property_id", ""))

	cacheKey := "reviews:all"
	if filtered {
		cacheKey = fmt.Sprintf("reviews:property:%d", propertyID)
	}

	var cached []ReviewResponse
	if err := services.GetFromRedis(config.Ctx, rc.Redis, cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	tx := rc.DB.Preload("Property").Preload("Photos").Order("created_at DESC, id DESC")
	if filtered {
		tx = tx.Where("property_id = ?", propertyID)
	}

	var reviews []models.Review
	if err := tx.Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, toReviewResponse(review))
	}

	if payload, err := json.Marshal(responses); err == nil {
		if err := services.SetToRedis(config.Ctx, rc.Redis, cacheKey, payload, time.Hour); err != nil {
			log.Printf("failed to cache %s: %v", cacheKey, err)
		}
	}

	c.JSON(http.StatusOK, responses)
}

func (rc ReviewController) parseCreateInput(c *gin.Context) (*reviewInput, []*multipart.FileHeader, bool) {
	var input reviewInput
	var photos []*multipart.FileHeader

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			if isBodyTooLarge(err) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request too large"})
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
			}
			return nil, nil, false
		}
		input.Address = c.PostForm("address")
		input.City = c.PostForm("city")
		input.PropertyType = c.PostForm("property_type")
		input.ReviewerName = c.PostForm("reviewer_name")
		input.ReviewText = c.PostForm("review_text")
		input.LandlordName = c.PostForm("landlord_name")

		if v := c.PostForm("rating"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be an integer between 1 and 5"})
				return nil, nil, false
			}
			input.Rating = &n
		}
		if v := c.PostForm("landlord_rating"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Landlord rating must be an integer between 1 and 5"})
				return nil, nil, false
			}
			input.LandlordRating = &n
		}
		photos = form.File["photos"]
	} else {
		if err := c.ShouldBindJSON(&input); err != nil {
			if isBodyTooLarge(err) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request too large"})
				return nil, nil, false
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: rating fields must be integers"})
			return nil, nil, false
		}
	}

	return &input, photos, true
}

// isBodyTooLarge spots the MaxBytesReader limit error. The multipart reader
// does not always wrap it, so the message is matched as a fallback.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

// CreateReview godoc
// @Summary Create a review, anonymously or as the logged-in user
// @Description Accepts JSON, or multipart/form-data with up to 5 photos.
// @Tags reviews
// @Accept json
// @Accept mpfd
// @Produce json
// @Param input body reviewInput true "Review data"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} map[string]string
// @Router /reviews [post]
func (rc ReviewController) CreateReview(c *gin.Context) {
	if c.Request.ContentLength > maxRequestBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request too large"})
		return
	}
	// Chunked requests carry no Content-Length; cap those while reading.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	input, photos, ok := rc.parseCreateInput(c)
	if !ok {
		return
	}

	for field, value := range map[string]string{
		"address":       input.Address,
		"city":          input.City,
		"property_type": input.PropertyType,
	} {
		if strings.TrimSpace(value) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: " + field})
			return
		}
	}
	if input.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: rating"})
		return
	}
	if *input.Rating < 1 || *input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be an integer between 1 and 5"})
		return
	}
	if input.LandlordRating != nil && (*input.LandlordRating < 1 || *input.LandlordRating > 5) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Landlord rating must be an integer between 1 and 5"})
		return
	}
	if len(photos) > maxPhotosPerReview {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("A review can have at most %d photos", maxPhotosPerReview)})
		return
	}
	for _, fh := range photos {
		if !services.AllowedPhotoExtension(fh.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only png, jpg and jpeg files are allowed"})
			return
		}
	}

	property, err := rc.findOrCreateProperty(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve property"})
		return
	}

	reviewerName := strings.TrimSpace(input.ReviewerName)
	if reviewerName == "" {
		reviewerName = "Anonymous"
	}

	var userID *uint
	if v, exists := c.Get("currentUserID"); exists {
		id := v.(uint)
		userID = &id
	}

	review := models.Review{
		PropertyID:     property.ID,
		UserID:         userID,
		ReviewerName:   reviewerName,
		Rating:         *input.Rating,
		ReviewText:     input.ReviewText,
		LandlordName:   input.LandlordName,
		LandlordRating: input.LandlordRating,
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	for _, fh := range photos {
		filename, path, err := services.SavePhoto(fh, config.UploadDir())
		if err != nil {
			log.Printf("failed to store photo %s: %v", fh.Filename, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
			return
		}
		photo := models.Photo{ReviewID: review.ID, Filename: filename, Filepath: path}
		if err := rc.DB.Create(&photo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
			return
		}
		review.Photos = append(review.Photos, photo)
	}

	review.Property = *property
	rc.invalidateListCaches(property.ID)

	c.JSON(http.StatusCreated, toReviewResponse(review))
}

// findOrCreateProperty matches properties by exact address. A changed city on
// an existing property is treated as a correction and written through.
func (rc ReviewController) findOrCreateProperty(input *reviewInput) (*models.Property, error) {
	var property models.Property
	err := rc.DB.Where("address = ?", input.Address).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		property = models.Property{
			Address:      input.Address,
			City:         input.City,
			PropertyType: input.PropertyType,
		}
		if err := rc.DB.Create(&property).Error; err != nil {
			return nil, err
		}
		return &property, nil
	}
	if err != nil {
		return nil, err
	}

	if input.City != "" && property.City != input.City {
		property.City = input.City
		if err := rc.DB.Save(&property).Error; err != nil {
			return nil, err
		}
	}
	return &property, nil
}

// GetReview godoc
// @Summary Get one review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} ReviewResponse
// @Failure 404 {object} map[string]string
// @Router /reviews/{id} [get]
func (rc ReviewController) GetReview(c *gin.Context) {
	var review models.Review
	if err := rc.DB.Preload("Property").Preload("Photos").First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(review))
}

// loadOwnReview fetches a review and enforces that the caller owns it.
// Anonymous reviews have no owner, so nobody may modify them.
func (rc ReviewController) loadOwnReview(c *gin.Context) (*models.Review, bool) {
	var review models.Review
	if err := rc.DB.First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return nil, false
	}

	userID := c.MustGet("currentUserID").(uint)
	if review.UserID == nil || *review.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own reviews"})
		return nil, false
	}
	return &review, true
}

type reviewUpdateInput struct {
	Rating         *int    `json:"rating"`
	ReviewText     *string `json:"review_text"`
	LandlordName   *string `json:"landlord_name"`
	LandlordRating *int    `json:"landlord_rating"`
}

// UpdateReview godoc
// @Summary Update your own review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param input body reviewUpdateInput true "Fields to change"
// @Success 200 {object} ReviewResponse
// @Failure 403 {object} map[string]string
// @Router /reviews/{id} [put]
func (rc ReviewController) UpdateReview(c *gin.Context) {
	review, ok := rc.loadOwnReview(c)
	if !ok {
		return
	}

	var input reviewUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: rating fields must be integers"})
		return
	}

	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be an integer between 1 and 5"})
			return
		}
		review.Rating = *input.Rating
	}
	if input.ReviewText != nil {
		review.ReviewText = *input.ReviewText
	}
	if input.LandlordName != nil {
		review.LandlordName = *input.LandlordName
	}
	if input.LandlordRating != nil {
		if *input.LandlordRating < 1 || *input.LandlordRating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Landlord rating must be an integer between 1 and 5"})
			return
		}
		review.LandlordRating = input.LandlordRating
	}

	if err := rc.DB.Save(review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	if err := rc.DB.Preload("Property").Preload("Photos").First(review, review.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}
	rc.invalidateListCaches(review.PropertyID)

	c.JSON(http.StatusOK, toReviewResponse(*review))
}

// DeleteReview godoc
// @Summary Delete your own review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /reviews/{id} [delete]
func (rc ReviewController) DeleteReview(c *gin.Context) {
	review, ok := rc.loadOwnReview(c)
	if !ok {
		return
	}

	var photos []models.Photo
	rc.DB.Where("review_id = ?", review.ID).Find(&photos)
	for _, photo := range photos {
		if err := os.Remove(photo.Filepath); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove photo file %s: %v", photo.Filepath, err)
		}
	}

	if err := rc.DB.Where("review_id = ?", review.ID).Delete(&models.Photo{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	if err := rc.DB.Delete(review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	rc.invalidateListCaches(review.PropertyID)

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// MyReviews godoc
// @Summary Reviews written by the logged-in user, newest first
// @Tags reviews
// @Produce json
// @Success 200 {array} ReviewResponse
// @Failure 401 {object} map[string]string
// @Router /my-reviews [get]
func (rc ReviewController) MyReviews(c *gin.Context) {
	userID := c.MustGet("currentUserID").(uint)

	var reviews []models.Review
	err := rc.DB.Preload("Property").Preload("Photos").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, toReviewResponse(review))
	}
	c.JSON(http.StatusOK, responses)
}
