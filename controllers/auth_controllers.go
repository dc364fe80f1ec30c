package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentrate/middleware"
	"rentrate/models"
	"rentrate/services"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) AuthController {
	return AuthController{DB: db}
}

type RegisterInput struct {
	Email         string `json:"email"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	TermsAccepted bool   `json:"terms_accepted"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.UTC().Format("2006-01-02T15:04:05"),
	}
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AuthCookieName, token, int(services.TokenLifetime.Seconds()), "/", "", false, true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AuthCookieName, "", -1, "/", "", false, true)
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param input body RegisterInput true "Registration data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /register [post]
func (a AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	if !services.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}
	if err := services.ValidatePassword(input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.TermsAccepted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must accept the terms and conditions"})
		return
	}

	var existing models.User
	if err := a.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := services.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user := models.User{
		Email:        input.Email,
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
	}
	if err := a.DB.Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := services.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	setAuthCookie(c, token)

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body LoginInput true "Credentials"
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string
// @Router /login [post]
func (a AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user models.User
	err := a.DB.Where("email = ?", strings.TrimSpace(strings.ToLower(input.Email))).First(&user).Error
	if err != nil || !services.CheckPassword(user.PasswordHash, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := services.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	setAuthCookie(c, token)

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (a AuthController) Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Profile godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /profile [get]
func (a AuthController) Profile(c *gin.Context) {
	userID := c.MustGet("currentUserID").(uint)

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var reviewCount int64
	a.DB.Model(&models.Review{}).Where("user_id = ?", user.ID).Count(&reviewCount)

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"username":     user.Username,
		"created_at":   user.CreatedAt.UTC().Format("2006-01-02T15:04:05"),
		"review_count": reviewCount,
	})
}

// DeleteProfile removes the caller's account. Their reviews go with it via
// the user_id cascade; photo files of those reviews are unlinked here first.
func (a AuthController) DeleteProfile(c *gin.Context) {
	userID := c.MustGet("currentUserID").(uint)

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var photos []models.Photo
	a.DB.Joins("JOIN reviews ON reviews.id = photos.review_id").
		Where("reviews.user_id = ?", userID).
		Find(&photos)
	for _, photo := range photos {
		if err := os.Remove(photo.Filepath); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove photo file %s: %v", photo.Filepath, err)
		}
	}

	if err := a.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
