package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentrate/models"
)

type PhotoController struct {
	DB *gorm.DB
}

func NewPhotoController(db *gorm.DB) PhotoController {
	return PhotoController{DB: db}
}

// GetPhoto godoc
// @Summary Fetch a review photo as a binary image
// @Tags photos
// @Produce png
// @Produce jpeg
// @Param id path int true "Photo ID"
// @Failure 404 {object} map[string]string
// @Router /photos/{id} [get]
func (p PhotoController) GetPhoto(c *gin.Context) {
	var photo models.Photo
	if err := p.DB.First(&photo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	if _, err := os.Stat(photo.Filepath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo file missing"})
		return
	}

	c.File(photo.Filepath)
}
