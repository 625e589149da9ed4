package handlers

import (
	"net/http"

	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler - owner-side CRUD for product categories.
type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

type CategoryRequest struct {
	Title    string `json:"title" binding:"required"`
	ImageURL string `json:"image_url"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input CategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Title is required")
		return
	}

	category := models.Category{Title: input.Title, ImageURL: input.ImageURL}
	if err := h.db.Create(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	respond(c, http.StatusCreated, "Category created successfully", gin.H{"category": category})
}

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Order("created_at desc").Find(&categories).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	respondOK(c, "Categories fetched", gin.H{"categories": categories})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var category models.Category
	if err := h.db.First(&category, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	var input CategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Title is required")
		return
	}

	category.Title = input.Title
	if input.ImageURL != "" {
		category.ImageURL = input.ImageURL
	}
	if err := h.db.Save(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	respondOK(c, "Category updated successfully", gin.H{"category": category})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Category{}, c.Param("id"))
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	respondOK(c, "Category deleted successfully", nil)
}
