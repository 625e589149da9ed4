package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"wholesale-pos/internal/codes"
	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProductHandler - product catalog CRUD plus SKU scan and image upload.
type ProductHandler struct {
	db        *gorm.DB
	uploadDir string
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db, uploadDir: "./uploads"}
}

func baseURL() string {
	if url := os.Getenv("BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	SKU           string  `json:"sku" binding:"required"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	Brand         string  `json:"brand"`
	PurchasePrice float64 `json:"purchase_price"`
	SellingPrice  float64 `json:"selling_price"`
	Stock         int     `json:"stock"`
	MinStock      int     `json:"min_stock"`
	Discount      float64 `json:"discount"`
	OwnerNotes    string  `json:"owner_notes"`
	ImageURL      string  `json:"image_url"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input ProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Name, SKU and category are required")
		return
	}
	if input.Stock < 0 || input.Discount < 0 || input.Discount > 100 {
		respondError(c, http.StatusBadRequest, "Stock must be >= 0 and discount between 0 and 100")
		return
	}

	// SKU must be unique
	var existing models.Product
	if err := h.db.Where("sku = ?", input.SKU).First(&existing).Error; err == nil {
		respondError(c, http.StatusBadRequest, "SKU already exists")
		return
	}

	var category models.Category
	if err := h.db.First(&category, input.CategoryID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	// Shelf-tag label images for the new SKU
	barcodeFile, qrFile, err := codes.GenerateForSKU(input.SKU, h.uploadDir)
	if err != nil {
		// The product is still usable without labels; log and move on
		log.Println("Failed to generate label images:", err)
	}

	product := models.Product{
		Name:          input.Name,
		SKU:           input.SKU,
		CategoryID:    input.CategoryID,
		Brand:         input.Brand,
		PurchasePrice: input.PurchasePrice,
		SellingPrice:  input.SellingPrice,
		Stock:         input.Stock,
		MinStock:      input.MinStock,
		Discount:      input.Discount,
		OwnerNotes:    input.OwnerNotes,
		ImageURL:      input.ImageURL,
	}
	if barcodeFile != "" {
		product.BarcodeURL = baseURL() + "/uploads/" + barcodeFile
	}
	if qrFile != "" {
		product.QRCodeURL = baseURL() + "/uploads/" + qrFile
	}

	if err := h.db.Create(&product).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	respond(c, http.StatusCreated, "Product added successfully", gin.H{"product": product})
}

func (h *ProductHandler) List(c *gin.Context) {
	var products []models.Product
	if err := h.db.Preload("Category").Find(&products).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	respondOK(c, "Products fetched", gin.H{"products": products})
}

func (h *ProductHandler) Get(c *gin.Context) {
	var product models.Product
	if err := h.db.Preload("Category").First(&product, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	respondOK(c, "Product fetched", gin.H{"product": product})
}

// Scan looks a product up by SKU, used by the barcode scanner flow.
func (h *ProductHandler) Scan(c *gin.Context) {
	var product models.Product
	if err := h.db.Preload("Category").Where("sku = ?", c.Param("sku")).First(&product).Error; err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	respondOK(c, "Product fetched", gin.H{"product": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	// Partial update: only the fields that were sent change
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	// Stock and SKU move through their own flows, never a blind update
	delete(updateData, "stock")
	delete(updateData, "sku")
	delete(updateData, "id")

	if err := h.db.Model(&product).Updates(updateData).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	respondOK(c, "Product updated successfully", gin.H{"product": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Product{}, c.Param("id"))
	if result.Error != nil {
		respondError(c, http.StatusBadRequest, "Could not delete product. It might be linked to past sales.")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	respondOK(c, "Product deleted successfully", nil)
}

// Upload stores a product photo under ./uploads and returns its URL.
func (h *ProductHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	// Unique filename, e.g. "167890123_flour-bag.jpg"
	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), file.Filename)
	if err := c.SaveUploadedFile(file, h.uploadDir+"/"+filename); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save file")
		return
	}

	respondOK(c, "File uploaded successfully", gin.H{"url": baseURL() + "/uploads/" + filename})
}
