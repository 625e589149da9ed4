package handlers

import (
	"net/http"

	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CartHandler - the shopkeeper's cart. Every unit in a cart line is a
// unit already deducted from Product.Stock, so each mutation moves
// stock and the line together inside one transaction. Stock deductions
// are conditional updates (stock >= n), so two concurrent adds can
// never oversell the last unit.
type CartHandler struct {
	db *gorm.DB
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

type CartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// takeStock atomically deducts qty units, failing if fewer are on hand.
func takeStock(tx *gorm.DB, productID uint, qty int) (bool, error) {
	result := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func returnStock(tx *gorm.DB, productID uint, qty int) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}

func (h *CartHandler) Add(c *gin.Context) {
	var input CartRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "product_id is required")
		return
	}
	userID := c.MustGet("userID").(uint)

	var product models.Product
	if err := h.db.First(&product, input.ProductID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	tx := h.db.Begin()

	ok, err := takeStock(tx, product.ID, 1)
	if err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update stock")
		return
	}
	if !ok {
		tx.Rollback()
		respondError(c, http.StatusBadRequest, "No more stock available for this product")
		return
	}

	var line models.CartItem
	err = tx.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&line).Error
	switch {
	case err == nil:
		line.Quantity++
		err = tx.Save(&line).Error
	case err == gorm.ErrRecordNotFound:
		// New line snapshots name and selling price at add-time
		line = models.CartItem{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  1,
			Name:      product.Name,
			Price:     product.SellingPrice,
		}
		err = tx.Create(&line).Error
	}
	if err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	tx.Commit()
	h.respondCart(c, userID, "Product added to cart successfully")
}

func (h *CartHandler) Increment(c *gin.Context) {
	var input CartRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "product_id is required")
		return
	}
	userID := c.MustGet("userID").(uint)

	tx := h.db.Begin()

	var line models.CartItem
	if err := tx.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&line).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusNotFound, "Product not found in cart")
		return
	}

	ok, err := takeStock(tx, input.ProductID, 1)
	if err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update stock")
		return
	}
	if !ok {
		tx.Rollback()
		respondError(c, http.StatusBadRequest, "No more stock available for this product")
		return
	}

	line.Quantity++
	if err := tx.Save(&line).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	tx.Commit()
	h.respondCart(c, userID, "Product quantity increased in cart")
}

func (h *CartHandler) Decrement(c *gin.Context) {
	var input CartRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "product_id is required")
		return
	}
	userID := c.MustGet("userID").(uint)

	tx := h.db.Begin()

	var line models.CartItem
	if err := tx.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&line).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusNotFound, "Product not found in cart")
		return
	}

	// Dropping to zero removes the line entirely
	var err error
	if line.Quantity == 1 {
		err = tx.Delete(&line).Error
	} else {
		line.Quantity--
		err = tx.Save(&line).Error
	}
	if err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	if err := returnStock(tx, input.ProductID, 1); err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update stock")
		return
	}

	tx.Commit()
	h.respondCart(c, userID, "Product quantity decreased in cart")
}

func (h *CartHandler) Remove(c *gin.Context) {
	var input CartRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "product_id is required")
		return
	}
	userID := c.MustGet("userID").(uint)

	tx := h.db.Begin()

	var line models.CartItem
	if err := tx.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&line).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusNotFound, "Product not found in cart")
		return
	}

	// The whole reserved quantity goes back on the shelf
	if err := returnStock(tx, line.ProductID, line.Quantity); err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to restore stock")
		return
	}

	if err := tx.Delete(&line).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	tx.Commit()
	h.respondCart(c, userID, "Product removed from cart successfully")
}

func (h *CartHandler) List(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	h.respondCart(c, userID, "Cart fetched")
}

func (h *CartHandler) respondCart(c *gin.Context, userID uint, message string) {
	var cart []models.CartItem
	if err := h.db.Where("user_id = ?", userID).Order("id").Find(&cart).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	respondOK(c, message, gin.H{"cart": cart})
}
