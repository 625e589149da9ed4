package handlers

import (
	"net/http"

	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CheckoutHandler turns the shopkeeper's cart into an immutable
// SaleTransaction. Sale record, cash increment and cart clearing are
// one transaction: either the sale fully happens or nothing changes.
type CheckoutHandler struct {
	db *gorm.DB
}

func NewCheckoutHandler(db *gorm.DB) *CheckoutHandler {
	return &CheckoutHandler{db: db}
}

type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	PaymentMethod string `json:"payment_method"`
}

var paymentMethods = map[string]bool{
	"cash": true, "card": true, "easypaisa": true, "jazzcash": true,
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var input CheckoutRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Customer name is required")
		return
	}

	method := input.PaymentMethod
	if method == "" {
		method = "cash"
	}
	if !paymentMethods[method] {
		respondError(c, http.StatusBadRequest, "Unknown payment method")
		return
	}

	userID := c.MustGet("userID").(uint)

	var cart []models.CartItem
	if err := h.db.Where("user_id = ?", userID).Order("id").Find(&cart).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	if len(cart) == 0 {
		respondError(c, http.StatusBadRequest, "Cart is empty")
		return
	}

	// Stock was already deducted when the items entered the cart, so
	// checkout only snapshots lines, counts cash and clears the cart.
	var netAmount float64
	var items []models.SaleItem
	for _, line := range cart {
		total := line.Price * float64(line.Quantity)
		netAmount += total
		items = append(items, models.SaleItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Total:     total,
		})
	}

	tx := h.db.Begin()

	sale := models.SaleTransaction{
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Items:         items,
		NetAmount:     netAmount,
		PaymentMethod: method,
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to create sale record")
		return
	}

	ledger, err := lockLedger(tx)
	if err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to load cash ledger")
		return
	}
	ledger.AvailableCash += netAmount
	if err := tx.Save(ledger).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update cash ledger")
		return
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	tx.Commit()

	respondOK(c, "Sale recorded, cash updated and cart emptied successfully", gin.H{
		"sale":           sale,
		"available_cash": ledger.AvailableCash,
	})
}

// lockLedger fetches the singleton cash ledger row FOR UPDATE, creating
// it on first use.
func lockLedger(tx *gorm.DB) (*models.CashLedger, error) {
	var ledger models.CashLedger
	err := forUpdate(tx).First(&ledger).Error
	if err == gorm.ErrRecordNotFound {
		ledger = models.CashLedger{AvailableCash: 0}
		if err := tx.Create(&ledger).Error; err != nil {
			return nil, err
		}
		return &ledger, nil
	}
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}
