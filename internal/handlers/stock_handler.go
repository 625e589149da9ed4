package handlers

import (
	"fmt"
	"net/http"

	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StockHandler - stock intake batches and the receipt workflow. The
// owner files a batch of expected deliveries; the shopkeeper resolves
// each line to received (stock goes up by the expected quantity) or
// not received. Single-item and whole-batch paths share one transition
// function, and the aggregate status is always recomputed afterwards
// by models.BatchStatusOf.
//
// Each receipt runs in a transaction with the batch row locked, so two
// concurrent receipts on the same batch serialize instead of clobbering
// each other's aggregate status.
type StockHandler struct {
	db *gorm.DB
}

func NewStockHandler(db *gorm.DB) *StockHandler {
	return &StockHandler{db: db}
}

// Decisions a receiver can make for a line item
const (
	DecisionReceived    = "Received"
	DecisionNotReceived = "NotReceived"
)

type StockBatchRequest struct {
	Items []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required"`
	} `json:"items" binding:"required"`
}

func (h *StockHandler) Create(c *gin.Context) {
	var input StockBatchRequest
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Items) == 0 {
		respondError(c, http.StatusBadRequest, "At least one stock item is required")
		return
	}

	batch := models.StockBatch{Status: models.BatchStatusPending}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			respondError(c, http.StatusBadRequest, "Quantity must be greater than zero")
			return
		}
		var product models.Product
		if err := h.db.First(&product, item.ProductID).Error; err != nil {
			respondError(c, http.StatusNotFound, fmt.Sprintf("Invalid product id: %d", item.ProductID))
			return
		}
		batch.Items = append(batch.Items, models.StockBatchItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Status:    models.ItemStatusPending,
		})
	}

	if err := h.db.Create(&batch).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create stock batch")
		return
	}

	respond(c, http.StatusCreated, "Stock batch created successfully", gin.H{"stock": batch})
}

func (h *StockHandler) List(c *gin.Context) {
	var batches []models.StockBatch
	err := h.db.Preload("Items").Preload("Items.Product").
		Order("created_at desc").Find(&batches).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch stock batches")
		return
	}

	respondOK(c, "Stock batches fetched", gin.H{"stocks": batches})
}

func (h *StockHandler) Get(c *gin.Context) {
	var batch models.StockBatch
	err := h.db.Preload("Items").Preload("Items.Product").
		First(&batch, c.Param("id")).Error
	if err != nil {
		respondError(c, http.StatusNotFound, "No stock batch found with this id")
		return
	}

	respondOK(c, "Stock batch fetched", gin.H{"stock": batch})
}

type ReceiveItemRequest struct {
	StockID   uint   `json:"stock_id" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
	Decision  string `json:"decision" binding:"required"`
}

// ReceiveItem resolves a single pending line of a batch.
func (h *StockHandler) ReceiveItem(c *gin.Context) {
	var input ReceiveItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "stock_id, product_id and decision are required")
		return
	}
	if input.Decision != DecisionReceived && input.Decision != DecisionNotReceived {
		respondError(c, http.StatusBadRequest, "Decision must be Received or NotReceived")
		return
	}

	tx := h.db.Begin()

	batch, err := lockBatch(tx, input.StockID)
	if err != nil {
		tx.Rollback()
		respondError(c, http.StatusNotFound, "No stock batch found with this id")
		return
	}

	idx := -1
	for i := range batch.Items {
		if batch.Items[i].ProductID == input.ProductID {
			idx = i
			break
		}
	}
	if idx == -1 {
		tx.Rollback()
		respondError(c, http.StatusNotFound, "Product not found in this stock batch")
		return
	}
	if batch.Items[idx].Status != models.ItemStatusPending {
		tx.Rollback()
		respondError(c, http.StatusConflict, "Stock item is already resolved")
		return
	}

	if err := applyDecision(tx, &batch.Items[idx], input.Decision); err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Product not found in database")
		} else {
			respondError(c, http.StatusInternalServerError, "Failed to update stock")
		}
		return
	}

	if err := saveBatchStatus(tx, batch); err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update stock batch")
		return
	}

	tx.Commit()
	h.respondBatch(c, batch.ID, "Stock status updated successfully")
}

// Verify receives every still-pending item of a batch.
func (h *StockHandler) Verify(c *gin.Context) {
	h.resolveBatch(c, DecisionReceived, "Stock batch verified successfully")
}

// Decline marks every still-pending item of a batch as not received.
func (h *StockHandler) Decline(c *gin.Context) {
	h.resolveBatch(c, DecisionNotReceived, "Stock batch declined successfully")
}

// resolveBatch is the batch-level convenience wrapper: it iterates the
// pending items and delegates to the exact same per-item transition as
// ReceiveItem, so the two paths cannot diverge. Already-resolved items
// are left untouched.
func (h *StockHandler) resolveBatch(c *gin.Context, decision, message string) {
	tx := h.db.Begin()

	batch, err := lockBatch(tx, c.Param("id"))
	if err != nil {
		tx.Rollback()
		respondError(c, http.StatusNotFound, "No stock batch found with this id")
		return
	}

	for i := range batch.Items {
		if batch.Items[i].Status != models.ItemStatusPending {
			continue
		}
		if err := applyDecision(tx, &batch.Items[i], decision); err != nil {
			if err == gorm.ErrRecordNotFound {
				// Product deleted since intake; leave the line pending
				continue
			}
			tx.Rollback()
			respondError(c, http.StatusInternalServerError, "Failed to update stock")
			return
		}
	}

	if err := saveBatchStatus(tx, batch); err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update stock batch")
		return
	}

	tx.Commit()
	h.respondBatch(c, batch.ID, message)
}

// applyDecision is the single state transition for a pending line item:
// Received bumps the product ledger by the expected quantity,
// NotReceived touches nothing but the item status.
func applyDecision(tx *gorm.DB, item *models.StockBatchItem, decision string) error {
	if decision == DecisionReceived {
		result := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock + ?", item.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		item.Status = models.ItemStatusReceived
	} else {
		item.Status = models.ItemStatusNotReceived
	}

	return tx.Model(&models.StockBatchItem{}).
		Where("id = ?", item.ID).
		Update("status", item.Status).Error
}

// lockBatch loads a batch and its items with the batch row locked FOR
// UPDATE. id can be a uint or a route param string.
func lockBatch(tx *gorm.DB, id interface{}) (*models.StockBatch, error) {
	var batch models.StockBatch
	err := forUpdate(tx).Preload("Items").
		First(&batch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// saveBatchStatus recomputes the aggregate from the current item states
// and persists it. Called after every item mutation, without exception.
func saveBatchStatus(tx *gorm.DB, batch *models.StockBatch) error {
	batch.Status = models.BatchStatusOf(batch.Items)
	return tx.Model(&models.StockBatch{}).
		Where("id = ?", batch.ID).
		Update("status", batch.Status).Error
}

func (h *StockHandler) respondBatch(c *gin.Context, id uint, message string) {
	var batch models.StockBatch
	err := h.db.Preload("Items").Preload("Items.Product").First(&batch, id).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch stock batch")
		return
	}
	respondOK(c, message, gin.H{"stock": batch})
}
