package handlers

import (
	"net/http"
	"sort"
	"time"

	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CashHandler - the store's cash drawer and the settlement flow: the
// shopkeeper files a handover of cash to the owner (cash leaves the
// drawer immediately, entry goes Pending), then the owner confirms
// (Received) or rejects it (Not Received, cash returns to the drawer).
type CashHandler struct {
	db *gorm.DB
}

func NewCashHandler(db *gorm.DB) *CashHandler {
	return &CashHandler{db: db}
}

// Summary returns available cash plus the settlement entries of the
// last 30 days, newest first.
func (h *CashHandler) Summary(c *gin.Context) {
	var ledger models.CashLedger
	err := h.db.First(&ledger).Error
	if err == gorm.ErrRecordNotFound {
		// No sales yet
		respondOK(c, "Cash summary fetched", gin.H{
			"available_cash": 0,
			"settlements":    []models.CashSettlement{},
		})
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch cash record")
		return
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	var settlements []models.CashSettlement
	err = h.db.Where("cash_ledger_id = ? AND collected_at >= ?", ledger.ID, thirtyDaysAgo).
		Find(&settlements).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch settlement history")
		return
	}
	sort.Slice(settlements, func(i, j int) bool {
		return settlements[i].CollectedAt.After(settlements[j].CollectedAt)
	})

	respondOK(c, "Cash summary fetched", gin.H{
		"available_cash": ledger.AvailableCash,
		"settlements":    settlements,
	})
}

type FileSettlementRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Date   string  `json:"date" binding:"required"`
}

func (h *CashHandler) FileSettlement(c *gin.Context) {
	var input FileSettlementRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Amount and date are required")
		return
	}
	if input.Amount <= 0 {
		respondError(c, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}

	collectedAt, err := parseDate(input.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Date must be YYYY-MM-DD or RFC3339")
		return
	}

	tx := h.db.Begin()

	ledger, err := lockLedger(tx)
	if err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to load cash ledger")
		return
	}
	if ledger.AvailableCash < input.Amount {
		tx.Rollback()
		respondError(c, http.StatusBadRequest, "Insufficient available cash")
		return
	}

	ledger.AvailableCash -= input.Amount
	if err := tx.Save(ledger).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update cash ledger")
		return
	}

	settlement := models.CashSettlement{
		CashLedgerID: ledger.ID,
		Amount:       input.Amount,
		CollectedAt:  collectedAt,
		Status:       models.SettlementPending,
	}
	if err := tx.Create(&settlement).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to create settlement entry")
		return
	}

	tx.Commit()
	respondOK(c, "Cash settlement request created (Pending)", gin.H{
		"settlement":     settlement,
		"available_cash": ledger.AvailableCash,
	})
}

type ResolveSettlementRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

func (h *CashHandler) ResolveSettlement(c *gin.Context) {
	var input ResolveSettlementRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "ID and status are required")
		return
	}
	if input.Status != models.SettlementReceived && input.Status != models.SettlementNotReceived {
		respondError(c, http.StatusBadRequest, "Status must be Received or Not Received")
		return
	}

	tx := h.db.Begin()

	ledger, err := lockLedger(tx)
	if err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to load cash ledger")
		return
	}

	var settlement models.CashSettlement
	if err := tx.Where("id = ? AND cash_ledger_id = ?", input.ID, ledger.ID).First(&settlement).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusNotFound, "Cash entry not found")
		return
	}
	if settlement.Status != models.SettlementPending {
		tx.Rollback()
		respondError(c, http.StatusConflict, "Cash entry is already resolved")
		return
	}

	settlement.Status = input.Status
	if err := tx.Save(&settlement).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to update cash entry")
		return
	}

	// Rejected handovers put the cash back in the drawer
	if input.Status == models.SettlementNotReceived {
		ledger.AvailableCash += settlement.Amount
		if err := tx.Save(ledger).Error; err != nil {
			tx.Rollback()
			respondError(c, http.StatusInternalServerError, "Failed to update cash ledger")
			return
		}
	}

	tx.Commit()
	respondOK(c, "Cash entry status updated to "+input.Status, gin.H{
		"settlement":     settlement,
		"available_cash": ledger.AvailableCash,
	})
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
