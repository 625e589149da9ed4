package handlers

import (
	"net/http"
	"time"

	"wholesale-pos/internal/database"
	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler - owner-side analytics over sales and inventory.
type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

// MostSoldProduct is one row of the best-seller list
type MostSoldProduct struct {
	ProductID    uint   `json:"product_id"`
	Name         string `json:"name"`
	QuantitySold int    `json:"quantity_sold"`
}

// SalesSummary returns net totals for today, this week (Monday start)
// and this month, plus the all-time best sellers and recent sales.
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Week starts on Monday
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := todayStart.AddDate(0, 0, -(weekday - 1))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := database.SalesInRange(h.db, todayStart, now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to calculate today's sales")
		return
	}
	week, err := database.SalesInRange(h.db, weekStart, now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to calculate weekly sales")
		return
	}
	month, err := database.SalesInRange(h.db, monthStart, now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to calculate monthly sales")
		return
	}

	var mostSold []MostSoldProduct
	err = h.db.Model(&models.SaleItem{}).
		Select("product_id, name, SUM(quantity) as quantity_sold").
		Group("product_id, name").
		Order("quantity_sold desc").
		Scan(&mostSold).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch most sold products")
		return
	}

	var recent []models.SaleTransaction
	err = h.db.Preload("Items").Order("created_at desc").Limit(10).Find(&recent).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch recent sales")
		return
	}

	respondOK(c, "Sales summary fetched", gin.H{
		"today_sales":        today.TotalRevenue,
		"weekly_sales":       week.TotalRevenue,
		"monthly_sales":      month.TotalRevenue,
		"total_orders":       month.TotalCount,
		"most_sold_products": mostSold,
		"recent_sales":       recent,
	})
}

// ValuationItem represents a single row in the valuation table
type ValuationItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	CostPrice float64 `json:"cost_price"`
	TotalCost float64 `json:"total_cost"`
}

// CategoryGroup is one category's worth of inventory value
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
}

// StockValuation totals the purchase-price value of everything on hand,
// grouped by category.
func (h *ReportHandler) StockValuation(c *gin.Context) {
	var products []models.Product
	if err := h.db.Preload("Category").Find(&products).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch inventory")
		return
	}

	var grandTotal float64
	groupedMap := make(map[string]*CategoryGroup)

	for _, p := range products {
		catName := p.Category.Title
		if catName == "" {
			catName = "Uncategorized"
		}

		if _, exists := groupedMap[catName]; !exists {
			groupedMap[catName] = &CategoryGroup{CategoryName: catName}
		}

		itemTotal := float64(p.Stock) * p.PurchasePrice
		groupedMap[catName].Items = append(groupedMap[catName].Items, ValuationItem{
			Name:      p.Name,
			Quantity:  p.Stock,
			CostPrice: p.PurchasePrice,
			TotalCost: itemTotal,
		})
		groupedMap[catName].Subtotal += itemTotal
		grandTotal += itemTotal
	}

	categories := make([]CategoryGroup, 0, len(groupedMap))
	for _, group := range groupedMap {
		categories = append(categories, *group)
	}

	respondOK(c, "Stock valuation fetched", gin.H{
		"categories":  categories,
		"grand_total": grandTotal,
	})
}
