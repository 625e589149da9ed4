package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wholesale-pos/internal/database"
	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestRouter wires every protected route with a stub identity in
// place of the JWT middleware.
func newTestRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
	})

	cartH := NewCartHandler(db)
	checkoutH := NewCheckoutHandler(db)
	stockH := NewStockHandler(db)
	cashH := NewCashHandler(db)
	categoryH := NewCategoryHandler(db)
	reportH := NewReportHandler(db)

	r.POST("/cart/add", cartH.Add)
	r.PUT("/cart/increment", cartH.Increment)
	r.PUT("/cart/decrement", cartH.Decrement)
	r.DELETE("/cart/remove", cartH.Remove)
	r.GET("/cart", cartH.List)
	r.POST("/checkout", checkoutH.Checkout)
	r.POST("/stock", stockH.Create)
	r.GET("/stock", stockH.List)
	r.GET("/stock/:id", stockH.Get)
	r.PATCH("/stock/receive-item", stockH.ReceiveItem)
	r.PUT("/stock/verify/:id", stockH.Verify)
	r.PATCH("/stock/decline/:id", stockH.Decline)
	r.GET("/cash", cashH.Summary)
	r.POST("/cash/settlements", cashH.FileSettlement)
	r.POST("/cash/settlements/resolve", cashH.ResolveSettlement)
	r.POST("/categories", categoryH.Create)
	r.GET("/categories", categoryH.List)
	r.GET("/reports/sales", reportH.SalesSummary)
	r.GET("/reports/valuation", reportH.StockValuation)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return body
}

func seedProduct(t *testing.T, db *gorm.DB, name, sku string, stock int, price float64) models.Product {
	t.Helper()
	category := models.Category{Title: "General"}
	if err := db.FirstOrCreate(&category, models.Category{Title: "General"}).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	p := models.Product{
		Name:          name,
		SKU:           sku,
		CategoryID:    category.ID,
		PurchasePrice: price * 0.8,
		SellingPrice:  price,
		Stock:         stock,
		MinStock:      2,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return p.Stock
}
