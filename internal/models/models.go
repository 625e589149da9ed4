package models

import (
	"time"
)

// User - Owner or Shopkeeper of the store
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `json:"name"`
	Username     string     `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string     `json:"-"`    // Never return this in JSON
	Role         string     `json:"role"` // 'owner', 'shopkeeper'
	StoreName    string     `json:"store_name"`
	Cart         []CartItem `gorm:"foreignKey:UserID" json:"cart"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Category - Product grouping managed by the owner
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product - The Inventory. Stock is the authoritative on-hand quantity;
// it is mutated by cart operations, checkout and stock receipts.
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `json:"name"`
	SKU           string    `gorm:"uniqueIndex;size:64" json:"sku"`
	CategoryID    uint      `json:"category_id"`
	Category      Category  `json:"category"`
	Brand         string    `json:"brand"`
	PurchasePrice float64   `json:"purchase_price"`
	SellingPrice  float64   `json:"selling_price"`
	Stock         int       `json:"stock"`
	MinStock      int       `gorm:"default:10" json:"min_stock"`
	BarcodeURL    string    `json:"barcode_url"`
	QRCodeURL     string    `json:"qr_code_url"`
	ImageURL      string    `json:"image_url"`
	Discount      float64   `json:"discount"` // percent, 0-100
	OwnerNotes    string    `json:"owner_notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CartItem - One line of a shopkeeper's cart. Name and Price are a
// snapshot taken at add-time; Quantity units are already deducted
// from Product.Stock.
type CartItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"index" json:"user_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// StockBatch - One intake event of multiple products. Status is derived
// from the item statuses by BatchStatusOf and never set directly.
type StockBatch struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Items     []StockBatchItem `gorm:"foreignKey:StockBatchID" json:"items"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// StockBatchItem - Expected delivery of one product inside a batch
type StockBatchItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	StockBatchID uint    `gorm:"index" json:"stock_batch_id"`
	ProductID    uint    `json:"product_id"`
	Product      Product `json:"product"`
	Quantity     int     `json:"quantity"` // expected quantity
	Status       string  `json:"status"`   // pending / received / not_received
}

// SaleTransaction - The Checkout snapshot. Immutable once created.
type SaleTransaction struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Items         []SaleItem `gorm:"foreignKey:SaleTransactionID" json:"items"`
	NetAmount     float64    `json:"net_amount"`
	PaymentMethod string     `json:"payment_method"` // 'cash', 'card', 'easypaisa', 'jazzcash'
	CreatedAt     time.Time  `json:"created_at"`
}

// SaleItem - The specific items sold in a transaction
type SaleItem struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	SaleTransactionID uint    `gorm:"index" json:"sale_transaction_id"`
	ProductID         uint    `json:"product_id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"` // snapshot of selling price at sale time
	Quantity          int     `json:"quantity"`
	Total             float64 `json:"total"`
}

// CashLedger - Singleton row holding the cash currently in the drawer
type CashLedger struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	AvailableCash float64          `json:"available_cash"`
	Settlements   []CashSettlement `gorm:"foreignKey:CashLedgerID" json:"settlements"`
}

// CashSettlement - A shopkeeper-to-owner cash handover request.
// Pending until the owner confirms or rejects it; terminal after that.
type CashSettlement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CashLedgerID uint      `gorm:"index" json:"cash_ledger_id"`
	Amount       float64   `json:"amount"`
	CollectedAt  time.Time `json:"collected_at"`
	Status       string    `json:"status"` // 'Pending', 'Received', 'Not Received'
}
