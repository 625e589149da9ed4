package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"wholesale-pos/internal/models"
)

func TestCheckoutRejectsEmptyCartAndBadInput(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, 1, "shopkeeper")

	// Missing customer name
	w := doJSON(t, r, http.MethodPost, "/checkout", `{"payment_method": "cash"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing name: expected 400, got %d", w.Code)
	}

	// Empty cart
	w = doJSON(t, r, http.MethodPost, "/checkout", `{"customer_name": "Ali"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty cart: expected 400, got %d", w.Code)
	}

	// Nothing may have been written
	var sales int64
	db.Model(&models.SaleTransaction{}).Count(&sales)
	if sales != 0 {
		t.Fatalf("no sale should exist, got %d", sales)
	}
	var ledgers int64
	db.Model(&models.CashLedger{}).Count(&ledgers)
	if ledgers != 0 {
		t.Fatalf("no ledger row should exist, got %d", ledgers)
	}
}

func TestCheckoutCreatesSaleUpdatesCashAndClearsCart(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, 1, "shopkeeper")
	a := seedProduct(t, db, "Flour 10kg", "FL-10", 5, 100)
	b := seedProduct(t, db, "Sugar 5kg", "SU-5", 5, 60)

	doJSON(t, r, http.MethodPost, "/cart/add", fmt.Sprintf(`{"product_id": %d}`, a.ID))
	doJSON(t, r, http.MethodPut, "/cart/increment", fmt.Sprintf(`{"product_id": %d}`, a.ID))
	doJSON(t, r, http.MethodPost, "/cart/add", fmt.Sprintf(`{"product_id": %d}`, b.ID))

	w := doJSON(t, r, http.MethodPost, "/checkout", `{"customer_name": "Ali", "customer_phone": "0301", "payment_method": "cash"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("checkout: expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	var sale models.SaleTransaction
	if err := db.Preload("Items").First(&sale).Error; err != nil {
		t.Fatalf("load sale: %v", err)
	}
	if sale.CustomerName != "Ali" || sale.PaymentMethod != "cash" {
		t.Fatalf("unexpected sale header: %+v", sale)
	}
	if sale.NetAmount != 260 { // 2*100 + 1*60
		t.Fatalf("expected net 260, got %v", sale.NetAmount)
	}
	if len(sale.Items) != 2 {
		t.Fatalf("expected 2 sale items, got %d", len(sale.Items))
	}

	var ledger models.CashLedger
	if err := db.First(&ledger).Error; err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if ledger.AvailableCash != 260 {
		t.Fatalf("expected available cash 260, got %v", ledger.AvailableCash)
	}

	var lines int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&lines)
	if lines != 0 {
		t.Fatalf("cart should be empty after checkout, got %d lines", lines)
	}

	// Checkout does not touch stock again; the cart already holds it
	if productStock(t, db, a.ID) != 3 || productStock(t, db, b.ID) != 4 {
		t.Fatalf("unexpected stock after checkout: %d/%d", productStock(t, db, a.ID), productStock(t, db, b.ID))
	}
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, 1, "shopkeeper")
	p := seedProduct(t, db, "Flour 10kg", "FL-10", 5, 100)
	doJSON(t, r, http.MethodPost, "/cart/add", fmt.Sprintf(`{"product_id": %d}`, p.ID))

	w := doJSON(t, r, http.MethodPost, "/checkout", `{"customer_name": "Ali", "payment_method": "crypto"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
