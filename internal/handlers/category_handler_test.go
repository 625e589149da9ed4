package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
)

func newCategoryRouter(t *testing.T, h *CategoryHandler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/categories", h.Create)
	r.GET("/categories", h.List)
	r.PUT("/categories/:id", h.Update)
	r.DELETE("/categories/:id", h.Delete)
	return r
}

func TestCategoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	r := newCategoryRouter(t, NewCategoryHandler(db))

	w := doJSON(t, r, http.MethodPost, "/categories", `{"title": "Grains", "image_url": "http://img/grains.png"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d", w.Code)
	}

	var category models.Category
	if err := db.First(&category).Error; err != nil {
		t.Fatalf("load category: %v", err)
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", category.ID), `{"title": "Grains & Pulses"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d", w.Code)
	}
	db.First(&category, category.ID)
	if category.Title != "Grains & Pulses" {
		t.Fatalf("title not updated: %q", category.Title)
	}

	if w := doJSON(t, r, http.MethodPost, "/categories", `{"image_url": "x"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing title: expected 400, got %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", category.ID), ""); w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/categories/999", ""); w.Code != http.StatusNotFound {
		t.Fatalf("delete missing: expected 404 got %d", w.Code)
	}
}
