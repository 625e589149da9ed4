package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wholesale-pos/internal/auth"

	"github.com/gin-gonic/gin"
)

func protectedRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", AuthMiddleware())
	if role != "" {
		group.Use(RequireRole(role))
	}
	group.GET("/ping", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := protectedRouter("")

	if w := request(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", w.Code)
	}
	if w := request(r, "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", w.Code)
	}

	token, err := auth.GenerateToken(7, "owner")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if w := request(r, token); w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter("owner")

	shopToken, _ := auth.GenerateToken(2, "shopkeeper")
	if w := request(r, shopToken); w.Code != http.StatusForbidden {
		t.Fatalf("wrong role: expected 403, got %d", w.Code)
	}

	ownerToken, _ := auth.GenerateToken(1, "owner")
	if w := request(r, ownerToken); w.Code != http.StatusOK {
		t.Fatalf("right role: expected 200, got %d", w.Code)
	}
}
