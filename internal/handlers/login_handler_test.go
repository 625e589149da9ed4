package handlers

import (
	"net/http"
	"testing"

	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		Name:         "Hamid",
		Username:     "hamid",
		PasswordHash: string(hash),
		Role:         "shopkeeper",
		StoreName:    "City Wholesale",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(db)
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)

	w := doJSON(t, r, http.MethodPost, "/login", `{"username": "hamid", "password": "secret123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["token"] == nil || body["role"] != "shopkeeper" {
		t.Fatalf("unexpected login payload: %v", body)
	}

	if w := doJSON(t, r, http.MethodPost, "/login", `{"username": "hamid", "password": "wrong"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/login", `{"username": "ghost", "password": "x"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: expected 401, got %d", w.Code)
	}

	// Register defaults an unknown role to owner
	w = doJSON(t, r, http.MethodPost, "/register", `{"name": "Owner", "username": "boss", "password": "pw", "role": "superuser"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var created models.User
	if err := db.Where("username = ?", "boss").First(&created).Error; err != nil {
		t.Fatalf("load registered user: %v", err)
	}
	if created.Role != "owner" {
		t.Fatalf("expected role owner, got %q", created.Role)
	}

	// Usernames are unique
	if w := doJSON(t, r, http.MethodPost, "/register", `{"name": "Dup", "username": "boss", "password": "pw"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate username: expected 400, got %d", w.Code)
	}
}
