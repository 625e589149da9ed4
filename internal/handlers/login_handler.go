package handlers

import (
	"net/http"

	"wholesale-pos/internal/auth"
	"wholesale-pos/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves login and (optionally) registration.
type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondOK(c, "Logged in", gin.H{
		"token":      token,
		"role":       user.Role,
		"username":   user.Username,
		"store_name": user.StoreName,
	})
}

type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role"`
	StoreName string `json:"store_name"`
}

// Register is only routed when ALLOW_REGISTRATION=true (see main.go).
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Name, username and password are required")
		return
	}

	role := input.Role
	if role != "owner" && role != "shopkeeper" {
		role = "owner"
	}
	storeName := input.StoreName
	if storeName == "" {
		storeName = "My Wholesaler Store"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Role:         role,
		StoreName:    storeName,
	}

	if err := h.db.Create(&user).Error; err != nil {
		respondError(c, http.StatusBadRequest, "User likely already exists")
		return
	}

	respond(c, http.StatusCreated, "User created successfully", gin.H{"user": user})
}
