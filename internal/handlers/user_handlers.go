package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/supermall-dev/supermall-golang/internal/auth"
	"github.com/supermall-dev/supermall-golang/internal/models"
)

// --- Auth Handlers ---

type SignupInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a browsing account. Everyone signs up as a plain user;
// admin accounts are promoted directly in the database.
func (h *Handlers) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var one int
	err := h.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE email = ?", email).Scan(&one)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.NewString(),
		Role:         models.RoleUser,
		Email:        email,
		PasswordHash: password.Hash,
		FullName:     strings.TrimSpace(input.FullName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `INSERT INTO users (id, role, email, password_hash, full_name, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := h.DB.ExecContext(ctx, query,
		user.ID, user.Role, user.Email, user.PasswordHash, user.FullName, user.CreatedAt, user.UpdatedAt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	slog.Info("user signed up", "id", user.ID, "email", user.Email)
	c.JSON(http.StatusCreated, gin.H{"message": "Account created", "user": user})
}

// Login checks credentials and hands back a signed token. Wrong email and
// wrong password produce the same message on purpose.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT id, role, email, password_hash, full_name, created_at, updated_at FROM users WHERE email = ?",
		email).Scan(&user.ID, &user.Role, &user.Email, &user.PasswordHash, &user.FullName,
		&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	slog.Info("user logged in", "id", user.ID)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the account behind the bearer token.
func (h *Handlers) Me(c *gin.Context) {
	userID := c.GetString("userID")

	var user models.User
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT id, role, email, full_name, created_at, updated_at FROM users WHERE id = ?",
		userID).Scan(&user.ID, &user.Role, &user.Email, &user.FullName, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
