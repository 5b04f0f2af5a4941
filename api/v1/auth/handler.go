package auth

import (
	"database/sql"
	"errors"
	"time"

	"fixsmart/internal/auth"
	"fixsmart/internal/config"
	"fixsmart/internal/httpx"
	"fixsmart/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents login response data
type LoginResponse struct {
	Token    string   `json:"token"`
	ExpireAt string   `json:"expireAt"`
	User     UserInfo `json:"user"`
}

// UserInfo represents admin information in response
type UserInfo struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginHandler handles admin login
func LoginHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
			return
		}

		// Query admin by username
		var admin model.AdminUser
		if err := db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// User not found or wrong password - return same error for security
				httpx.FailErr(c, httpx.ErrInvalidToken("invalid credentials"))
				return
			}
			httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
			return
		}

		// Check admin status
		if admin.Status == model.AdminUserStatusInactive {
			httpx.FailErr(c, httpx.ErrForbidden("account is inactive"))
			return
		}

		// Verify password
		if err := auth.ComparePassword(admin.PasswordHash, req.Password); err != nil {
			httpx.FailErr(c, httpx.ErrInvalidToken("invalid credentials"))
			return
		}

		// Generate JWT token
		expireAt := time.Now().Add(time.Duration(cfg.JWT.ExpireMinutes) * time.Minute)
		token, err := auth.GenerateToken(admin.ID, admin.Username, "admin", expireAt, cfg.JWT.Issuer)
		if err != nil {
			httpx.FailErr(c, httpx.ErrInternalError("failed to generate token", err))
			return
		}

		// Record last login, best-effort
		db.Model(&admin).Update("last_login", sql.NullTime{Time: time.Now(), Valid: true})

		httpx.OK(c, gin.H{
			"token":    token,
			"expireAt": expireAt.Format(time.RFC3339),
			"user": UserInfo{
				ID:       admin.ID,
				Username: admin.Username,
				Email:    admin.Email,
			},
		})
	}
}
