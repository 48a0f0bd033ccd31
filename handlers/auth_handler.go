package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/adiletkanalbekov5-byte/techschool/config"
	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/middlewares"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler { return &AuthHandler{cfg: cfg} }

func (h *AuthHandler) signJWT(sub uint, role, name, typ string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"name": name,
		"typ":  typ,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.cfg.JWTSecret))
}

/* ====================== DTOs ====================== */

type RegisterReq struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

type TokenReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshReq struct {
	Refresh string `json:"refresh"`
}

/* ====================== Handlers ====================== */

// POST /api/auth/register — สมัครบัญชีทั่วไป (non-staff → ได้ TeacherProfile)
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION", "fields": map[string]string{"email": "invalid email"}})
	}

	// ตรวจซ้ำ username
	var dup models.User
	if err := database.DB.Where("username = ?", req.Username).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	u := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := CreateAccount(database.DB, &u); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusCreated, u)
}

// POST /api/token — แลก username/password เป็นคู่ access+refresh
func (h *AuthHandler) Token(c echo.Context) error {
	var req TokenReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var u models.User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if !u.IsActive || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	role := middlewares.RoleOf(database.DB, &u)
	access, err := h.signJWT(u.ID, role, u.Username, "access", h.cfg.AccessTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	refresh, err := h.signJWT(u.ID, role, u.Username, "refresh", h.cfg.RefreshTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"access": access, "refresh": refresh})
}

// POST /api/token/refresh — ออก access ใหม่จาก refresh token
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Refresh) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	token, err := jwt.ParseWithClaims(req.Refresh, &middlewares.Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN_METHOD"})
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}
	claims, ok := token.Claims.(*middlewares.Claims)
	if !ok || claims.Typ != "refresh" {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}

	// ผู้ใช้ต้องยังอยู่และ active — role อาจเปลี่ยนได้ระหว่างทาง เลยคำนวณใหม่
	var u models.User
	if err := database.DB.First(&u, claims.Sub).Error; err != nil || !u.IsActive {
		if err != nil && err != gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
		}
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}
	access, err := h.signJWT(u.ID, middlewares.RoleOf(database.DB, &u), u.Username, "access", h.cfg.AccessTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"access": access})
}
