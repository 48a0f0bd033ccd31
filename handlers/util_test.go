package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adiletkanalbekov5-byte/techschool/config"
	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/handlers"
	"github.com/adiletkanalbekov5-byte/techschool/models"
	"github.com/adiletkanalbekov5-byte/techschool/routes"
)

const testPassword = "pass1234"

var testDBSeq atomic.Int64

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:     "test",
		JWTSecret:  "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}
}

// setup เปิด sqlite in-memory (แยก DB ต่อ test) + migrate ชุดเดียวกับ production
func setup(t *testing.T) (*echo.Echo, *config.Config) {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.MigrateAll(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	database.DB = db

	cfg := testConfig()
	e := echo.New()
	e.HideBanner = true
	routes.Register(e, cfg)
	return e, cfg
}

func createUser(t *testing.T, username string, staff bool) models.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	u := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsStaff:      staff,
		IsActive:     true,
	}
	if err := handlers.CreateAccount(database.DB, &u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// createStudent: บัญชีที่ไม่มีโปรไฟล์ครู (ลบโปรไฟล์ที่ hook สร้างทิ้ง)
func createStudent(t *testing.T, username string) models.User {
	t.Helper()
	u := createUser(t, username, false)
	if err := database.DB.Where("user_id = ?", u.ID).Delete(&models.TeacherProfile{}).Error; err != nil {
		t.Fatalf("strip teacher profile: %v", err)
	}
	return u
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func obtainToken(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec := doReq(t, e, http.MethodPost, "/api/token", map[string]string{
		"username": username,
		"password": testPassword,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("token for %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	var out map[string]string
	decodeBody(t, rec, &out)
	return out["access"]
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}
