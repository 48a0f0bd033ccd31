package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

func countProfiles(t *testing.T, userID uint) (teachers, directors int64) {
	t.Helper()
	require.NoError(t, database.DB.Model(&models.TeacherProfile{}).Where("user_id = ?", userID).Count(&teachers).Error)
	require.NoError(t, database.DB.Model(&models.DirectorProfile{}).Where("user_id = ?", userID).Count(&directors).Error)
	return teachers, directors
}

// staff -> DirectorProfile อย่างเดียว, ไม่ staff -> TeacherProfile อย่างเดียว
func TestAccountHookProfileAssignment(t *testing.T) {
	setup(t)

	staff := createUser(t, "director1", true)
	tc, dc := countProfiles(t, staff.ID)
	assert.Equal(t, int64(0), tc)
	assert.Equal(t, int64(1), dc)

	normal := createUser(t, "teacher1", false)
	tc, dc = countProfiles(t, normal.ID)
	assert.Equal(t, int64(1), tc)
	assert.Equal(t, int64(0), dc)
}

// แก้ is_staff ทีหลังต้องไม่แตะโปรไฟล์เดิม
func TestAccountHookNotReevaluated(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "boss", true)
	bossToken := obtainToken(t, e, "boss")
	u := createUser(t, "worker", false)

	rec := doReq(t, e, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d", u.ID),
		map[string]any{"is_staff": true}, bossToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tc, dc := countProfiles(t, u.ID)
	assert.Equal(t, int64(1), tc, "teacher profile must survive the staff flip")
	assert.Equal(t, int64(0), dc, "no director profile may appear after the fact")
}

func TestRegister(t *testing.T) {
	e, _ := setup(t)

	rec := doReq(t, e, http.MethodPost, "/api/auth/register", map[string]any{
		"username": "newbie", "email": "newbie@example.com", "password": "s3cret!!",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var u map[string]any
	decodeBody(t, rec, &u)
	assert.Equal(t, false, u["is_staff"])
	_, hasHash := u["password_hash"]
	assert.False(t, hasHash)

	// สมัครผ่าน API = non-staff เสมอ -> ได้โปรไฟล์ครู
	tc, dc := countProfiles(t, uint(u["id"].(float64)))
	assert.Equal(t, int64(1), tc)
	assert.Equal(t, int64(0), dc)

	// username ซ้ำ
	rec = doReq(t, e, http.MethodPost, "/api/auth/register", map[string]any{
		"username": "newbie", "password": "whatever",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// email เพี้ยน
	rec = doReq(t, e, http.MethodPost, "/api/auth/register", map[string]any{
		"username": "other", "email": "not-an-email", "password": "whatever",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminUserCRUD(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "boss", true)
	bossToken := obtainToken(t, e, "boss")
	createUser(t, "pleb", false)
	plebToken := obtainToken(t, e, "pleb")

	// คนธรรมดาเข้าหน้าแอดมินไม่ได้
	rec := doReq(t, e, http.MethodGet, "/api/admin/users", nil, plebToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// แอดมินสร้าง staff ใหม่ -> ได้ DirectorProfile
	rec = doReq(t, e, http.MethodPost, "/api/admin/users", map[string]any{
		"username": "director2", "password": "s3cret!!", "is_staff": true,
	}, bossToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var u map[string]any
	decodeBody(t, rec, &u)
	tc, dc := countProfiles(t, uint(u["id"].(float64)))
	assert.Equal(t, int64(0), tc)
	assert.Equal(t, int64(1), dc)

	// ลบ user ได้ตรง ๆ ไม่มี guard
	rec = doReq(t, e, http.MethodDelete, fmt.Sprintf("/api/admin/users/%v", u["id"]), nil, bossToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doReq(t, e, http.MethodGet, fmt.Sprintf("/api/admin/users/%v", u["id"]), nil, bossToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
