package handlers_test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

var certNumberRe = regexp.MustCompile(`^[A-Z0-9]{12}$`)

func makeEnrollment(t *testing.T, username, slug string) models.Enrollment {
	t.Helper()
	u := createUser(t, username, false)
	crs := makeCourse(t, slug)
	enr := models.Enrollment{StudentID: u.ID, CourseID: crs.ID, Active: true}
	require.NoError(t, database.DB.Create(&enr).Error)
	return enr
}

func TestCertificateIssueAndLookup(t *testing.T) {
	e, _ := setup(t)
	enr := makeEnrollment(t, "somchai", "go-basics")
	token := obtainToken(t, e, "somchai")

	rec := doReq(t, e, http.MethodPost, "/api/certificates", map[string]any{"enrollment_id": enr.ID}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var cert map[string]any
	decodeBody(t, rec, &cert)
	code := cert["cert_number"].(string)
	assert.Regexp(t, certNumberRe, code)

	// ค้นด้วยเลขเป๊ะ ๆ — อ่านได้โดยไม่ล็อกอิน
	rec = doReq(t, e, http.MethodGet, "/api/certificates/by-number?q="+code, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &cert)
	nested := cert["enrollment"].(map[string]any)
	assert.Equal(t, "somchai", nested["student"].(map[string]any)["username"])
	assert.Equal(t, "go-basics", nested["course"].(map[string]any)["slug"])
}

func TestCertificateByNumberErrors(t *testing.T) {
	e, _ := setup(t)

	// ไม่ส่ง q = 400 ไม่ใช่ 404
	rec := doReq(t, e, http.MethodGet, "/api/certificates/by-number", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doReq(t, e, http.MethodGet, "/api/certificates/by-number?q=NOPE12345678", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// หนึ่ง enrollment ออกใบได้ใบเดียว
func TestCertificateOnePerEnrollment(t *testing.T) {
	e, _ := setup(t)
	enr := makeEnrollment(t, "somchai", "go-basics")
	token := obtainToken(t, e, "somchai")

	rec := doReq(t, e, http.MethodPost, "/api/certificates", map[string]any{"enrollment_id": enr.ID}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doReq(t, e, http.MethodPost, "/api/certificates", map[string]any{"enrollment_id": enr.ID}, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var n int64
	require.NoError(t, database.DB.Model(&models.Certificate{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCertificateNumbersUnique(t *testing.T) {
	e, _ := setup(t)
	token := ""
	seen := map[string]bool{}
	for i, name := range []string{"a1", "a2", "a3", "a4"} {
		enr := makeEnrollment(t, name, name+"-course")
		if i == 0 {
			token = obtainToken(t, e, name)
		}
		rec := doReq(t, e, http.MethodPost, "/api/certificates", map[string]any{"enrollment_id": enr.ID}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var cert map[string]any
		decodeBody(t, rec, &cert)
		code := cert["cert_number"].(string)
		assert.False(t, seen[code], "duplicate cert number %s", code)
		seen[code] = true
	}
}

func TestCertificateIssueUnknownEnrollment(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "somchai", false)
	token := obtainToken(t, e, "somchai")

	rec := doReq(t, e, http.MethodPost, "/api/certificates", map[string]any{"enrollment_id": 424242}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doReq(t, e, http.MethodPost, "/api/certificates", map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
